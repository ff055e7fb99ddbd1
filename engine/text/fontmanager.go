package text

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/hubastard/canopy/engine/core"
	"golang.org/x/image/font/gofont/gomono"
)

// FontManager hands out one shared Font per pixel size. Fonts stay owned by
// the manager; callers must not Close them.
type FontManager struct {
	r     core.Renderer
	name  string
	data  []byte
	fonts map[int]*Font
}

// NewFontManager resolves name (a file name such as "DejaVuSansMono.ttf")
// against the system font directories. An empty or unknown name falls back
// to the embedded Go Mono face.
func NewFontManager(r core.Renderer, name string) *FontManager {
	fm := &FontManager{r: r, fonts: make(map[int]*Font)}
	if name != "" {
		data, err := readSystemFont(name)
		if err != nil {
			log.Printf("fonts: %v; using Go Mono", err)
		} else {
			fm.name, fm.data = name, data
		}
	}
	if fm.data == nil {
		fm.name, fm.data = "Go Mono", gomono.TTF
	}
	return fm
}

func readSystemFont(name string) ([]byte, error) {
	path, err := findfont.Find(name)
	if err != nil {
		return nil, fmt.Errorf("find %q: %w", name, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return data, nil
}

// Name is the face the manager builds atlases from.
func (fm *FontManager) Name() string { return fm.name }

// Get returns the font for size pixels, building its atlas on first use.
// A font that cannot be built is replaced by a metrics-only monospace font
// so text layout keeps working.
func (fm *FontManager) Get(size float32) *Font {
	key := int(math.Round(float64(size)))
	if f, ok := fm.fonts[key]; ok {
		return f
	}
	var f *Font
	err := fmt.Errorf("no renderer")
	if fm.r != nil {
		f, err = ParseTTF(fm.r, fm.data, float32(key))
	}
	if err != nil {
		log.Printf("fonts: %s at %dpx: %v", fm.name, key, err)
		f = Monospace(float32(key), float32(key)*0.6)
	}
	fm.fonts[key] = f
	return f
}

// Close releases every font the manager built.
func (fm *FontManager) Close() {
	for k, f := range fm.fonts {
		f.Close()
		delete(fm.fonts, k)
	}
}
