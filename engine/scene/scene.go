package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
)

// Entity is one drawable mesh instance.
type Entity struct {
	Name      string
	Mesh      core.Mesh
	Transform mgl32.Mat4
	Color     colors.Color
}

func NewEntity(name string, mesh core.Mesh) *Entity {
	return &Entity{Name: name, Mesh: mesh, Transform: mgl32.Ident4(), Color: colors.White}
}

// Scene is a flat list of entities seen through one camera.
type Scene struct {
	Camera   *PerspectiveCamera
	entities []*Entity
}

func New(cam *PerspectiveCamera) *Scene { return &Scene{Camera: cam} }

func (s *Scene) Add(e *Entity) *Entity {
	s.entities = append(s.entities, e)
	return e
}

func (s *Scene) Remove(e *Entity) bool {
	i := slices.Index(s.entities, e)
	if i < 0 {
		return false
	}
	s.entities = slices.Delete(s.entities, i, i+1)
	return true
}

func (s *Scene) Entities() []*Entity { return s.entities }
func (s *Scene) Len() int            { return len(s.entities) }
func (s *Scene) Clear()              { s.entities = nil }
