package core

import "slices"

type layerEntry struct {
	layer Layer
	state LayerState
}

type stackOpKind uint8

const (
	opPush stackOpKind = iota
	opRemove
)

type stackOp struct {
	kind  stackOpKind
	layer Layer
}

// LayerStack owns the application's layers. Index 0 is the bottom.
// Updates and rendering walk bottom to top, events walk top to bottom.
//
// Push and Remove called while the stack is being iterated are queued and
// applied once the outermost iteration returns.
type LayerStack struct {
	list    []*layerEntry
	pending []stackOp
	depth   int
}

func NewLayerStack() *LayerStack { return &LayerStack{} }

// Push appends l on top. Returns false if l is already live in the stack
// (or already queued for insertion). A layer removed earlier in the same
// pass is detached first and then attached again.
func (ls *LayerStack) Push(e *Engine, l Layer) bool {
	if l == nil || ls.queued(opPush, l) {
		return false
	}
	if i := ls.find(l); i >= 0 && ls.list[i].state != LayerDestroyed {
		return false
	}
	if ls.depth > 0 {
		ls.pending = append(ls.pending, stackOp{kind: opPush, layer: l})
		return true
	}
	ls.attach(e, l)
	return true
}

// Pop removes the top-most live layer.
func (ls *LayerStack) Pop(e *Engine) (Layer, bool) {
	for i := len(ls.list) - 1; i >= 0; i-- {
		if ls.list[i].state == LayerDestroyed {
			continue
		}
		l := ls.list[i].layer
		return l, ls.Remove(e, l)
	}
	return nil, false
}

// Remove takes l out of the stack. The layer is not invoked again; its
// OnDetach runs now when the stack is idle, otherwise after the current
// iteration.
func (ls *LayerStack) Remove(e *Engine, l Layer) bool {
	i := ls.find(l)
	if i < 0 || ls.list[i].state == LayerDestroyed {
		// A push still waiting in the queue is simply cancelled.
		for j, op := range ls.pending {
			if op.kind == opPush && op.layer == l {
				ls.pending = slices.Delete(ls.pending, j, j+1)
				return true
			}
		}
		return false
	}
	ls.list[i].state = LayerDestroyed
	if ls.depth > 0 {
		ls.pending = append(ls.pending, stackOp{kind: opRemove, layer: l})
		return true
	}
	ls.detach(e, i)
	return true
}

// Clear detaches every layer, top first.
func (ls *LayerStack) Clear(e *Engine) {
	for i := len(ls.list) - 1; i >= 0; i-- {
		ls.Remove(e, ls.list[i].layer)
	}
}

func (ls *LayerStack) Len() int {
	n := 0
	for _, en := range ls.list {
		if en.state != LayerDestroyed {
			n++
		}
	}
	return n
}

// Layers returns the live layers bottom to top.
func (ls *LayerStack) Layers() []Layer {
	out := make([]Layer, 0, len(ls.list))
	for _, en := range ls.list {
		if en.state != LayerDestroyed {
			out = append(out, en.layer)
		}
	}
	return out
}

// State reports the lifecycle state of l. Layers that are not in the stack
// report LayerUninitialized, or LayerDestroyed once they have been removed
// but not yet detached.
func (ls *LayerStack) State(l Layer) LayerState {
	if i := ls.find(l); i >= 0 {
		return ls.list[i].state
	}
	return LayerUninitialized
}

func (ls *LayerStack) OnTick(e *Engine) {
	ls.iterate(false, func(en *layerEntry) bool {
		en.state = LayerActive
		en.layer.OnTick(e)
		return false
	})
	ls.flush(e)
}

func (ls *LayerStack) OnUpdate(e *Engine, dt float64) {
	ls.iterate(false, func(en *layerEntry) bool {
		en.state = LayerActive
		en.layer.OnUpdate(e, dt)
		return false
	})
	ls.flush(e)
}

func (ls *LayerStack) OnRender(e *Engine, alpha float64) {
	ls.iterate(false, func(en *layerEntry) bool {
		en.layer.OnRender(e, alpha)
		return false
	})
	ls.flush(e)
}

// OnEvent offers ev to each layer from the top down and stops at the first
// layer that marks it handled.
func (ls *LayerStack) OnEvent(e *Engine, ev Event) bool {
	if ev == nil {
		return false
	}
	ls.iterate(true, func(en *layerEntry) bool {
		if ev.Handled() {
			return true
		}
		en.layer.OnEvent(e, ev)
		return ev.Handled()
	})
	ls.flush(e)
	return ev.Handled()
}

func (ls *LayerStack) ForEach(f func(Layer)) {
	ls.iterate(false, func(en *layerEntry) bool {
		f(en.layer)
		return false
	})
}

// ForEachReverse walks top to bottom until f returns true.
func (ls *LayerStack) ForEachReverse(f func(Layer) bool) {
	ls.iterate(true, func(en *layerEntry) bool { return f(en.layer) })
}

// Flush applies queued pushes and removals. The engine calls it between
// phases; it is a no-op while an iteration is running.
func (ls *LayerStack) Flush(e *Engine) { ls.flush(e) }

// ---- internals ----

func (ls *LayerStack) iterate(reverse bool, f func(*layerEntry) bool) {
	ls.depth++
	defer func() { ls.depth-- }()

	// list is not resized while depth > 0, so indices stay valid.
	n := len(ls.list)
	for k := 0; k < n; k++ {
		i := k
		if reverse {
			i = n - 1 - k
		}
		en := ls.list[i]
		if en.state == LayerDestroyed {
			continue
		}
		if stop := f(en); stop {
			return
		}
	}
}

func (ls *LayerStack) flush(e *Engine) {
	if ls.depth > 0 {
		return
	}
	for len(ls.pending) > 0 {
		op := ls.pending[0]
		ls.pending = ls.pending[1:]
		switch op.kind {
		case opPush:
			if ls.find(op.layer) < 0 {
				ls.attach(e, op.layer)
			}
		case opRemove:
			if i := ls.find(op.layer); i >= 0 {
				ls.detach(e, i)
			}
		}
	}
	ls.pending = nil
}

func (ls *LayerStack) attach(e *Engine, l Layer) {
	en := &layerEntry{layer: l, state: LayerUninitialized}
	ls.list = append(ls.list, en)
	l.OnInit(e)
	if en.state == LayerUninitialized {
		en.state = LayerInitialized
	}
}

func (ls *LayerStack) detach(e *Engine, i int) {
	en := ls.list[i]
	ls.list = slices.Delete(ls.list, i, i+1)
	en.state = LayerDestroyed
	en.layer.OnDetach(e)
}

func (ls *LayerStack) find(l Layer) int {
	for i, en := range ls.list {
		if en.layer == l {
			return i
		}
	}
	return -1
}

func (ls *LayerStack) queued(kind stackOpKind, l Layer) bool {
	for _, op := range ls.pending {
		if op.kind == kind && op.layer == l {
			return true
		}
	}
	return false
}
