package core_test

import (
	"testing"

	"github.com/hubastard/canopy/engine/core"
	"github.com/stretchr/testify/assert"
)

func TestDispatchMatchRecordsResult(t *testing.T) {
	ev := &core.KeyPressedEvent{Key: core.KeyA}
	d := core.NewEventDispatcher(ev)

	var got core.Key
	ran := core.Dispatch(d, func(k *core.KeyPressedEvent) bool {
		got = k.Key
		return true
	})

	assert.True(t, ran)
	assert.Equal(t, core.KeyA, got)
	assert.True(t, ev.Handled())
	assert.True(t, d.Matched())
	assert.Same(t, ev, d.Event())
}

func TestDispatchFalseLeavesFlag(t *testing.T) {
	ev := &core.MousePressedEvent{Button: core.MouseLeft}
	core.Dispatch(core.NewEventDispatcher(ev), func(*core.MousePressedEvent) bool { return false })
	assert.False(t, ev.Handled())
}

func TestDispatchMismatchIsNoop(t *testing.T) {
	ev := &core.MouseMovedEvent{X: 1, Y: 2}
	d := core.NewEventDispatcher(ev)

	called := false
	ran := core.Dispatch(d, func(*core.KeyPressedEvent) bool {
		called = true
		return true
	})

	assert.False(t, ran)
	assert.False(t, called)
	assert.False(t, ev.Handled())
	assert.False(t, d.Matched())
}

func TestDispatchNeverReopensHandledEvent(t *testing.T) {
	ev := &core.ResizeEvent{W: 10, H: 10}
	ev.SetHandled(true)
	core.Dispatch(core.NewEventDispatcher(ev), func(*core.ResizeEvent) bool { return false })
	assert.True(t, ev.Handled())
}

func TestDispatchStopsAfterFirstMatch(t *testing.T) {
	ev := &core.KeyPressedEvent{Key: core.KeyTab}
	d := core.NewEventDispatcher(ev)

	var order []string
	core.Dispatch(d, func(*core.MousePressedEvent) bool { order = append(order, "mouse"); return true })
	core.Dispatch(d, func(*core.KeyPressedEvent) bool { order = append(order, "first"); return false })
	core.Dispatch(d, func(*core.KeyPressedEvent) bool { order = append(order, "second"); return true })

	assert.Equal(t, []string{"first"}, order)
	assert.False(t, ev.Handled())
}

func TestDispatchNilSafe(t *testing.T) {
	assert.False(t, core.Dispatch(nil, func(*core.KeyPressedEvent) bool { return true }))
	assert.False(t, core.Dispatch(core.NewEventDispatcher(nil), func(*core.KeyPressedEvent) bool { return true }))
}

func TestEventKinds(t *testing.T) {
	cases := []struct {
		ev   core.Event
		kind core.EventKind
		name string
	}{
		{&core.KeyPressedEvent{}, core.EventKeyPressed, "KeyPressed"},
		{&core.KeyReleasedEvent{}, core.EventKeyReleased, "KeyReleased"},
		{&core.MousePressedEvent{}, core.EventMousePressed, "MousePressed"},
		{&core.MouseReleasedEvent{}, core.EventMouseReleased, "MouseReleased"},
		{&core.MouseMovedEvent{}, core.EventMouseMoved, "MouseMoved"},
		{&core.MouseScrolledEvent{}, core.EventMouseScrolled, "MouseScrolled"},
		{&core.ResizeEvent{}, core.EventResize, "Resize"},
		{&core.CloseRequestedEvent{}, core.EventCloseRequested, "CloseRequested"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, tc.ev.Kind())
		assert.Equal(t, tc.name, tc.kind.String())
		assert.False(t, tc.ev.Handled())
	}
	assert.Equal(t, "Unknown", core.EventKind(99).String())
}

func TestModHas(t *testing.T) {
	m := core.ModCtrl | core.ModShift
	assert.True(t, m.Has(core.ModCtrl))
	assert.True(t, m.Has(core.ModCtrl|core.ModShift))
	assert.False(t, m.Has(core.ModAlt))
	assert.NotEqual(t, core.ModCtrl, m)
}
