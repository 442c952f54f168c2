package tether

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transitions fades surface opacity on open-state changes: opening tweens
// Opacity toward 1, closing toward 0 (including cascade closes). Hosts draw
// with Opacity and call Update each frame, the same way tween groups are
// driven from a game loop.
//
// There is no global animation manager; the host owns the Update call.
type Transitions struct {
	group   *Group
	fadeIn  float32
	fadeOut float32
	fn      ease.TweenFunc
	handle  CallbackHandle
	active  map[NodeID]*gween.Tween
}

// NewTransitions subscribes a fade driver to the group. fadeIn and fadeOut
// are durations in seconds; fn is the easing function (ease.Linear is a
// reasonable default).
func NewTransitions(g *Group, fadeIn, fadeOut float32, fn ease.TweenFunc) *Transitions {
	t := &Transitions{
		group:   g,
		fadeIn:  fadeIn,
		fadeOut: fadeOut,
		fn:      fn,
		active:  make(map[NodeID]*gween.Tween),
	}
	t.handle = g.OnOpenChange(func(ev OpenEvent) {
		s := ev.Node.Data
		if ev.Open {
			t.active[ev.Node.ID()] = gween.New(float32(s.Opacity), 1, t.fadeIn, t.fn)
		} else {
			t.active[ev.Node.ID()] = gween.New(float32(s.Opacity), 0, t.fadeOut, t.fn)
		}
	})
	return t
}

// Update advances all running fades by dt seconds and writes the values to
// the surfaces. Fades targeting removed nodes are dropped.
func (t *Transitions) Update(dt float32) {
	for id, tw := range t.active {
		n := t.group.tree.FindNodeByID(id)
		if n == nil || n.Data == nil {
			delete(t.active, id)
			continue
		}
		val, finished := tw.Update(dt)
		n.Data.Opacity = float64(val)
		if finished {
			delete(t.active, id)
		}
	}
}

// Running reports how many fades are in flight.
func (t *Transitions) Running() int {
	return len(t.active)
}

// Remove unsubscribes from the group and drops all running fades.
func (t *Transitions) Remove() {
	t.handle.Remove()
	t.active = make(map[NodeID]*gween.Tween)
}
