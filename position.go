package tether

// Position is the styling data the positioning engine returns for a floating
// element: where to place it, plus engine-specific extras the coordinators
// never inspect.
type Position struct {
	X, Y float64
	Data any // engine-specific output (placement side, arrow offset, ...)
}

// PositionFunc is the opaque "compute placement" contract. Given the anchor
// and floating rects it returns styling data; collision handling, flipping,
// and the rest of the placement math live entirely behind it.
type PositionFunc func(anchor, floating Rect) Position

// Positioner recomputes a surface's Position whenever it opens. It is a
// passive consumer of the open boolean and is never part of the tree.
type Positioner struct {
	compute PositionFunc
	handle  CallbackHandle
}

// NewPositioner subscribes compute to the group's open-state channel.
// On every open the surface's Position is refreshed, provided both elements
// are set. Call Remove to unsubscribe.
func NewPositioner(g *Group, compute PositionFunc) *Positioner {
	p := &Positioner{compute: compute}
	p.handle = g.OnOpenChange(func(ev OpenEvent) {
		if !ev.Open {
			return
		}
		s := ev.Node.Data
		if s.Anchor == nil || s.Floating == nil {
			return
		}
		s.Position = p.compute(s.Anchor.Bounds(), s.Floating.Bounds())
	})
	return p
}

// Remove unsubscribes the positioner from the group.
func (p *Positioner) Remove() {
	p.handle.Remove()
}
