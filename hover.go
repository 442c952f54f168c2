package tether

import "time"

// HoverConfig tunes hover-driven opening and closing. The zero value opens
// immediately, closes after DefaultCloseDelay, and pads safe polygons by
// DefaultSafeBuffer pixels.
type HoverConfig struct {
	// OpenDelay is the hover duration before a surface opens.
	OpenDelay time.Duration

	// CloseDelay is the grace period after the pointer leaves a surface's
	// elements (and its safe polygon) before the close commits.
	// Zero means DefaultCloseDelay; use NoDelay to close on the next tick.
	CloseDelay time.Duration

	// RestDelay, when positive, requires the pointer to rest over the
	// anchor for this long before the open timer commits: every move over
	// the anchor re-arms it.
	RestDelay time.Duration

	// Buffer pads the safe polygon, in pixels, to tolerate imprecise mouse
	// paths. Zero means DefaultSafeBuffer; negative disables padding.
	Buffer float64
}

// Defaults for HoverConfig zero values.
const (
	DefaultCloseDelay = 200 * time.Millisecond
	DefaultSafeBuffer = 4.0

	// NoDelay makes a configured delay commit on the next scheduler tick.
	NoDelay = time.Duration(-1)
)

func (c HoverConfig) closeDelay() time.Duration {
	switch {
	case c.CloseDelay == 0:
		return DefaultCloseDelay
	case c.CloseDelay < 0:
		return 0
	default:
		return c.CloseDelay
	}
}

func (c HoverConfig) buffer() float64 {
	switch {
	case c.Buffer == 0:
		return DefaultSafeBuffer
	case c.Buffer < 0:
		return 0
	default:
		return c.Buffer
	}
}

// Hover coordinates hover-driven open/close across parent/child surface
// pairs. Open and close delays are independent, cancellable timers keyed
// per node: scheduling always cancels the prior handle for that node, so a
// timer can never fire twice for one interaction. While a close is pending,
// pointer movement is hit-tested against the pair's safe polygon; movement
// inside it cancels the pending closes for both the parent and the child,
// letting the pointer travel the gap between a menu item and its submenu.
type Hover struct {
	group *Group
	cfg   HoverConfig

	openTimers  map[NodeID]TimerHandle
	closeTimers map[NodeID]TimerHandle
	pairs       []hoverPair
}

// hoverPair is an armed safe polygon between an open parent surface and the
// anchor of one of its open children. entered records that the pointer has
// been inside the polygon, so leaving it into empty space can re-arm the
// closes it cancelled.
type hoverPair struct {
	parentID NodeID
	childID  NodeID
	poly     []Vec2
	entered  bool
}

// NewHover creates a hover coordinator bound to the group's scheduler.
func NewHover(g *Group, cfg HoverConfig) *Hover {
	return &Hover{
		group:       g,
		cfg:         cfg,
		openTimers:  make(map[NodeID]TimerHandle),
		closeTimers: make(map[NodeID]TimerHandle),
	}
}

// PointerEnter records the pointer entering the node's anchor or floating
// element. Pending closes for the node and its ancestors are cancelled (the
// branch stays alive while the pointer is inside it), and an open timer is
// armed for closed surfaces. Unknown ids are a no-op.
func (h *Hover) PointerEnter(id NodeID, ev *InputEvent) {
	n := h.group.tree.FindNodeByID(id)
	if n == nil || n.Data == nil {
		return
	}
	h.cancelClose(id)
	for p := n.Parent(); p != nil; p = p.Parent() {
		h.cancelClose(p.ID())
	}
	h.dropPairsFor(id)
	if n.Data.Open {
		return
	}
	delay := h.cfg.OpenDelay
	if h.cfg.RestDelay > 0 {
		delay = h.cfg.RestDelay
	}
	h.armOpen(id, delay, ev)
}

// PointerLeave records the pointer leaving the node's elements. Any pending
// open is cancelled; an open surface gets a close timer and arms safe
// polygons for its currently-open children (and, when the node itself is an
// open child, for the gap back to its parent). Leaving both the elements
// and the polygon without re-entering before the close delay commits the
// close.
func (h *Hover) PointerLeave(id NodeID, ev *InputEvent) {
	n := h.group.tree.FindNodeByID(id)
	if n == nil || n.Data == nil {
		return
	}
	h.cancelOpen(id)
	if !n.Data.Open {
		return
	}
	h.armClose(id, ev)
	h.armPolygons(n)
	if p := n.Parent(); p != nil && p.Data != nil && p.Data.Open {
		h.armClose(p.ID(), ev)
		h.armPolygons(p)
	}
}

// PointerMove feeds every pointer movement to the coordinator. While a close
// timer is pending, the position is hit-tested against the armed safe
// polygons; a hit cancels the pending closes for that pair's parent and
// child. Leaving an entered polygon without reaching either node's elements
// re-arms the closes, so wandering off into empty space still commits after
// the close delay. With RestDelay configured, movement over a node's anchor
// re-arms its pending open timer.
func (h *Hover) PointerMove(x, y float64, ev *InputEvent) {
	for i := range h.pairs {
		pair := &h.pairs[i]
		if pointInConvexPolygon(pair.poly, x, y) {
			if h.closePending(pair.parentID) || h.closePending(pair.childID) {
				h.cancelClose(pair.parentID)
				h.cancelClose(pair.childID)
				pair.entered = true
			}
			continue
		}
		if pair.entered && !h.overNode(pair.parentID, x, y) && !h.overNode(pair.childID, x, y) {
			pair.entered = false
			h.armClose(pair.parentID, ev)
			h.armClose(pair.childID, ev)
		}
	}
	if h.cfg.RestDelay <= 0 {
		return
	}
	// armOpen mutates openTimers, so collect the pending ids first.
	pending := make([]NodeID, 0, len(h.openTimers))
	for id, handle := range h.openTimers {
		if handle.Pending() {
			pending = append(pending, id)
		}
	}
	for _, id := range pending {
		n := h.group.tree.FindNodeByID(id)
		if n == nil || n.Data == nil || n.Data.Anchor == nil {
			continue
		}
		if n.Data.Anchor.Contains(x, y) {
			h.armOpen(id, h.cfg.RestDelay, ev)
		}
	}
}

// SafePolygons returns the currently armed polygons. Exposed so hosts can
// visualize them while tuning Buffer and delays.
func (h *Hover) SafePolygons() [][]Vec2 {
	out := make([][]Vec2, 0, len(h.pairs))
	for _, p := range h.pairs {
		out = append(out, p.poly)
	}
	return out
}

// --- Timers ---

func (h *Hover) armOpen(id NodeID, delay time.Duration, ev *InputEvent) {
	h.cancelOpen(id)
	h.openTimers[id] = h.group.sched.Schedule(delay, func() {
		delete(h.openTimers, id)
		h.group.SetOpen(id, true, ReasonHover, ev)
	})
}

func (h *Hover) armClose(id NodeID, ev *InputEvent) {
	h.cancelClose(id)
	h.closeTimers[id] = h.group.sched.Schedule(h.cfg.closeDelay(), func() {
		delete(h.closeTimers, id)
		h.dropPairsFor(id)
		h.group.SetOpen(id, false, ReasonHover, ev)
	})
}

func (h *Hover) cancelOpen(id NodeID) {
	if handle, ok := h.openTimers[id]; ok {
		h.group.sched.Cancel(handle)
		delete(h.openTimers, id)
	}
}

func (h *Hover) cancelClose(id NodeID) {
	if handle, ok := h.closeTimers[id]; ok {
		h.group.sched.Cancel(handle)
		delete(h.closeTimers, id)
	}
}

func (h *Hover) closePending(id NodeID) bool {
	handle, ok := h.closeTimers[id]
	return ok && handle.Pending()
}

// overNode reports whether (x, y) is over the node's anchor or, when open,
// its floating element.
func (h *Hover) overNode(id NodeID, x, y float64) bool {
	n := h.group.tree.FindNodeByID(id)
	if n == nil || n.Data == nil {
		return false
	}
	if n.Data.Anchor != nil && n.Data.Anchor.Contains(x, y) {
		return true
	}
	return n.Data.Open && n.Data.Floating != nil && n.Data.Floating.Contains(x, y)
}

// --- Safe polygon construction ---

// armPolygons rebuilds the safe polygons between parent and each of its
// currently-open children, from the parent's floating rect to the child's
// anchor rect.
func (h *Hover) armPolygons(parent *SurfaceNode) {
	if parent.Data == nil || parent.Data.Floating == nil {
		return
	}
	from := parent.Data.Floating.Bounds()
	for _, child := range parent.Children() {
		if child.Data == nil || !child.Data.Open || child.Data.Anchor == nil {
			continue
		}
		poly := safePolygon(from, child.Data.Anchor.Bounds(), h.cfg.buffer())
		if poly == nil {
			continue
		}
		h.dropPair(parent.ID(), child.ID())
		h.pairs = append(h.pairs, hoverPair{
			parentID: parent.ID(),
			childID:  child.ID(),
			poly:     poly,
		})
	}
}

func (h *Hover) dropPair(parentID, childID NodeID) {
	for i := range h.pairs {
		if h.pairs[i].parentID == parentID && h.pairs[i].childID == childID {
			h.pairs = append(h.pairs[:i], h.pairs[i+1:]...)
			return
		}
	}
}

// dropPairsFor removes every armed pair involving id.
func (h *Hover) dropPairsFor(id NodeID) {
	kept := h.pairs[:0]
	for _, p := range h.pairs {
		if p.parentID != id && p.childID != id {
			kept = append(kept, p)
		}
	}
	h.pairs = kept
}

// safePolygon builds the convex quad spanning the trailing edge of the
// parent's floating rect and the leading edge of the child's anchor rect,
// padded by buffer pixels. The side is picked from the child anchor's
// position relative to the parent rect. Returns nil when the rects overlap
// on both axes (no gap to guard).
func safePolygon(from, to Rect, buffer float64) []Vec2 {
	switch {
	case to.X >= from.X+from.Width: // child to the right
		return []Vec2{
			{X: from.X + from.Width - buffer, Y: from.Y - buffer},
			{X: to.X + buffer, Y: to.Y - buffer},
			{X: to.X + buffer, Y: to.Y + to.Height + buffer},
			{X: from.X + from.Width - buffer, Y: from.Y + from.Height + buffer},
		}
	case to.X+to.Width <= from.X: // child to the left
		return []Vec2{
			{X: from.X + buffer, Y: from.Y - buffer},
			{X: from.X + buffer, Y: from.Y + from.Height + buffer},
			{X: to.X + to.Width - buffer, Y: to.Y + to.Height + buffer},
			{X: to.X + to.Width - buffer, Y: to.Y - buffer},
		}
	case to.Y >= from.Y+from.Height: // child below
		return []Vec2{
			{X: from.X - buffer, Y: from.Y + from.Height - buffer},
			{X: from.X + from.Width + buffer, Y: from.Y + from.Height - buffer},
			{X: to.X + to.Width + buffer, Y: to.Y + buffer},
			{X: to.X - buffer, Y: to.Y + buffer},
		}
	case to.Y+to.Height <= from.Y: // child above
		return []Vec2{
			{X: from.X - buffer, Y: from.Y + buffer},
			{X: to.X - buffer, Y: to.Y + to.Height - buffer},
			{X: to.X + to.Width + buffer, Y: to.Y + to.Height - buffer},
			{X: from.X + from.Width + buffer, Y: from.Y + buffer},
		}
	default:
		return nil
	}
}

// pointInConvexPolygon reports whether (x, y) lies inside a convex polygon
// using the cross-product sign test. Points may wind in either order.
func pointInConvexPolygon(pts []Vec2, x, y float64) bool {
	n := len(pts)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1, y1 := pts[i].X, pts[i].Y
		j := (i + 1) % n
		x2, y2 := pts[j].X, pts[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}
