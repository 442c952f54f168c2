package tether

import "time"

// Vec2 is a 2D point or offset in screen coordinates.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Element is an opaque handle to a host-rendered surface region (an anchor
// or a floating panel). The coordinators never inspect how an element is
// drawn; they only need its bounds for hit testing and its identity for
// outside-dismissal protection. Elements are compared by interface identity,
// so implementations should be pointer types.
type Element interface {
	Bounds() Rect
	Contains(x, y float64) bool
}

// Box is the standard rectangular Element. Hosts that render plain
// rectangles can use it directly; anything fancier implements Element.
type Box struct {
	Rect Rect
}

// NewBox creates a Box element with the given bounds.
func NewBox(r Rect) *Box {
	return &Box{Rect: r}
}

// Bounds returns the box rectangle.
func (b *Box) Bounds() Rect {
	return b.Rect
}

// Contains reports whether (x, y) lies inside the box.
func (b *Box) Contains(x, y float64) bool {
	return b.Rect.Contains(x, y)
}

// Reason tags every open-state change with its cause. Coordinators always
// pass an explicit reason; only direct external callers may omit one, in
// which case it defaults to ReasonProgrammatic.
type Reason string

const (
	ReasonAnchorClick       Reason = "anchor-click"
	ReasonKeyboardActivate  Reason = "keyboard-activate"
	ReasonOutsidePointer    Reason = "outside-pointer"
	ReasonFocus             Reason = "focus"
	ReasonBlur              Reason = "blur"
	ReasonHover             Reason = "hover"
	ReasonEscapeKey         Reason = "escape-key"
	ReasonTreeAncestorClose Reason = "tree-ancestor-close"
	ReasonProgrammatic      Reason = "programmatic"
)

// EventKind identifies a kind of host input event.
type EventKind uint8

const (
	EventPointerDown EventKind = iota // a pointer button was pressed
	EventPointerUp                    // a pointer button was released
	EventPointerMove                  // the pointer moved with no button held
	EventKeyDown                      // a key was pressed
	EventFocusIn                      // an anchor received focus
	EventFocusOut                     // an anchor lost focus
)

// InputEvent carries the host-event data the coordinators care about:
// target identity, kind, coordinates, and timestamp. It is an optional
// attachment to an open-state change; a nil *InputEvent means the change
// had no triggering input (programmatic or timer-driven).
type InputEvent struct {
	Kind   EventKind
	X, Y   float64
	Target Element // element under the pointer, or nil
	Time   time.Time
}
