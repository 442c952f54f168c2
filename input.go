package tether

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Adapter is the ebiten-facing interaction layer. Once per frame it polls
// the cursor, the primary mouse button, and the Escape key (edge-tracked,
// the way game-loop frameworks process input), maps raw positions onto
// surface elements, and drives the group and its coordinators:
//
//   - entering/leaving a surface's elements feeds the hover coordinator,
//   - a click on an anchor toggles its surface with reason anchor-click,
//   - a click outside every open branch dismisses with reason
//     outside-pointer,
//   - Escape closes the deepest open node with reason escape-key.
//
// The pollers are injectable so tests (and non-ebiten hosts) can drive the
// adapter without a window; InjectMove/InjectPress/InjectRelease/
// InjectEscape queue synthetic events consumed one per Update.
type Adapter struct {
	group    *Group
	hover    *Hover
	focus    *Focus
	modality *Modality

	cursor  func() (float64, float64)
	pressed func() bool
	escape  func() bool

	prevPressed bool
	prevEscape  bool
	lastX       float64
	lastY       float64
	started     bool
	hovered     map[NodeID]bool

	injectQueue []syntheticEvent
}

type syntheticEvent struct {
	x, y    float64
	pressed bool
	escape  bool
}

// NewAdapter creates an adapter with a hover coordinator configured by cfg
// and pollers reading ebiten.
func NewAdapter(g *Group, cfg HoverConfig) *Adapter {
	m := NewModality()
	a := &Adapter{
		group:    g,
		hover:    NewHover(g, cfg),
		modality: m,
		hovered:  make(map[NodeID]bool),
	}
	a.focus = NewFocus(g, m)
	a.cursor = func() (float64, float64) {
		mx, my := ebiten.CursorPosition()
		return float64(mx), float64(my)
	}
	a.pressed = func() bool {
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}
	a.escape = func() bool {
		return ebiten.IsKeyPressed(ebiten.KeyEscape)
	}
	return a
}

// Hover returns the adapter's hover coordinator.
func (a *Adapter) Hover() *Hover {
	return a.hover
}

// Focus returns the adapter's focus coordinator.
func (a *Adapter) Focus() *Focus {
	return a.focus
}

// Modality returns the adapter's input-modality tracker.
func (a *Adapter) Modality() *Modality {
	return a.modality
}

// SetPollers replaces the input sources. Nil arguments keep the current
// poller. Tests use this to feed scripted input.
func (a *Adapter) SetPollers(cursor func() (float64, float64), pressed, escape func() bool) {
	if cursor != nil {
		a.cursor = cursor
	}
	if pressed != nil {
		a.pressed = pressed
	}
	if escape != nil {
		a.escape = escape
	}
}

// --- Synthetic events ---

// InjectMove queues a pointer move to (x, y), consumed on the next Update.
func (a *Adapter) InjectMove(x, y float64) {
	a.injectQueue = append(a.injectQueue, syntheticEvent{x: x, y: y, pressed: a.queuedPressed()})
}

// InjectPress queues a primary-button press at (x, y).
func (a *Adapter) InjectPress(x, y float64) {
	a.injectQueue = append(a.injectQueue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a primary-button release at (x, y).
func (a *Adapter) InjectRelease(x, y float64) {
	a.injectQueue = append(a.injectQueue, syntheticEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same coordinates.
// Consumes two Updates.
func (a *Adapter) InjectClick(x, y float64) {
	a.InjectPress(x, y)
	a.InjectRelease(x, y)
}

// InjectEscape queues an Escape key press (and its release on the following
// Update, so edge detection sees a clean tap).
func (a *Adapter) InjectEscape() {
	a.injectQueue = append(a.injectQueue,
		syntheticEvent{x: a.queuedX(), y: a.queuedY(), escape: true},
		syntheticEvent{x: a.queuedX(), y: a.queuedY()})
}

func (a *Adapter) queuedPressed() bool {
	if len(a.injectQueue) > 0 {
		return a.injectQueue[len(a.injectQueue)-1].pressed
	}
	return a.prevPressed
}

func (a *Adapter) queuedX() float64 {
	if len(a.injectQueue) > 0 {
		return a.injectQueue[len(a.injectQueue)-1].x
	}
	return a.lastX
}

func (a *Adapter) queuedY() float64 {
	if len(a.injectQueue) > 0 {
		return a.injectQueue[len(a.injectQueue)-1].y
	}
	return a.lastY
}

// --- Frame processing ---

// Update advances the group's scheduler by dt and processes one frame of
// input. Call once per host tick.
func (a *Adapter) Update(dt time.Duration) {
	a.group.Update(dt)
	if a.group.IsDisposed() {
		return
	}

	var x, y float64
	var pressed, escape bool
	if len(a.injectQueue) > 0 {
		ev := a.injectQueue[0]
		a.injectQueue = a.injectQueue[1:]
		x, y, pressed, escape = ev.x, ev.y, ev.pressed, ev.escape
	} else {
		x, y = a.cursor()
		pressed = a.pressed()
		escape = a.escape()
	}

	if escape && !a.prevEscape {
		a.modality.NoteKey()
		a.group.CloseTopmost(&InputEvent{Kind: EventKeyDown, X: x, Y: y, Time: time.Now()})
	}
	a.prevEscape = escape

	moved := !a.started || x != a.lastX || y != a.lastY
	a.started = true
	if moved {
		a.modality.NotePointer()
		ev := &InputEvent{Kind: EventPointerMove, X: x, Y: y, Time: time.Now()}
		a.trackEnterLeave(x, y, ev)
		a.hover.PointerMove(x, y, ev)
		a.lastX, a.lastY = x, y
	}

	if pressed && !a.prevPressed {
		a.modality.NotePointer()
		a.pointerDown(x, y)
	}
	a.prevPressed = pressed
}

// trackEnterLeave diffs element hover state per node and feeds the hover
// coordinator. A node counts as hovered while the pointer is over its anchor
// or, when open, its floating element.
func (a *Adapter) trackEnterLeave(x, y float64, ev *InputEvent) {
	now := make(map[NodeID]bool)
	for _, n := range a.group.tree.Traverse(TraverseDFS, nil) {
		if n.Data == nil || n.IsRoot() {
			continue
		}
		if a.over(n, x, y) {
			now[n.ID()] = true
		}
	}
	for id := range a.hovered {
		if !now[id] {
			a.hover.PointerLeave(id, ev)
		}
	}
	for id := range now {
		if !a.hovered[id] {
			a.hover.PointerEnter(id, ev)
		}
	}
	a.hovered = now
}

func (a *Adapter) over(n *SurfaceNode, x, y float64) bool {
	s := n.Data
	if s.Anchor != nil && s.Anchor.Contains(x, y) {
		return true
	}
	if s.Open && s.Floating != nil && s.Floating.Contains(x, y) {
		return true
	}
	return false
}

// pointerDown resolves a press: anchor hits toggle, floating hits are
// ignored (clicks inside an open panel), anything else runs outside
// dismissal across all open chains.
func (a *Adapter) pointerDown(x, y float64) {
	ev := &InputEvent{Kind: EventPointerDown, X: x, Y: y, Time: time.Now()}

	// Deepest anchor match wins, matching reverse painter order: submenu
	// items sit over their ancestors' panels.
	var target *SurfaceNode
	insidePanel := false
	for _, n := range a.group.tree.Traverse(TraverseDFS, nil) {
		if n.Data == nil || n.IsRoot() {
			continue
		}
		if n.Data.Anchor != nil && n.Data.Anchor.Contains(x, y) {
			target = n
			ev.Target = n.Data.Anchor
		}
		if n.Data.Open && n.Data.Floating != nil && n.Data.Floating.Contains(x, y) {
			insidePanel = true
		}
	}
	if target != nil {
		a.group.SetOpen(target.ID(), !target.Data.Open, ReasonAnchorClick, ev)
		return
	}
	if insidePanel {
		return
	}
	a.group.DismissOutside(ev)
}

// Activate toggles a surface from a keyboard activation (Enter/Space on a
// focused anchor). Hosts that track focus call this; the adapter has no
// focus notion of its own under ebiten.
func (a *Adapter) Activate(id NodeID) {
	a.modality.NoteKey()
	n := a.group.tree.FindNodeByID(id)
	if n == nil || n.Data == nil {
		return
	}
	ev := &InputEvent{Kind: EventKeyDown, X: a.lastX, Y: a.lastY, Time: time.Now()}
	a.group.SetOpen(id, !n.Data.Open, ReasonKeyboardActivate, ev)
}
