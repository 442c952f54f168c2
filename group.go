package tether

import (
	"time"

	"github.com/charmbracelet/log"
)

// Group owns one floating hierarchy: the surface tree, the timer scheduler
// its coordinators share, the open-state observers, and the opened-at
// counter. All of it is single-threaded: mutations happen synchronously
// inside host event handlers or scheduled timer callbacks.
type Group struct {
	tree  *SurfaceTree
	sched *Scheduler

	handlers []openHandler
	nextID   uint32
	seq      uint64
	logger   *log.Logger
	disposed bool
}

type openHandler struct {
	id uint32
	fn func(OpenEvent)
}

// CallbackHandle allows removing a registered group-level observer.
type CallbackHandle struct {
	id uint32
	g  *Group
}

// Remove unregisters this observer so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.g == nil {
		return
	}
	s := h.g.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = openHandler{}
			h.g.handlers = s[:len(s)-1]
			return
		}
	}
}

// NewGroup creates a group with a root surface and default tree config.
// The root represents the host scene: it carries no elements and is never
// opened or dismissed by the coordinators.
func NewGroup() *Group {
	return NewGroupWith(TreeConfig{})
}

// NewGroupWith creates a group using the given tree config.
func NewGroupWith(cfg TreeConfig) *Group {
	tree := NewTreeWith(&Surface{Opacity: 1}, cfg)
	return &Group{
		tree:   tree,
		sched:  NewScheduler(),
		logger: tree.Logger(),
	}
}

// Tree returns the group's surface tree for structural queries and mutation.
func (g *Group) Tree() *SurfaceTree {
	return g.tree
}

// Scheduler returns the shared timer scheduler.
func (g *Group) Scheduler() *Scheduler {
	return g.sched
}

// Logger returns the group's logger.
func (g *Group) Logger() *log.Logger {
	return g.logger
}

// SetDebugMode enables tree invariant checking and debug-level logging.
func (g *Group) SetDebugMode(enabled bool) {
	g.tree.SetDebugMode(enabled)
	if enabled {
		g.logger.SetLevel(log.DebugLevel)
	} else {
		g.logger.SetLevel(log.WarnLevel)
	}
}

// Attach creates a node for surface under parentID (RootID for top level).
// A nil surface gets a fresh closed Surface. Returns nil if the parent id
// is unknown.
func (g *Group) Attach(parentID NodeID, surface *Surface) *SurfaceNode {
	if surface == nil {
		surface = &Surface{Opacity: 1}
	}
	return g.tree.AddNode(surface, parentID)
}

// Detach removes the node and its subtree (recursive strategy), closing
// every open surface in it first so observers never see an open surface
// vanish from the index silently. The topmost open node of each run closes
// with ReasonProgrammatic and its open descendants cascade as usual.
func (g *Group) Detach(id NodeID) bool {
	n := g.tree.FindNodeByID(id)
	if n == nil {
		return false
	}
	for _, d := range g.tree.Related(id, RelSelfAndDescendants) {
		if d.Data != nil && d.Data.Open {
			g.SetOpen(d.ID(), false, ReasonProgrammatic, nil)
		}
	}
	return g.tree.RemoveNode(id)
}

// OnOpenChange registers a group-level observer for open-state changes.
// Observers fire in registration order, before the per-surface callback.
func (g *Group) OnOpenChange(fn func(OpenEvent)) CallbackHandle {
	g.nextID++
	id := g.nextID
	g.handlers = append(g.handlers, openHandler{id: id, fn: fn})
	return CallbackHandle{id: id, g: g}
}

// SetOpen sets the open state of the node with the given id. An empty
// reason defaults to ReasonProgrammatic; coordinators always pass one.
// Setting the current value is a no-op. Closing a node also closes every
// currently-open descendant, tagged ReasonTreeAncestorClose, so a closed
// parent never leaves a dangling open child. Unknown ids are a no-op:
// timers and host events may fire after a node was removed. The root is
// also a no-op; it represents the host scene and never opens, so the
// dismissal coordinators can never target it.
func (g *Group) SetOpen(id NodeID, open bool, reason Reason, ev *InputEvent) {
	if g.disposed {
		return
	}
	n := g.tree.FindNodeByID(id)
	if n == nil || n.Data == nil || n.IsRoot() {
		return
	}
	if reason == "" {
		reason = ReasonProgrammatic
	}
	if n.Data.Open == open {
		return
	}
	if open {
		g.seq++
		n.Data.openSeq = g.seq
		n.Data.Open = true
		g.emit(OpenEvent{Node: n, Open: true, Reason: reason, Input: ev})
		return
	}

	// Snapshot the open descendants before mutating anything, then close
	// top-down. Deterministic traversal order per Related.
	var cascade []*SurfaceNode
	for _, d := range g.tree.Related(id, RelSelfAndDescendants) {
		if d != n && d.Data != nil && d.Data.Open {
			cascade = append(cascade, d)
		}
	}
	n.Data.Open = false
	g.emit(OpenEvent{Node: n, Open: false, Reason: reason, Input: ev})
	for _, d := range cascade {
		if !d.Data.Open {
			continue // an observer may have closed it already
		}
		d.Data.Open = false
		g.emit(OpenEvent{Node: d, Open: false, Reason: ReasonTreeAncestorClose, Input: ev})
	}
}

// emit dispatches over a snapshot so observers may remove handles (their
// own included) mid-dispatch without perturbing the iteration. A handle
// removed by an earlier observer no longer fires.
func (g *Group) emit(ev OpenEvent) {
	snap := make([]openHandler, len(g.handlers))
	copy(snap, g.handlers)
	for _, h := range snap {
		if !g.handlerRegistered(h.id) {
			continue
		}
		h.fn(ev)
	}
	if ev.Node.Data.OnOpenChange != nil {
		ev.Node.Data.OnOpenChange(ev)
	}
}

func (g *Group) handlerRegistered(id uint32) bool {
	for _, h := range g.handlers {
		if h.id == id {
			return true
		}
	}
	return false
}

// Update advances the shared scheduler by dt, firing due hover and focus
// timers. Call it once per host frame or tick.
func (g *Group) Update(dt time.Duration) {
	if g.disposed {
		return
	}
	g.sched.Advance(dt)
}

// Dispose cancels every pending timer, drops all observers, and purges the
// tree index so node references can be reclaimed at once. Late timer or
// event callbacks against a disposed group are no-ops.
func (g *Group) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.sched.CancelAll()
	g.handlers = nil
	g.tree.Dispose()
}

// IsDisposed reports whether Dispose has been called.
func (g *Group) IsDisposed() bool {
	return g.disposed
}
