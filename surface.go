package tether

// Surface is the per-node payload of a floating hierarchy: the open flag,
// the host element handles the coordinators hit-test against, and the last
// output of the positioning engine. A Surface is exclusively owned by its
// node; the Group mutates Open, callers mutate the rest.
type Surface struct {
	// Open is the surface's visibility state. Mutate it through
	// Group.SetOpen only, so observers and the close cascade run.
	Open bool

	// Anchor is the element the surface is anchored to (a menu item, a
	// button). May be nil for surfaces opened programmatically.
	Anchor Element

	// Floating is the floating panel element itself. May be nil until the
	// host first lays the surface out.
	Floating Element

	// Position is the most recent positioning-engine output, written by a
	// Positioner observer. Opaque to the coordinators.
	Position Position

	// Opacity is a presentation hint in [0, 1] driven by Transition.
	// Hosts not using transitions can ignore it. Defaults to 1.
	Opacity float64

	// OnOpenChange is the per-surface observer, called after group-level
	// handlers. Nil by default; zero cost when unused.
	OnOpenChange func(OpenEvent)

	// UserData is free for the host.
	UserData any

	// openSeq is the opened-at recency stamp, assigned by the Group when
	// Open transitions to true. Breaks ties between disjoint open chains.
	openSeq uint64
}

// OpenSeq returns the surface's opened-at sequence number: a per-Group
// monotonic counter stamped on each closed-to-open transition. Zero means
// the surface has never been opened.
func (s *Surface) OpenSeq() uint64 {
	return s.openSeq
}

// SurfaceNode is a tree node carrying a Surface payload.
type SurfaceNode = Node[*Surface]

// SurfaceTree is the tree type a Group owns.
type SurfaceTree = Tree[*Surface]

// OpenEvent is the tuple observers receive on every open-state mutation.
type OpenEvent struct {
	Node   *SurfaceNode
	Open   bool
	Reason Reason
	Input  *InputEvent // triggering host event, or nil
}
