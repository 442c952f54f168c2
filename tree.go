package tether

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NodeID identifies a node within one Tree. IDs are opaque, stable for the
// node's lifetime, and unique per tree. The zero value ("") is reserved and
// means "the root" where an operation accepts a parent id.
type NodeID string

// RootID is the parent id to pass when attaching directly under the root.
const RootID NodeID = ""

// DeleteStrategy selects what happens to a removed node's children.
type DeleteStrategy uint8

const (
	// DeleteRecursive detaches and purges the node's entire subtree,
	// post-order, so a node's index entry outlives its descendants'.
	DeleteRecursive DeleteStrategy = iota

	// DeleteOrphan detaches the node's direct children, leaving them
	// parentless but still indexed so they can be re-parented later.
	DeleteOrphan
)

// TraversalOrder selects the visiting order for Tree.Traverse.
type TraversalOrder uint8

const (
	TraverseDFS TraversalOrder = iota // pre-order, left to right
	TraverseBFS                       // level by level, left to right
)

// --- Node ---

// Node is a single addressable entry in a Tree: identity, owned payload,
// a navigational parent back-reference, and an ordered child list. Only the
// owning Tree mutates the structure; callers mutate Data freely.
type Node[T any] struct {
	id       NodeID
	Data     T
	parent   *Node[T]
	children []*Node[T]
	root     bool
}

// ID returns the node's identifier.
func (n *Node[T]) ID() NodeID {
	return n.id
}

// Parent returns the owning node, or nil for the root and for detached nodes.
// The back-reference is purely navigational; ownership flows through the
// child lists only.
func (n *Node[T]) Parent() *Node[T] {
	return n.parent
}

// Children returns the ordered child list. The returned slice MUST NOT be
// mutated by the caller; insertion order defines sibling order for traversal.
func (n *Node[T]) Children() []*Node[T] {
	return n.children
}

// NumChildren returns the number of direct children.
func (n *Node[T]) NumChildren() int {
	return len(n.children)
}

// IsRoot reports whether this node is the tree's true root, as opposed to a
// detached node that merely has no parent.
func (n *Node[T]) IsRoot() bool {
	return n.root
}

// IsDetached reports whether this node has been orphaned: still indexed but
// not reachable from the root.
func (n *Node[T]) IsDetached() bool {
	return n.parent == nil && !n.root
}

// --- Tree ---

// TreeConfig carries optional Tree settings. The zero value gives recursive
// deletion, uuid-generated ids, and a stderr warn-level logger.
type TreeConfig struct {
	// DeleteStrategy applied by RemoveNode. Default DeleteRecursive.
	DeleteStrategy DeleteStrategy

	// Logger receives development-time warnings (duplicate id recovery).
	Logger *log.Logger

	// NewID generates node ids. Default: random uuid strings.
	NewID func() NodeID
}

// Tree owns a root node, the id index, and all structural mutation. A Tree
// is exclusively owned by the scope that created it and is not safe for
// concurrent use; all mutation happens synchronously inside host event or
// timer callbacks.
type Tree[T any] struct {
	root     *Node[T]
	index    map[NodeID]*Node[T]
	strategy DeleteStrategy
	logger   *log.Logger
	newID    func() NodeID
	debug    bool
	disposed bool
}

// NewTree creates a tree whose root owns rootData, with default config.
func NewTree[T any](rootData T) *Tree[T] {
	return NewTreeWith(rootData, TreeConfig{})
}

// NewTreeWith creates a tree whose root owns rootData.
func NewTreeWith[T any](rootData T, cfg TreeConfig) *Tree[T] {
	if cfg.Logger == nil {
		cfg.Logger = defaultLogger()
	}
	if cfg.NewID == nil {
		cfg.NewID = func() NodeID { return NodeID(uuid.NewString()) }
	}
	t := &Tree[T]{
		index:    make(map[NodeID]*Node[T]),
		strategy: cfg.DeleteStrategy,
		logger:   cfg.Logger,
		newID:    cfg.NewID,
	}
	root := &Node[T]{id: t.newID(), Data: rootData, root: true}
	t.root = root
	t.index[root.id] = root
	return t
}

func defaultLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:  log.WarnLevel,
		Prefix: "tether",
	})
}

// Root returns the tree's root node.
func (t *Tree[T]) Root() *Node[T] {
	return t.root
}

// Len returns the number of indexed nodes, including detached ones.
func (t *Tree[T]) Len() int {
	return len(t.index)
}

// Logger returns the tree's logger.
func (t *Tree[T]) Logger() *log.Logger {
	return t.logger
}

// SetDebugMode enables invariant checking after every mutation. Violations
// panic; they indicate a bug in tether itself or structure mutated outside
// the Tree API, never a caller input error.
func (t *Tree[T]) SetDebugMode(enabled bool) {
	t.debug = enabled
}

// AddNode creates a node owning data and attaches it under parentID.
// Pass RootID to attach under the root. Returns nil if parentID is non-root
// and unknown, or if the tree has been disposed; the tree is unmodified.
func (t *Tree[T]) AddNode(data T, parentID NodeID) *Node[T] {
	return t.AddNodeWithID(t.newID(), data, parentID)
}

// AddNodeWithID is AddNode with a caller-supplied id. A duplicate id is
// recovered locally: a fresh id is generated and a warning logged, and the
// add proceeds.
func (t *Tree[T]) AddNodeWithID(id NodeID, data T, parentID NodeID) *Node[T] {
	if t.disposed {
		return nil
	}
	parent := t.root
	if parentID != RootID {
		parent = t.index[parentID]
		if parent == nil {
			return nil
		}
	}
	if id == RootID {
		id = t.newID()
	}
	if _, taken := t.index[id]; taken {
		fresh := t.newID()
		t.logger.Warn("duplicate node id, generated a fresh one",
			"id", id, "fresh", fresh)
		id = fresh
	}
	n := &Node[T]{id: id, Data: data, parent: parent}
	parent.children = append(parent.children, n)
	t.index[id] = n
	t.checkInvariants()
	return n
}

// RemoveNode detaches the node with the given id using the tree's configured
// deletion strategy. Returns false if the id is unknown or refers to the
// root; a second call for the same id returns false.
func (t *Tree[T]) RemoveNode(id NodeID) bool {
	return t.RemoveNodeWith(id, t.strategy)
}

// RemoveNodeWith is RemoveNode with an explicit strategy.
func (t *Tree[T]) RemoveNodeWith(id NodeID, strategy DeleteStrategy) bool {
	if t.disposed {
		return false
	}
	n := t.index[id]
	if n == nil || n.root {
		return false
	}
	switch strategy {
	case DeleteOrphan:
		for _, child := range n.children {
			child.parent = nil
		}
		n.children = nil
	default:
		// Post-order: a node's own index entry is purged only after its
		// subtree is purged.
		t.purgeSubtree(n)
	}
	if n.parent != nil {
		n.parent.detachChild(n)
		n.parent = nil
	}
	delete(t.index, id)
	t.checkInvariants()
	return true
}

// purgeSubtree detaches and unindexes every descendant of n, post-order.
// n itself stays indexed; the caller purges it last.
func (t *Tree[T]) purgeSubtree(n *Node[T]) {
	for _, child := range n.children {
		t.purgeSubtree(child)
		child.parent = nil
		delete(t.index, child.id)
	}
	n.children = nil
}

// MoveNode re-parents the node with the given id under newParentID.
// Returns false, leaving the tree unmodified, when: either id is unknown,
// id refers to the root, id == newParentID, or the new parent sits inside
// the moving node's own subtree (the cycle guard walks the new parent's
// ancestor chain). Detached nodes may be moved back under any parent.
func (t *Tree[T]) MoveNode(id, newParentID NodeID) bool {
	if t.disposed {
		return false
	}
	n := t.index[id]
	if n == nil || n.root {
		return false
	}
	newParent := t.root
	if newParentID != RootID {
		newParent = t.index[newParentID]
		if newParent == nil {
			return false
		}
	}
	if newParent == n {
		return false
	}
	// Cycle guard: if the new parent's ancestor chain reaches the moving
	// node, the move would make n its own ancestor.
	for p := newParent; p != nil; p = p.parent {
		if p.id == id {
			return false
		}
	}
	if n.parent != nil {
		n.parent.detachChild(n)
	}
	n.parent = newParent
	newParent.children = append(newParent.children, n)
	t.checkInvariants()
	return true
}

// FindNodeByID returns the indexed node for id, or nil. Detached nodes are
// still found until they are removed.
func (t *Tree[T]) FindNodeByID(id NodeID) *Node[T] {
	if t.disposed {
		return nil
	}
	return t.index[id]
}

// Traverse returns the nodes reachable from start (the root if start is nil)
// as a flat list. TraverseDFS yields pre-order, left to right; TraverseBFS
// yields level order. The list is materialized before the caller applies
// side effects, so mutating the tree while iterating the result is safe.
func (t *Tree[T]) Traverse(order TraversalOrder, start *Node[T]) []*Node[T] {
	if t.disposed {
		return nil
	}
	if start == nil {
		start = t.root
	}
	switch order {
	case TraverseBFS:
		var out []*Node[T]
		queue := []*Node[T]{start}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			out = append(out, n)
			queue = append(queue, n.children...)
		}
		return out
	default:
		var out []*Node[T]
		// Children are pushed in reverse so the leftmost child pops first.
		stack := []*Node[T]{start}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			out = append(out, n)
			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, n.children[i])
			}
		}
		return out
	}
}

// Dispose purges the index so all node references can be reclaimed at once.
// Further structural operations are no-ops (or return nil/false). Disposal
// is explicit; a torn-down host must call it so pending coordinator timers
// can be cancelled alongside (see Group.Dispose).
func (t *Tree[T]) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	for id, n := range t.index {
		n.parent = nil
		n.children = nil
		delete(t.index, id)
	}
	t.root = nil
}

// IsDisposed reports whether Dispose has been called.
func (t *Tree[T]) IsDisposed() bool {
	return t.disposed
}

// detachChild removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node[T]) detachChild(child *Node[T]) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
