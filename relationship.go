package tether

// Relationship selects the node set an operation should act on, relative to
// a target node. It is a closed set; each selector compiles to its own
// traversal routine in Related.
type Relationship uint8

const (
	// RelSelf selects the target node alone.
	RelSelf Relationship = iota

	// RelChildrenOnly selects the target's direct children (one level).
	RelChildrenOnly

	// RelSiblingsOnly selects the other children of the target's parent,
	// excluding the target itself. Empty for the root and detached nodes.
	RelSiblingsOnly

	// RelSelfAndDescendants selects the target plus its entire subtree.
	RelSelfAndDescendants

	// RelAllExceptBranch selects every attached node that is neither the
	// target, nor one of its ancestors, nor one of its descendants;
	// everything outside the direct root-to-subtree line. Detached nodes
	// are not visited. Used for "inert everything but this branch".
	RelAllExceptBranch
)

// Related returns the nodes matching the relationship selector for the node
// with the given id. Results are in tree traversal order (parents before
// children, children in insertion order) so consumers applying side effects
// see a deterministic sequence. An unknown id yields nil.
func (t *Tree[T]) Related(id NodeID, rel Relationship) []*Node[T] {
	if t.disposed {
		return nil
	}
	n := t.index[id]
	if n == nil {
		return nil
	}
	switch rel {
	case RelSelf:
		return []*Node[T]{n}
	case RelChildrenOnly:
		if len(n.children) == 0 {
			return nil
		}
		out := make([]*Node[T], len(n.children))
		copy(out, n.children)
		return out
	case RelSiblingsOnly:
		if n.parent == nil {
			return nil
		}
		var out []*Node[T]
		for _, sib := range n.parent.children {
			if sib != n {
				out = append(out, sib)
			}
		}
		return out
	case RelSelfAndDescendants:
		return t.Traverse(TraverseDFS, n)
	case RelAllExceptBranch:
		excluded := make(map[NodeID]bool)
		for _, d := range t.Traverse(TraverseDFS, n) {
			excluded[d.id] = true
		}
		for p := n.parent; p != nil; p = p.parent {
			excluded[p.id] = true
		}
		var out []*Node[T]
		for _, m := range t.Traverse(TraverseDFS, nil) {
			if !excluded[m.id] {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

// ApplyToRelated calls visit for each node matching the relationship
// selector, in the same deterministic order as Related. The node list is
// materialized first, so visit may mutate the tree.
func (t *Tree[T]) ApplyToRelated(id NodeID, rel Relationship, visit func(*Node[T])) {
	for _, n := range t.Related(id, rel) {
		visit(n)
	}
}
