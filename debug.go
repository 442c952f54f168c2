package tether

import "fmt"

// Invariant checking runs after every structural mutation when debug mode is
// enabled. A violation is a programming error (a bug in tether, or
// structure mutated outside the Tree API), so it panics rather than
// returning an error; caller input mistakes never reach these checks.

// checkInvariants verifies the parent/children relation is mutually
// consistent, the structure is acyclic, and the index covers exactly the
// live nodes. No-op unless SetDebugMode(true) was called.
func (t *Tree[T]) checkInvariants() {
	if !t.debug {
		return
	}
	seen := make(map[NodeID]bool, len(t.index))
	for id, n := range t.index {
		if n.id != id {
			panic(fmt.Sprintf("tether debug: index entry %q holds node with id %q", id, n.id))
		}
		if n.parent != nil {
			if !containsChild(n.parent, n) {
				panic(fmt.Sprintf("tether debug: node %q has parent %q whose children do not include it",
					n.id, n.parent.id))
			}
			if t.index[n.parent.id] != n.parent {
				panic(fmt.Sprintf("tether debug: node %q has unindexed parent %q", n.id, n.parent.id))
			}
		}
		for _, c := range n.children {
			if c.parent != n {
				panic(fmt.Sprintf("tether debug: node %q lists child %q whose parent is not it",
					n.id, c.id))
			}
		}
		t.checkAcyclic(n)
		seen[id] = true
	}
	if t.root != nil {
		for _, n := range t.Traverse(TraverseDFS, nil) {
			if !seen[n.id] {
				panic(fmt.Sprintf("tether debug: reachable node %q missing from index", n.id))
			}
		}
	}
}

// checkAcyclic panics if n appears on its own ancestor chain. The walk is
// bounded by the index size so a cyclic chain cannot loop forever.
func (t *Tree[T]) checkAcyclic(n *Node[T]) {
	steps := 0
	for p := n.parent; p != nil; p = p.parent {
		if p == n {
			panic(fmt.Sprintf("tether debug: node %q is its own ancestor", n.id))
		}
		steps++
		if steps > len(t.index) {
			panic(fmt.Sprintf("tether debug: ancestor chain of node %q does not terminate", n.id))
		}
	}
}

func containsChild[T any](parent, child *Node[T]) bool {
	for _, c := range parent.children {
		if c == child {
			return true
		}
	}
	return false
}
