package tether

// Dismissal resolution. Escape-key handling targets the deepest open node,
// the tip of the most recently opened chain; outside-pointer handling
// protects a branch's own surfaces so a click inside an open submenu never
// dismisses its ancestors.

// DeepestOpenNode returns the open node with no open descendant: the active
// tip of an open chain. When several disjoint chains are open, the tie
// breaks by recency, picking the tip whose surface has the highest
// opened-at sequence. Returns nil when nothing is open.
func (g *Group) DeepestOpenNode() *SurfaceNode {
	var best *SurfaceNode
	for _, n := range g.tree.Traverse(TraverseDFS, nil) {
		if n.Data == nil || !n.Data.Open {
			continue
		}
		if g.hasOpenDescendant(n) {
			continue
		}
		if best == nil || n.Data.openSeq > best.Data.openSeq {
			best = n
		}
	}
	return best
}

func (g *Group) hasOpenDescendant(n *SurfaceNode) bool {
	for _, d := range g.tree.Traverse(TraverseDFS, n) {
		if d != n && d.Data != nil && d.Data.Open {
			return true
		}
	}
	return false
}

// CloseTopmost closes exactly the deepest open node with reason escape-key
// and returns it. A no-op returning nil when nothing is open. This is the
// handler behind the Escape key and generic "close the active surface"
// actions.
func (g *Group) CloseTopmost(ev *InputEvent) *SurfaceNode {
	n := g.DeepestOpenNode()
	if n == nil {
		return nil
	}
	g.SetOpen(n.ID(), false, ReasonEscapeKey, ev)
	return n
}

// OutsideDismissTarget reports whether the node with the given id should be
// dismissed by a pointer event on target, returning the node when eligible
// and nil otherwise. The protected set is the node's own anchor and
// floating elements plus those of every currently-open descendant; a target
// identical to any protected element keeps the whole branch alive, so a
// click inside an open submenu never dismisses its open ancestor. Unknown
// or closed ids yield nil.
func (g *Group) OutsideDismissTarget(id NodeID, target Element) *SurfaceNode {
	n := g.tree.FindNodeByID(id)
	if n == nil || n.Data == nil || !n.Data.Open {
		return nil
	}
	if target != nil {
		for _, el := range g.protectedElements(n) {
			if el == target {
				return nil
			}
		}
	}
	return n
}

// OutsideDismissTargetAt is OutsideDismissTarget for hosts that identify
// pointer events by coordinates rather than element identity: the node is
// eligible when (x, y) lies inside none of the branch's protected elements.
func (g *Group) OutsideDismissTargetAt(id NodeID, x, y float64) *SurfaceNode {
	n := g.tree.FindNodeByID(id)
	if n == nil || n.Data == nil || !n.Data.Open {
		return nil
	}
	for _, el := range g.protectedElements(n) {
		if el.Contains(x, y) {
			return nil
		}
	}
	return n
}

// protectedElements collects the anchor and floating elements of n plus
// those of every currently-open descendant, in tree traversal order.
func (g *Group) protectedElements(n *SurfaceNode) []Element {
	var out []Element
	for _, d := range g.tree.Related(n.ID(), RelSelfAndDescendants) {
		if d.Data == nil {
			continue
		}
		if d != n && !d.Data.Open {
			continue
		}
		if d.Data.Anchor != nil {
			out = append(out, d.Data.Anchor)
		}
		if d.Data.Floating != nil {
			out = append(out, d.Data.Floating)
		}
	}
	return out
}

// DismissOutside runs outside-pointer resolution for every open chain: each
// open node with no open ancestor is checked against the event coordinates
// (and target identity, when present) and closed with reason outside-pointer
// if eligible. Descendants follow via the ancestor-close cascade. Returns
// the nodes that were closed directly.
func (g *Group) DismissOutside(ev *InputEvent) []*SurfaceNode {
	if ev == nil {
		return nil
	}
	// Snapshot the chain roots first; closing mutates open state.
	var roots []*SurfaceNode
	for _, n := range g.tree.Traverse(TraverseDFS, nil) {
		if n.Data == nil || !n.Data.Open {
			continue
		}
		if g.hasOpenAncestor(n) {
			continue
		}
		roots = append(roots, n)
	}
	var closed []*SurfaceNode
	for _, n := range roots {
		if !n.Data.Open {
			continue
		}
		target := g.OutsideDismissTargetAt(n.ID(), ev.X, ev.Y)
		if target == nil {
			continue
		}
		if ev.Target != nil && g.OutsideDismissTarget(n.ID(), ev.Target) == nil {
			continue
		}
		g.SetOpen(n.ID(), false, ReasonOutsidePointer, ev)
		closed = append(closed, n)
	}
	return closed
}

func (g *Group) hasOpenAncestor(n *SurfaceNode) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Data != nil && p.Data.Open {
			return true
		}
	}
	return false
}
