package tether

import "testing"

func TestDeepestOpenNodeChain(t *testing.T) {
	g := newTestGroup(t)
	a := g.Attach(RootID, nil)
	b := g.Attach(a.ID(), nil)
	g.SetOpen(a.ID(), true, "", nil)
	g.SetOpen(b.ID(), true, "", nil)

	if got := g.DeepestOpenNode(); got != b {
		t.Fatalf("deepest open should be B, got %v", got)
	}
	g.SetOpen(b.ID(), false, "", nil)
	if got := g.DeepestOpenNode(); got != a {
		t.Fatalf("after B closes, deepest open should be A, got %v", got)
	}
	g.SetOpen(a.ID(), false, "", nil)
	if got := g.DeepestOpenNode(); got != nil {
		t.Fatalf("nothing open, got %v", got)
	}
}

func TestDeepestOpenNodeRecencyTieBreak(t *testing.T) {
	g := newTestGroup(t)
	first := g.Attach(RootID, nil)
	second := g.Attach(RootID, nil)
	g.SetOpen(first.ID(), true, "", nil)
	g.SetOpen(second.ID(), true, "", nil)

	if got := g.DeepestOpenNode(); got != second {
		t.Fatal("with two disjoint open chains, the most recently opened tip wins")
	}
	// Re-opening the first chain makes it the most recent.
	g.SetOpen(first.ID(), false, "", nil)
	g.SetOpen(first.ID(), true, "", nil)
	if got := g.DeepestOpenNode(); got != first {
		t.Fatal("recency should follow the opened-at sequence, not tree order")
	}
}

func TestDeepestOpenSkipsNodesWithOpenDescendants(t *testing.T) {
	g := newTestGroup(t)
	parent := g.Attach(RootID, nil)
	child := g.Attach(parent.ID(), nil)
	other := g.Attach(RootID, nil)
	g.SetOpen(parent.ID(), true, "", nil)
	g.SetOpen(other.ID(), true, "", nil)
	g.SetOpen(child.ID(), true, "", nil)

	// parent has an open descendant and is not a tip; child opened last.
	if got := g.DeepestOpenNode(); got != child {
		t.Fatalf("got %v, want the child tip", got)
	}
}

func TestCloseTopmostEscape(t *testing.T) {
	g := newTestGroup(t)
	a := g.Attach(RootID, nil)
	b := g.Attach(a.ID(), nil)
	g.SetOpen(a.ID(), true, "", nil)
	g.SetOpen(b.ID(), true, "", nil)

	events := record(g)
	if got := g.CloseTopmost(nil); got != b {
		t.Fatalf("escape should close B, got %v", got)
	}
	if len(*events) != 1 || (*events)[0].Reason != ReasonEscapeKey {
		t.Error("exactly B should close, with reason escape-key")
	}
	if !a.Data.Open {
		t.Error("A must stay open")
	}
	if g.CloseTopmost(nil) != a {
		t.Error("next escape closes A")
	}
	if g.CloseTopmost(nil) != nil {
		t.Error("escape with nothing open is a no-op")
	}
}

func buildDismissFixture(t *testing.T) (*Group, *SurfaceNode, *SurfaceNode) {
	t.Helper()
	g := newTestGroup(t)
	p := g.Attach(RootID, &Surface{
		Anchor:   NewBox(Rect{X: 0, Y: 0, Width: 20, Height: 10}),
		Floating: NewBox(Rect{X: 0, Y: 10, Width: 60, Height: 80}),
	})
	c := g.Attach(p.ID(), &Surface{
		Anchor:   NewBox(Rect{X: 4, Y: 40, Width: 52, Height: 16}),
		Floating: NewBox(Rect{X: 60, Y: 40, Width: 60, Height: 60}),
	})
	g.SetOpen(p.ID(), true, "", nil)
	g.SetOpen(c.ID(), true, "", nil)
	return g, p, c
}

func TestOutsideDismissRespectsBranch(t *testing.T) {
	g, p, c := buildDismissFixture(t)

	// A click inside C's floating element must not produce P as a target.
	if got := g.OutsideDismissTarget(p.ID(), c.Data.Floating); got != nil {
		t.Errorf("click on open child's floating should protect P, got %v", got)
	}
	if got := g.OutsideDismissTargetAt(p.ID(), 90, 70); got != nil {
		t.Errorf("coordinates inside child's floating should protect P, got %v", got)
	}
	// P's own surfaces protect it too.
	if got := g.OutsideDismissTarget(p.ID(), p.Data.Anchor); got != nil {
		t.Errorf("click on own anchor should protect P, got %v", got)
	}
	// Anything else makes P eligible.
	if got := g.OutsideDismissTarget(p.ID(), NewBox(Rect{X: 900, Y: 900, Width: 1, Height: 1})); got != p {
		t.Errorf("unrelated target should make P eligible, got %v", got)
	}
	if got := g.OutsideDismissTargetAt(p.ID(), 500, 500); got != p {
		t.Errorf("far coordinates should make P eligible, got %v", got)
	}
}

func TestOutsideDismissClosedChildDoesNotProtect(t *testing.T) {
	g, p, c := buildDismissFixture(t)
	g.SetOpen(c.ID(), false, "", nil)

	// C is closed, so its floating rect no longer shields the branch.
	if got := g.OutsideDismissTargetAt(p.ID(), 90, 70); got != p {
		t.Errorf("closed child's floating should not protect P, got %v", got)
	}
}

func TestOutsideDismissUnknownOrClosedNode(t *testing.T) {
	g, p, _ := buildDismissFixture(t)
	if g.OutsideDismissTarget("missing", nil) != nil {
		t.Error("unknown id should resolve to nil")
	}
	g.SetOpen(p.ID(), false, "", nil)
	if g.OutsideDismissTargetAt(p.ID(), 500, 500) != nil {
		t.Error("a closed node is never a dismiss target")
	}
}

func TestDismissOutsideClosesEligibleChains(t *testing.T) {
	g, p, c := buildDismissFixture(t)
	other := g.Attach(RootID, &Surface{
		Anchor:   NewBox(Rect{X: 300, Y: 0, Width: 20, Height: 10}),
		Floating: NewBox(Rect{X: 300, Y: 10, Width: 60, Height: 80}),
	})
	g.SetOpen(other.ID(), true, "", nil)

	// Click inside `other`'s floating: the P chain closes, other survives.
	closed := g.DismissOutside(&InputEvent{Kind: EventPointerDown, X: 320, Y: 40})
	if len(closed) != 1 || closed[0] != p {
		t.Fatalf("closed %v, want just P", closed)
	}
	if p.Data.Open || c.Data.Open {
		t.Error("P's branch should be fully closed")
	}
	if !other.Data.Open {
		t.Error("the chain containing the click must survive")
	}

	// Click in empty space: the remaining chain closes too.
	closed = g.DismissOutside(&InputEvent{Kind: EventPointerDown, X: 500, Y: 500})
	if len(closed) != 1 || closed[0] != other {
		t.Fatalf("closed %v, want just other", closed)
	}
}

func TestDismissOutsideReasons(t *testing.T) {
	g, p, c := buildDismissFixture(t)
	events := record(g)
	g.DismissOutside(&InputEvent{Kind: EventPointerDown, X: 500, Y: 500})

	if len(*events) != 2 {
		t.Fatalf("got %d events, want 2", len(*events))
	}
	if (*events)[0].Node != p || (*events)[0].Reason != ReasonOutsidePointer {
		t.Error("P should close with reason outside-pointer")
	}
	if (*events)[1].Node != c || (*events)[1].Reason != ReasonTreeAncestorClose {
		t.Error("C should close via the cascade")
	}
}
