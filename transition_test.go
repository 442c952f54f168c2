package tether

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTransitionsFadeInOnOpen(t *testing.T) {
	g := newTestGroup(t)
	tr := NewTransitions(g, 0.2, 0.1, ease.Linear)
	n := g.Attach(RootID, nil)
	n.Data.Opacity = 0

	g.SetOpen(n.ID(), true, "", nil)
	if tr.Running() != 1 {
		t.Fatalf("running = %d, want 1", tr.Running())
	}

	tr.Update(0.1)
	if math.Abs(n.Data.Opacity-0.5) > 1e-4 {
		t.Errorf("opacity = %v halfway through a linear fade, want 0.5", n.Data.Opacity)
	}
	tr.Update(0.1)
	if n.Data.Opacity != 1 {
		t.Errorf("opacity = %v at the end of the fade, want 1", n.Data.Opacity)
	}
	if tr.Running() != 0 {
		t.Error("finished fade should be dropped")
	}
}

func TestTransitionsFadeOutFromCurrentOpacity(t *testing.T) {
	g := newTestGroup(t)
	tr := NewTransitions(g, 0.2, 0.1, ease.Linear)
	n := g.Attach(RootID, nil)
	n.Data.Opacity = 0

	// Close mid-fade: the fade out starts from wherever the fade in got to.
	g.SetOpen(n.ID(), true, "", nil)
	tr.Update(0.1)
	g.SetOpen(n.ID(), false, "", nil)
	tr.Update(0.05)
	if math.Abs(n.Data.Opacity-0.25) > 1e-4 {
		t.Errorf("opacity = %v halfway through a fade out from 0.5, want 0.25", n.Data.Opacity)
	}
	tr.Update(1)
	if n.Data.Opacity != 0 {
		t.Errorf("opacity = %v after the fade out, want 0", n.Data.Opacity)
	}
}

func TestTransitionsFadeCascadeCloses(t *testing.T) {
	g := newTestGroup(t)
	tr := NewTransitions(g, 0.1, 0.1, ease.Linear)
	parent := g.Attach(RootID, nil)
	child := g.Attach(parent.ID(), nil)
	g.SetOpen(parent.ID(), true, "", nil)
	g.SetOpen(child.ID(), true, "", nil)
	tr.Update(1)

	g.SetOpen(parent.ID(), false, "", nil)
	if tr.Running() != 2 {
		t.Fatalf("running = %d after a cascading close, want 2", tr.Running())
	}
	tr.Update(1)
	if parent.Data.Opacity != 0 || child.Data.Opacity != 0 {
		t.Error("cascade-closed surfaces should fade out too")
	}
}

func TestTransitionsDropRemovedNodes(t *testing.T) {
	g := newTestGroup(t)
	tr := NewTransitions(g, 0.1, 0.1, ease.Linear)
	n := g.Attach(RootID, nil)
	g.SetOpen(n.ID(), true, "", nil)

	g.Tree().RemoveNode(n.ID())
	tr.Update(0.05)
	if tr.Running() != 0 {
		t.Error("fades targeting removed nodes should be dropped")
	}
}

func TestTransitionsRemove(t *testing.T) {
	g := newTestGroup(t)
	tr := NewTransitions(g, 0.1, 0.1, ease.Linear)
	n := g.Attach(RootID, nil)
	g.SetOpen(n.ID(), true, "", nil)
	tr.Remove()
	if tr.Running() != 0 {
		t.Fatal("Remove should drop running fades")
	}

	g.SetOpen(n.ID(), false, "", nil)
	if tr.Running() != 0 {
		t.Error("removed driver must not pick up new changes")
	}
}
