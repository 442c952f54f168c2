package tether

import "testing"

func TestFocusInOpensOnlyUnderKeyboardModality(t *testing.T) {
	g := newTestGroup(t)
	m := NewModality()
	f := NewFocus(g, m)
	n := g.Attach(RootID, nil)

	f.FocusIn(n.ID(), nil)
	if n.Data.Open {
		t.Fatal("pointer-driven focus must not open")
	}

	m.NoteKey()
	f.FocusIn(n.ID(), nil)
	if !n.Data.Open {
		t.Fatal("keyboard-driven focus should open")
	}
}

func TestFocusInReason(t *testing.T) {
	g := newTestGroup(t)
	events := record(g)
	m := NewModality()
	m.NoteKey()
	f := NewFocus(g, m)
	n := g.Attach(RootID, nil)

	f.FocusIn(n.ID(), nil)
	if (*events)[0].Reason != ReasonFocus {
		t.Errorf("reason = %q, want focus", (*events)[0].Reason)
	}
}

func TestFocusOutClosesWithBlur(t *testing.T) {
	g := newTestGroup(t)
	events := record(g)
	f := NewFocus(g, NewModality())
	n := g.Attach(RootID, nil)
	g.SetOpen(n.ID(), true, "", nil)

	f.FocusOut(n.ID(), &InputEvent{Kind: EventFocusOut})
	if n.Data.Open {
		t.Fatal("blur should close the surface")
	}
	if last := (*events)[len(*events)-1]; last.Reason != ReasonBlur {
		t.Errorf("reason = %q, want blur", last.Reason)
	}
}

func TestFocusOutIntoOwnBranchKeepsOpen(t *testing.T) {
	g := newTestGroup(t)
	f := NewFocus(g, NewModality())
	panel := NewBox(Rect{X: 0, Y: 20, Width: 50, Height: 100})
	childAnchor := NewBox(Rect{X: 10, Y: 30, Width: 30, Height: 10})
	n := g.Attach(RootID, &Surface{Floating: panel})
	c := g.Attach(n.ID(), &Surface{Anchor: childAnchor})
	g.SetOpen(n.ID(), true, "", nil)
	g.SetOpen(c.ID(), true, "", nil)

	// Focus moved to the node's own panel.
	f.FocusOut(n.ID(), &InputEvent{Kind: EventFocusOut, Target: panel})
	if !n.Data.Open {
		t.Error("focus moving into the surface's own panel must not close it")
	}

	// Focus moved to an open descendant's anchor.
	f.FocusOut(n.ID(), &InputEvent{Kind: EventFocusOut, Target: childAnchor})
	if !n.Data.Open {
		t.Error("focus moving into an open descendant must not close the ancestor")
	}

	// Focus moved to an unrelated element.
	f.FocusOut(n.ID(), &InputEvent{Kind: EventFocusOut, Target: NewBox(Rect{X: 500, Y: 500, Width: 10, Height: 10})})
	if n.Data.Open {
		t.Error("focus moving outside the branch should close it")
	}
}

func TestFocusOutOnClosedOrUnknownNode(t *testing.T) {
	g := newTestGroup(t)
	events := record(g)
	f := NewFocus(g, NewModality())
	n := g.Attach(RootID, nil)

	f.FocusOut(n.ID(), nil)
	f.FocusOut("nope", nil)
	if len(*events) != 0 {
		t.Errorf("got %d events, want none", len(*events))
	}
}

func TestModalityTracksLatestInput(t *testing.T) {
	m := NewModality()
	if m.Keyboard() {
		t.Fatal("pointer modality is the initial state")
	}
	m.NoteKey()
	if !m.Keyboard() {
		t.Fatal("key input should switch to keyboard modality")
	}
	m.NotePointer()
	if m.Keyboard() {
		t.Fatal("pointer input should switch back")
	}
}
