package tether

// Modality tracks whether the user is currently driving the app with the
// keyboard or the pointer. It is explicit process state with a defined
// lifecycle: the host feeds it from its input loop (the Adapter does this
// automatically) and injects it into the coordinators that need it, rather
// than the coordinators reading ambient globals.
type Modality struct {
	keyboard bool
}

// NewModality creates a tracker. Pointer modality is the initial state.
func NewModality() *Modality {
	return &Modality{}
}

// NoteKey records keyboard activity.
func (m *Modality) NoteKey() {
	m.keyboard = true
}

// NotePointer records pointer activity.
func (m *Modality) NotePointer() {
	m.keyboard = false
}

// Keyboard reports whether the most recent input was keyboard-driven.
func (m *Modality) Keyboard() bool {
	return m.keyboard
}

// Focus opens surfaces when their anchor gains keyboard focus and closes
// them on blur. Pointer-caused focus is ignored so a click does not double
// as a focus open; the hover and click paths own pointer interactions.
type Focus struct {
	group    *Group
	modality *Modality
}

// NewFocus creates a focus coordinator with the injected modality tracker.
func NewFocus(g *Group, m *Modality) *Focus {
	return &Focus{group: g, modality: m}
}

// FocusIn records the node's anchor gaining focus. Opens with reason focus
// when the focus was keyboard-driven. Unknown ids are a no-op.
func (f *Focus) FocusIn(id NodeID, ev *InputEvent) {
	if !f.modality.Keyboard() {
		return
	}
	f.group.SetOpen(id, true, ReasonFocus, ev)
}

// FocusOut records the node's anchor losing focus. Closes with reason blur,
// unless focus moved to an element of the node's own branch (its surfaces
// or an open descendant's), in which case the branch stays open.
func (f *Focus) FocusOut(id NodeID, ev *InputEvent) {
	n := f.group.tree.FindNodeByID(id)
	if n == nil || n.Data == nil || !n.Data.Open {
		return
	}
	if ev != nil && ev.Target != nil {
		for _, el := range f.group.protectedElements(n) {
			if el == ev.Target {
				return
			}
		}
	}
	f.group.SetOpen(id, false, ReasonBlur, ev)
}
