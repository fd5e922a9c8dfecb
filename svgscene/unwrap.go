package svgscene

// UnwrapGroups replaces every <g> wrapper that cannot affect
// rendering by its children, splicing trailing text into the
// surrounding document-order text stream. Empty such wrappers are
// deleted. Nested wrappers are resolved in one application.
func (t *Tree) UnwrapGroups() {
	t.unwrapIn(t.Root())
}

func (t *Tree) unwrapIn(id NodeID) {
	kids := append([]NodeID(nil), t.Children(id)...)
	for _, k := range kids {
		t.unwrapIn(k)
	}
	// children are fully unwrapped; now splice the removable ones
	for i := 0; i < len(t.nodes[id].kids); {
		k := t.nodes[id].kids[i]
		if !t.unwrappable(k) {
			i++
			continue
		}
		i += t.splice(id, i)
	}
}

// unwrappable reports whether the element is a wrapper group whose
// removal is render-neutral: no attribute beyond an empty class, and
// no title or desc child.
func (t *Tree) unwrappable(id NodeID) bool {
	if t.Tag(id) != "g" {
		return false
	}
	for _, a := range t.Attrs(id) {
		if a.Name == "class" && a.Value == "" {
			continue
		}
		return false
	}
	for _, k := range t.Children(id) {
		switch t.Tag(k) {
		case "title", "desc":
			return false
		}
	}
	return true
}

// splice replaces the wrapper at position pos of parent by its
// children and returns the number of nodes inserted.
func (t *Tree) splice(parent NodeID, pos int) int {
	w := t.nodes[parent].kids[pos]
	t.spliceText(parent, pos, t.Text(w))

	children := append([]NodeID(nil), t.nodes[w].kids...)
	if n := len(children); n > 0 {
		last := children[n-1]
		t.SetTail(last, t.Tail(last)+t.Tail(w))
	} else {
		t.spliceText(parent, pos, t.Tail(w))
	}

	for _, c := range children {
		t.nodes[c].parent = parent
	}
	kids := t.nodes[parent].kids
	merged := make([]NodeID, 0, len(kids)-1+len(children))
	merged = append(merged, kids[:pos]...)
	merged = append(merged, children...)
	merged = append(merged, kids[pos+1:]...)
	t.nodes[parent].kids = merged

	t.nodes[w].parent = None
	t.nodes[w].kids = nil
	t.nodes[w].text, t.nodes[w].tail = "", ""
	return len(children)
}

// spliceText appends s to the text stream right before position pos
// of parent: the previous sibling's tail, or the parent's leading
// text when pos is 0.
func (t *Tree) spliceText(parent NodeID, pos int, s string) {
	if s == "" {
		return
	}
	if pos == 0 {
		t.SetText(parent, t.Text(parent)+s)
		return
	}
	prev := t.nodes[parent].kids[pos-1]
	t.SetTail(prev, t.Tail(prev)+s)
}
