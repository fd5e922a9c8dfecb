// Package svgscene implements the output scene graph: a tree of SVG
// elements stored in an arena and addressed by stable handles, with
// an XML writer and reader and the canonicalization passes run after
// compositing.
//
// Relations (parent, children, references) are handle links, so
// splicing and reference rewriting are handle reassignments, never
// identity searches through child lists.
package svgscene

// NodeID is a stable handle into a Tree. Handles remain valid for the
// whole life of the tree; removed nodes are only detached.
type NodeID int

// None is the null handle.
const None NodeID = -1

// Attr is one attribute. Attribute order is insertion order and is
// preserved by the writer.
type Attr struct {
	Name, Value string
}

type element struct {
	tag    string
	attrs  []Attr
	kids   []NodeID
	parent NodeID

	// character data before the first child, and after the closing
	// tag (the "tail", part of the parent's text stream)
	text, tail string
}

// Tree is an SVG document: an arena of elements with the root at
// handle 0. The zero value is not usable, use NewTree.
type Tree struct {
	nodes []element
}

// NewTree returns a tree with a single root element.
func NewTree(rootTag string) *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, element{tag: rootTag, parent: None})
	return t
}

// Root returns the handle of the root element.
func (t *Tree) Root() NodeID { return 0 }

// New allocates a detached element.
func (t *Tree) New(tag string) NodeID {
	t.nodes = append(t.nodes, element{tag: tag, parent: None})
	return NodeID(len(t.nodes) - 1)
}

// NewChild allocates an element and appends it to parent.
func (t *Tree) NewChild(parent NodeID, tag string) NodeID {
	id := t.New(tag)
	t.Append(parent, id)
	return id
}

// Append attaches child as the last child of parent, detaching it
// from its current parent first if needed.
func (t *Tree) Append(parent, child NodeID) {
	t.Detach(child)
	t.nodes[child].parent = parent
	t.nodes[parent].kids = append(t.nodes[parent].kids, child)
}

// InsertAt attaches child at position i among parent's children.
func (t *Tree) InsertAt(parent, child NodeID, i int) {
	t.Detach(child)
	t.nodes[child].parent = parent
	kids := t.nodes[parent].kids
	kids = append(kids, None)
	copy(kids[i+1:], kids[i:])
	kids[i] = child
	t.nodes[parent].kids = kids
}

// Detach removes the node from its parent's child list. The handle
// stays valid and the subtree intact.
func (t *Tree) Detach(id NodeID) {
	p := t.nodes[id].parent
	if p == None {
		return
	}
	kids := t.nodes[p].kids
	for i, k := range kids {
		if k == id {
			t.nodes[p].kids = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	t.nodes[id].parent = None
}

// Tag returns the element name.
func (t *Tree) Tag(id NodeID) string { return t.nodes[id].tag }

// Parent returns the parent handle, or None.
func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].parent }

// Children returns the child handles. The returned slice is owned by
// the tree and must not be mutated.
func (t *Tree) Children(id NodeID) []NodeID { return t.nodes[id].kids }

// Index returns the position of id among its siblings, or -1.
func (t *Tree) Index(id NodeID) int {
	p := t.nodes[id].parent
	if p == None {
		return -1
	}
	for i, k := range t.nodes[p].kids {
		if k == id {
			return i
		}
	}
	return -1
}

// SetAttr sets (or replaces) an attribute.
func (t *Tree) SetAttr(id NodeID, name, value string) {
	attrs := t.nodes[id].attrs
	for i := range attrs {
		if attrs[i].Name == name {
			attrs[i].Value = value
			return
		}
	}
	t.nodes[id].attrs = append(attrs, Attr{name, value})
}

// Attr returns the attribute value, or "".
func (t *Tree) Attr(id NodeID, name string) string {
	for _, a := range t.nodes[id].attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the attribute is present, even empty.
func (t *Tree) HasAttr(id NodeID, name string) bool {
	for _, a := range t.nodes[id].attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// DeleteAttr removes an attribute if present.
func (t *Tree) DeleteAttr(id NodeID, name string) {
	attrs := t.nodes[id].attrs
	for i := range attrs {
		if attrs[i].Name == name {
			t.nodes[id].attrs = append(attrs[:i], attrs[i+1:]...)
			return
		}
	}
}

// Attrs returns the attributes in insertion order. The returned slice
// is owned by the tree and must not be mutated.
func (t *Tree) Attrs(id NodeID) []Attr { return t.nodes[id].attrs }

// Text returns the character data before the first child.
func (t *Tree) Text(id NodeID) string { return t.nodes[id].text }

// SetText sets the character data before the first child.
func (t *Tree) SetText(id NodeID, s string) { t.nodes[id].text = s }

// Tail returns the character data following the element, which
// belongs to the parent's text stream.
func (t *Tree) Tail(id NodeID) string { return t.nodes[id].tail }

// SetTail sets the trailing character data.
func (t *Tree) SetTail(id NodeID, s string) { t.nodes[id].tail = s }

// Walk visits the subtree rooted at id in document order. Returning
// false from fn skips the children of the current node.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	// the callback may splice children; walk a snapshot
	kids := append([]NodeID(nil), t.nodes[id].kids...)
	for _, k := range kids {
		if t.nodes[k].parent != id {
			continue // moved away by the callback
		}
		t.Walk(k, fn)
	}
}
