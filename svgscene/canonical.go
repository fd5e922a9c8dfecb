package svgscene

import (
	"sort"
	"strings"
)

// The canonicalizer runs after compositing (or on any parsed SVG):
// Consolidate gathers scattered definitions into one pool,
// Deduplicate merges structurally identical definitions and rewrites
// their reference sites, and UnwrapGroups removes wrapper groups that
// cannot affect rendering. Each pass is idempotent.

// defTags are the reusable, referenced-by-id definitions.
var defTags = map[string]bool{
	"linearGradient": true,
	"radialGradient": true,
	"pattern":        true,
	"filter":         true,
	"clipPath":       true,
	"marker":         true,
	"symbol":         true,
}

// DefsPool returns the root definitions pool, creating it as the
// first child of the root if needed.
func (t *Tree) DefsPool() NodeID {
	root := t.Root()
	for _, k := range t.Children(root) {
		if t.Tag(k) == "defs" {
			if t.Index(k) != 0 {
				t.InsertAt(root, k, 0)
			}
			return k
		}
	}
	pool := t.New("defs")
	t.InsertAt(root, pool, 0)
	return pool
}

// Consolidate moves every definition found in the tree into the root
// pool, except those living inside <mask> subtrees whose coordinate
// and inheritance semantics forbid relocation. Wrappers emptied by
// the move are removed.
func (t *Tree) Consolidate() {
	pool := t.DefsPool()

	var found []NodeID
	t.Walk(t.Root(), func(n NodeID) bool {
		if n == pool || t.Tag(n) == "mask" {
			return false
		}
		if defTags[t.Tag(n)] {
			found = append(found, n)
			return false
		}
		return true
	})
	for _, n := range found {
		t.Append(pool, n)
		t.SetTail(n, "")
	}

	// drop emptied wrappers, children first
	var empties []NodeID
	t.postOrder(t.Root(), func(n NodeID) {
		if n == pool || len(t.Children(n)) > 0 {
			return
		}
		switch t.Tag(n) {
		case "defs":
			empties = append(empties, n)
		case "g":
			if len(t.Attrs(n)) == 0 && strings.TrimSpace(t.Text(n)) == "" {
				empties = append(empties, n)
			}
		}
	})
	for _, n := range empties {
		if len(t.Children(n)) == 0 { // may have been refilled, not here but stay safe
			t.Detach(n)
		}
	}

	// a document without definitions does not keep an empty pool
	if len(t.Children(pool)) == 0 && len(t.Attrs(pool)) == 0 &&
		strings.TrimSpace(t.Text(pool)) == "" {
		t.Detach(pool)
	}
}

func (t *Tree) postOrder(id NodeID, fn func(NodeID)) {
	kids := append([]NodeID(nil), t.Children(id)...)
	for _, k := range kids {
		t.postOrder(k, fn)
	}
	fn(id)
}

// Deduplicate keeps the first definition of each structural
// equivalence class and rewrites every reference to a removed
// definition towards the retained one. The canonical form of a
// definition ignores its own id, attribute order and insignificant
// whitespace.
func (t *Tree) Deduplicate() {
	seen := make(map[string]string) // canonical form -> retained id
	remap := make(map[string]string)
	var dupes []NodeID

	t.Walk(t.Root(), func(n NodeID) bool {
		if !t.dedupable(n) {
			return true
		}
		id := t.Attr(n, "id")
		if id == "" {
			return false
		}
		form := t.canonicalForm(n)
		if kept, ok := seen[form]; ok {
			if kept != id {
				remap[id] = kept
				dupes = append(dupes, n)
			}
		} else {
			seen[form] = id
		}
		return false
	})

	for _, n := range dupes {
		t.Detach(n)
	}
	t.RewriteRefs(t.Root(), remap)
}

// dedupable reports whether n is a reusable definition subject to
// deduplication: the def tags anywhere, plus masks sitting in the
// root pool. Masks are never relocated, but two identical ones that
// already live in the pool merge like any other definition.
func (t *Tree) dedupable(n NodeID) bool {
	tag := t.Tag(n)
	if defTags[tag] {
		return true
	}
	if tag != "mask" {
		return false
	}
	p := t.Parent(n)
	return p != None && t.Tag(p) == "defs" && t.Parent(p) == t.Root()
}

// canonicalForm serializes the subtree with the top-level id
// stripped, attributes sorted lexicographically at every level, and
// whitespace-only character data dropped.
func (t *Tree) canonicalForm(id NodeID) string {
	var sb strings.Builder
	t.canonNode(&sb, id, true)
	return sb.String()
}

func (t *Tree) canonNode(sb *strings.Builder, id NodeID, stripID bool) {
	sb.WriteByte('<')
	sb.WriteString(t.Tag(id))
	attrs := append([]Attr(nil), t.Attrs(id)...)
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
	for _, a := range attrs {
		if stripID && a.Name == "id" {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(a.Value)
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	if s := strings.TrimSpace(t.Text(id)); s != "" {
		sb.WriteString(s)
	}
	for _, k := range t.Children(id) {
		t.canonNode(sb, k, false)
		if s := strings.TrimSpace(t.Tail(k)); s != "" {
			sb.WriteString(s)
		}
	}
	sb.WriteString("</")
	sb.WriteString(t.Tag(id))
	sb.WriteByte('>')
}

// Canonicalize runs the three passes in their natural order.
func (t *Tree) Canonicalize() {
	t.Consolidate()
	t.Deduplicate()
	t.UnwrapGroups()
}
