package svgscene

import "strings"

// reference syntax: attributes such as fill, filter, mask or
// clip-path carry "url(#id)" values, while href carries "#id".

// URL returns the functional reference syntax for an id.
func URL(id string) string { return "url(#" + id + ")" }

// Href returns the fragment reference syntax for an id.
func Href(id string) string { return "#" + id }

// ParseRef extracts the referenced id from an attribute value, in
// either the url(#id) or #id form.
func ParseRef(v string) (id string, ok bool) {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "url(") && strings.HasSuffix(v, ")") {
		v = strings.TrimSpace(v[4 : len(v)-1])
		v = strings.Trim(v, "'\"")
	}
	if strings.HasPrefix(v, "#") {
		return v[1:], true
	}
	return "", false
}

// RewriteRefs rewrites every reference site in the subtree rooted at
// id: any attribute whose value resolves to an id present in remap is
// rewritten to the replacement id, preserving the reference syntax.
// Values embedding url(#id) inside a larger property string (style)
// are rewritten in place.
func (t *Tree) RewriteRefs(id NodeID, remap map[string]string) {
	if len(remap) == 0 {
		return
	}
	t.Walk(id, func(n NodeID) bool {
		attrs := t.nodes[n].attrs
		for i, a := range attrs {
			if ref, ok := ParseRef(a.Value); ok {
				if to, ok := remap[ref]; ok {
					if strings.HasPrefix(strings.TrimSpace(a.Value), "url(") {
						attrs[i].Value = URL(to)
					} else {
						attrs[i].Value = Href(to)
					}
				}
				continue
			}
			if strings.Contains(a.Value, "url(#") {
				attrs[i].Value = rewriteEmbedded(a.Value, remap)
			}
		}
		return true
	})
}

func rewriteEmbedded(v string, remap map[string]string) string {
	var b strings.Builder
	for {
		i := strings.Index(v, "url(#")
		if i == -1 {
			b.WriteString(v)
			return b.String()
		}
		j := strings.IndexByte(v[i:], ')')
		if j == -1 {
			b.WriteString(v)
			return b.String()
		}
		id := v[i+len("url(#") : i+j]
		if to, ok := remap[id]; ok {
			b.WriteString(v[:i])
			b.WriteString(URL(to))
		} else {
			b.WriteString(v[:i+j+1])
		}
		v = v[i+j+1:]
	}
}
