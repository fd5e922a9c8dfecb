package svgscene

import (
	"bufio"
	"io"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

var (
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// WriteXML serializes the tree. With indent, children are placed on
// their own lines except inside mixed content, whose text stream must
// not be altered.
func (t *Tree) WriteXML(w io.Writer, indent bool) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(xmlHeader)
	t.writeNode(bw, t.Root(), 0, indent)
	if indent {
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// String serializes the tree with indentation.
func (t *Tree) String() string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	bw := bufio.NewWriter(&sb)
	t.writeNode(bw, t.Root(), 0, true)
	bw.Flush()
	sb.WriteString("\n")
	return sb.String()
}

// mixed reports whether the element carries significant character
// data, directly or through a child tail.
func (t *Tree) mixed(id NodeID) bool {
	e := &t.nodes[id]
	if strings.TrimSpace(e.text) != "" {
		return true
	}
	for _, k := range e.kids {
		if strings.TrimSpace(t.nodes[k].tail) != "" {
			return true
		}
	}
	return false
}

func (t *Tree) writeNode(bw *bufio.Writer, id NodeID, depth int, indent bool) {
	e := &t.nodes[id]
	bw.WriteByte('<')
	bw.WriteString(e.tag)
	for _, a := range e.attrs {
		bw.WriteByte(' ')
		bw.WriteString(a.Name)
		bw.WriteString(`="`)
		attrEscaper.WriteString(bw, a.Value)
		bw.WriteByte('"')
	}
	if len(e.kids) == 0 && e.text == "" {
		bw.WriteString("/>")
		return
	}
	bw.WriteByte('>')

	inline := !indent || len(e.kids) == 0 || t.mixed(id)
	if inline {
		textEscaper.WriteString(bw, e.text)
		for _, k := range e.kids {
			t.writeNode(bw, k, depth+1, false)
			textEscaper.WriteString(bw, t.nodes[k].tail)
		}
	} else {
		for _, k := range e.kids {
			bw.WriteByte('\n')
			writeIndent(bw, depth+1)
			t.writeNode(bw, k, depth+1, indent)
		}
		bw.WriteByte('\n')
		writeIndent(bw, depth)
	}
	bw.WriteString("</")
	bw.WriteString(e.tag)
	bw.WriteByte('>')
}

func writeIndent(bw *bufio.Writer, depth int) {
	for i := 0; i < depth; i++ {
		bw.WriteString("  ")
	}
}
