package svgscene

import (
	"encoding/xml"
	"errors"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

// Parse reads an SVG (or any XML) document into a Tree, preserving
// element order, attribute order and the character data stream, so
// that canonicalization can run on documents produced elsewhere.
func Parse(stream io.Reader) (*Tree, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		t     *Tree
		stack []NodeID
	)
	for {
		tok, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if t == nil {
					return nil, errors.New("invalid svg document: no root element")
				}
				break
			}
			return t, err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			var id NodeID
			if t == nil {
				t = NewTree(se.Name.Local)
				id = t.Root()
			} else if len(stack) == 0 {
				return t, errors.New("invalid svg document: content after root element")
			} else {
				id = t.NewChild(stack[len(stack)-1], se.Name.Local)
			}
			for _, a := range se.Attr {
				t.SetAttr(id, attrName(a.Name), a.Value)
			}
			stack = append(stack, id)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue // prolog or trailing whitespace
			}
			cur := stack[len(stack)-1]
			if kids := t.Children(cur); len(kids) > 0 {
				last := kids[len(kids)-1]
				t.SetTail(last, t.Tail(last)+string(se))
			} else {
				t.SetText(cur, t.Text(cur)+string(se))
			}
		}
	}
	return t, nil
}

// ParseFile reads the named SVG file.
func ParseFile(name string) (*Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func attrName(n xml.Name) string {
	// keep namespace prefixes the writer understands (xlink:href),
	// drop the expanded namespace the decoder reports
	switch n.Space {
	case "":
		return n.Local
	case "xlink", "http://www.w3.org/1999/xlink":
		return "xlink:" + n.Local
	case "xmlns":
		return "xmlns:" + n.Local
	case "http://www.w3.org/XML/1998/namespace":
		return "xml:" + n.Local
	}
	return n.Local
}
