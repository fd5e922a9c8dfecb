package svgscene

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapNestedWrappers(t *testing.T) {
	tree := NewTree("svg")
	g1 := tree.NewChild(tree.Root(), "g")
	g2 := tree.NewChild(g1, "g")
	g3 := tree.NewChild(g2, "g")
	leaf := tree.NewChild(g3, "rect")
	tree.SetAttr(leaf, "x", "0")
	tree.SetAttr(leaf, "y", "0")

	tree.UnwrapGroups()

	kids := tree.Children(tree.Root())
	require.Len(t, kids, 1)
	assert.Equal(t, "rect", tree.Tag(kids[0]))
	assert.Equal(t, "0", tree.Attr(kids[0], "x"))
	assert.Equal(t, "0", tree.Attr(kids[0], "y"))
}

func TestUnwrapKeepsMeaningfulGroups(t *testing.T) {
	tree := NewTree("svg")

	styled := tree.NewChild(tree.Root(), "g")
	tree.SetAttr(styled, "opacity", "0.5")
	tree.NewChild(styled, "rect")

	titled := tree.NewChild(tree.Root(), "g")
	title := tree.NewChild(titled, "title")
	tree.SetText(title, "layer 1")
	tree.NewChild(titled, "rect")

	tree.UnwrapGroups()

	kids := tree.Children(tree.Root())
	require.Len(t, kids, 2)
	assert.Equal(t, "g", tree.Tag(kids[0]))
	assert.Equal(t, "g", tree.Tag(kids[1]))
}

func TestUnwrapDeletesEmptyWrappers(t *testing.T) {
	tree := NewTree("svg")
	tree.NewChild(tree.Root(), "g")
	tree.UnwrapGroups()
	assert.Empty(t, tree.Children(tree.Root()))
}

func TestUnwrapSplicesTailText(t *testing.T) {
	tree := NewTree("text")
	tree.SetText(tree.Root(), "a ")
	g := tree.NewChild(tree.Root(), "g")
	span := tree.NewChild(g, "tspan")
	tree.SetText(span, "b")
	tree.SetTail(g, " c")

	tree.UnwrapGroups()

	kids := tree.Children(tree.Root())
	require.Len(t, kids, 1)
	assert.Equal(t, "a ", tree.Text(tree.Root()))
	assert.Equal(t, "b", tree.Text(kids[0]))
	assert.Equal(t, " c", tree.Tail(kids[0]))
}

func TestUnwrapIdempotent(t *testing.T) {
	tree := NewTree("svg")
	g1 := tree.NewChild(tree.Root(), "g")
	g2 := tree.NewChild(g1, "g")
	tree.NewChild(g2, "rect")

	tree.UnwrapGroups()
	once := tree.String()
	tree.UnwrapGroups()
	assert.Equal(t, once, tree.String())
}

func TestReadWriteRoundTrip(t *testing.T) {
	const doc = `<svg width="10" height="10"><defs><linearGradient id="g1"><stop offset="0%" stop-color="rgb(1,2,3)"/></linearGradient></defs><text>a <tspan font-size="12">b</tspan> c</text></svg>`

	tree, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	out := tree.String()
	again, err := Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, out, again.String())

	texts := tree.Children(tree.Root())
	text := texts[len(texts)-1]
	assert.Equal(t, "a ", tree.Text(text))
	span := tree.Children(text)[0]
	assert.Equal(t, "b", tree.Text(span))
	assert.Equal(t, " c", tree.Tail(span))
}
