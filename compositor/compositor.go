// Package compositor converts a parsed layered document into an SVG
// scene graph, preserving stacking order, opacity, blend modes,
// clipping, masking, paint and non destructive layer effects.
//
// The conversion is single threaded and owns all its intermediate
// state: two documents may be converted concurrently on separate
// goroutines with zero coordination.
package compositor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/benoitkugler/psdsvg/psdlayer"
	"github.com/benoitkugler/psdsvg/svgscene"
)

// DefaultMaxDepth bounds the layer tree nesting accepted by Convert.
const DefaultMaxDepth = 64

// ErrDepthExceeded is returned (wrapped) when the document nesting
// exceeds the configured ceiling. The conversion is aborted as a
// whole: a partial scene graph is not meaningful output.
var ErrDepthExceeded = errors.New("layer tree nesting exceeds the depth ceiling")

// Options configures a conversion. The zero value is usable.
type Options struct {
	// MaxDepth is the nesting ceiling; 0 means DefaultMaxDepth.
	MaxDepth int
	// Precision is the number of decimal digits in emitted values;
	// 0 means svgscene.DefaultPrecision.
	Precision int

	// Encoder embeds pixel data; nil means DataURIEncoder.
	Encoder ImageEncoder
	// Fonts annotates text nodes; nil leaves the raw font name.
	Fonts FontResolver
	// Tiles resolves pattern tiles; nil makes every pattern
	// colorless (with a diagnostic).
	Tiles TileProvider

	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func (o *Options) setDefaults() {
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Precision == 0 {
		o.Precision = svgscene.DefaultPrecision
	}
	if o.Encoder == nil {
		o.Encoder = DataURIEncoder{}
	}
	if o.Logger == nil {
		o.Logger = slog.New(nopHandler{})
	}
}

// converter is the per document build context. Nothing here is
// global: the definitions pool, the id allocator and the filter memo
// live and die with one conversion.
type converter struct {
	doc  *psdlayer.Document
	opts Options
	log  *slog.Logger

	tree *svgscene.Tree
	defs svgscene.NodeID

	ids map[string]int // id allocator, per prefix

	// memoized shared filters, keyed by kind
	sharedFilters map[string]string

	diags []Diagnostic
}

// groupState is the explicit traversal state of one child list:
// the parent element, the open clip accumulation group (or None) and
// the previously emitted sibling, needed because a clipping layer
// re-parents itself under the previous sibling's silhouette.
type groupState struct {
	parent svgscene.NodeID

	clip svgscene.NodeID // open clip group, None when closed

	prev      svgscene.NodeID
	prevLayer *psdlayer.Layer
	// a vector stroke node emitted with prev; it stays above any
	// clip group formed on prev
	prevExtra svgscene.NodeID
}

// Convert walks the document tree in painter's algorithm order and
// emits the equivalent SVG scene graph, canonicalized. The returned
// diagnostics report every approximation and every piece of missing
// data; they are present even when err is nil.
func Convert(doc *psdlayer.Document, opts Options) (*svgscene.Tree, []Diagnostic, error) {
	opts.setDefaults()

	c := &converter{
		doc:           doc,
		opts:          opts,
		log:           opts.Logger,
		tree:          svgscene.NewTree("svg"),
		ids:           make(map[string]int),
		sharedFilters: make(map[string]string),
	}
	t := c.tree
	root := t.Root()
	w, h := doc.Bounds.Dx(), doc.Bounds.Dy()
	t.SetAttr(root, "xmlns", "http://www.w3.org/2000/svg")
	t.SetAttr(root, "xmlns:xlink", "http://www.w3.org/1999/xlink")
	t.SetAttr(root, "width", strconv.Itoa(w))
	t.SetAttr(root, "height", strconv.Itoa(h))
	t.SetAttr(root, "viewBox", fmt.Sprintf("0 0 %d %d", w, h))
	c.defs = t.NewChild(root, "defs")

	if err := c.children(root, doc.Layers, 1); err != nil {
		return nil, c.diags, err
	}

	t.Canonicalize()
	return t, c.diags, nil
}

// children emits one child list bottom layer first.
func (c *converter) children(parent svgscene.NodeID, layers []*psdlayer.Layer, depth int) error {
	if depth > c.opts.MaxDepth {
		return fmt.Errorf("at depth %d: %w", depth, ErrDepthExceeded)
	}
	st := &groupState{parent: parent, clip: svgscene.None, prev: svgscene.None, prevExtra: svgscene.None}
	for i := len(layers) - 1; i >= 0; i-- {
		if err := c.layer(st, layers[i], depth); err != nil {
			return err
		}
	}
	return nil
}

// layer emits one layer into the traversal state.
func (c *converter) layer(st *groupState, l *psdlayer.Layer, depth int) error {
	fx := c.pipelineEffects(l)
	if !l.HasContent() && len(fx) == 0 {
		c.diag(Info, l.Name, "layer has no renderable content and no effects, skipped")
		return nil
	}

	node, extra, err := c.baseNode(l, depth)
	if err != nil {
		return err
	}
	if node == svgscene.None {
		return nil
	}

	t := c.tree
	// the mask wraps the content first, so that an effect pipeline
	// casts from the masked silhouette
	if l.Mask != nil && !l.Mask.Disabled {
		node = c.applyMask(l, node)
	}

	if len(fx) > 0 {
		// fill opacity moves inside the effect pipeline
		node = c.applyEffects(l, node, fx)
		if l.Opacity < 1 {
			t.SetAttr(node, "opacity", c.num(l.Opacity))
		}
	} else if o := l.Opacity * l.FillOpacity; o < 1 {
		t.SetAttr(node, "opacity", c.num(o))
	}

	if l.Name != "" {
		c.setTitle(node, l.Name)
	}
	if !l.Visible {
		t.SetAttr(node, "display", "none")
	}
	if css := l.BlendMode.CSS(); css != "" {
		t.SetAttr(node, "style", "mix-blend-mode:"+css)
		if !l.BlendMode.Exact() {
			c.diag(Info, l.Name, "blend mode %s approximated by %s", l.BlendMode, css)
		}
	} else if l.BlendMode != psdlayer.BlendNormal && l.BlendMode != psdlayer.BlendPassThrough {
		c.diag(Warning, l.Name, "blend mode %s is not supported, treated as normal", l.BlendMode)
	}

	c.place(st, l, node, extra)
	return nil
}

// place appends the emitted node, honoring clip group formation.
func (c *converter) place(st *groupState, l *psdlayer.Layer, node, extra svgscene.NodeID) {
	t := c.tree
	if l.Clipping && st.prev != svgscene.None {
		if st.clip == svgscene.None {
			st.clip = c.openClipGroup(st)
		}
		t.Append(st.clip, node)
		if extra != svgscene.None {
			t.Append(st.clip, extra)
		}
		return
	}

	// a non clipping layer closes any open clip group
	st.clip = svgscene.None
	t.Append(st.parent, node)
	if extra != svgscene.None {
		t.Append(st.parent, extra)
	}
	st.prev = node
	st.prevLayer = l
	st.prevExtra = extra
}

// openClipGroup inserts the clip accumulation group, masked by the
// previous sibling's silhouette. It sits above the previous sibling
// but below its vector stroke, which is pulled along on top.
func (c *converter) openClipGroup(st *groupState) svgscene.NodeID {
	t := c.tree
	maskID := c.silhouetteMask(st.prevLayer)
	g := t.New("g")
	t.SetAttr(g, "mask", svgscene.URL(maskID))

	pos := t.Index(st.prev) + 1
	t.InsertAt(st.parent, g, pos)
	if st.prevExtra != svgscene.None {
		// keep the stroke above the clipped content
		t.InsertAt(st.parent, st.prevExtra, t.Index(g)+1)
	}
	return g
}

// num formats a value at the configured precision.
func (c *converter) num(v float64) string {
	return svgscene.FormatNumber(v, c.opts.Precision)
}

// newID allocates a document unique id with the given prefix.
func (c *converter) newID(prefix string) string {
	c.ids[prefix]++
	return prefix + strconv.Itoa(c.ids[prefix])
}

// setTitle records the layer name, as the conventional first child.
func (c *converter) setTitle(node svgscene.NodeID, name string) {
	title := c.tree.New("title")
	c.tree.SetText(title, name)
	c.tree.InsertAt(node, title, 0)
}
