package model

import (
	"sort"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/okian/dhand/internal/domain/handedness"
)

// Node is a tag with its attributes.
type Node struct {
	Tag        string            `json:"tag"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Element describes the tapped element: its own node, the chain of
// ancestors (outermost first) and its layout box.
type Element struct {
	Node
	Ancestors []Node            `json:"ancestors,omitempty"`
	Left      float64           `json:"offset_left"`
	Width     float64           `json:"offset_width"`
	Height    float64           `json:"offset_height"`
	Rects     []handedness.Rect `json:"client_rects,omitempty"`
}

var _ handedness.Target = Element{}

func (e Element) OffsetLeft() float64            { return e.Left }
func (e Element) OffsetWidth() float64           { return e.Width }
func (e Element) OffsetHeight() float64          { return e.Height }
func (e Element) ClientRects() []handedness.Rect { return e.Rects }

// Matches reports whether the element satisfies any of the selectors.
// Selectors that fail to compile never match.
func (e Element) Matches(selectors []string) bool {
	if strings.TrimSpace(e.Tag) == "" {
		return false
	}
	n := e.tree()
	for _, sel := range selectors {
		if s := compile(sel); s != nil && s.Match(n) {
			return true
		}
	}
	return false
}

// tree rebuilds the ancestor chain as an html tree and returns the node for
// the element itself.
func (e Element) tree() *html.Node {
	parent := &html.Node{Type: html.DocumentNode}
	for _, a := range e.Ancestors {
		n := a.html()
		parent.AppendChild(n)
		parent = n
	}
	n := e.Node.html()
	parent.AppendChild(n)
	return n
}

func (n Node) html() *html.Node {
	tag := strings.ToLower(strings.TrimSpace(n.Tag))
	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]html.Attribute, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, html.Attribute{Key: strings.ToLower(k), Val: n.Attributes[k]})
	}
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// selectors caches compiled selectors; a nil entry marks one that failed.
var selectors sync.Map

func compile(sel string) cascadia.Sel {
	if v, ok := selectors.Load(sel); ok {
		s, _ := v.(cascadia.Sel)
		return s
	}
	s, err := cascadia.Parse(sel)
	if err != nil {
		selectors.Store(sel, nil)
		return nil
	}
	selectors.Store(sel, s)
	return s
}
