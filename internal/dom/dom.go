// Package dom is a headless host page for the search widget, backed by
// golang.org/x/net/html parse trees. It is used by the CLI and by tests.
//
// A Document is not safe for concurrent use; hosts mutate it from a single
// event loop.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dsjohal14/sitesearch/internal/scope/index"
	"github.com/dsjohal14/sitesearch/internal/scope/search"
	"github.com/dsjohal14/sitesearch/internal/scope/widget"
	"golang.org/x/net/html"
)

// EmbeddedIndexID is the id of the <script type="application/json"> element
// that carries an inline index.
const EmbeddedIndexID = "search-index-data"

// Document is a parsed host page
type Document struct {
	root    *html.Node
	inputs  map[*html.Node]*InputElement
	results map[*html.Node]*ResultsElement
}

// Parse reads a host page
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return &Document{
		root:    root,
		inputs:  make(map[*html.Node]*InputElement),
		results: make(map[*html.Node]*ResultsElement),
	}, nil
}

// ParseString is Parse for an in-memory page
func ParseString(page string) (*Document, error) {
	return Parse(strings.NewReader(page))
}

// ElementByID returns the first element with the given id, or nil
func (d *Document) ElementByID(id string) *html.Node {
	var found *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return found
}

// InputElement returns the input with the given id
func (d *Document) InputElement(id string) (*InputElement, bool) {
	n := d.ElementByID(id)
	if n == nil {
		return nil, false
	}
	if el, ok := d.inputs[n]; ok {
		return el, true
	}
	el := &InputElement{node: n}
	d.inputs[n] = el
	return el, true
}

// ResultsElement returns the results container with the given id
func (d *Document) ResultsElement(id string) (*ResultsElement, bool) {
	n := d.ElementByID(id)
	if n == nil {
		return nil, false
	}
	if el, ok := d.results[n]; ok {
		return el, true
	}
	el := &ResultsElement{node: n}
	d.results[n] = el
	return el, true
}

// Input implements widget.Document
func (d *Document) Input(id string) (widget.Input, bool) {
	el, ok := d.InputElement(id)
	if !ok {
		return nil, false
	}
	return el, true
}

// Results implements widget.Document
func (d *Document) Results(id string) (widget.Results, bool) {
	el, ok := d.ResultsElement(id)
	if !ok {
		return nil, false
	}
	return el, true
}

// ResolveSource returns the page's embedded index when it carries one and
// the remote index under basePath otherwise. A malformed embedded index
// yields an empty embedded source together with the decode error.
func (d *Document) ResolveSource(basePath string) (index.Source, error) {
	n := d.ElementByID(EmbeddedIndexID)
	if n == nil {
		return index.RemoteFor(basePath), nil
	}

	entries, err := index.Decode(strings.NewReader(textContent(n)))
	if err != nil {
		return index.Embedded(search.Index{}), fmt.Errorf("embedded index: %w", err)
	}
	return index.Embedded(entries), nil
}

// Render writes the whole page
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func innerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
