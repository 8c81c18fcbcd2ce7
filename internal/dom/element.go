package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// InputElement is a text field on a headless page. Its value lives in the
// value attribute.
type InputElement struct {
	node    *html.Node
	onInput []func()
	onKey   []func(key string)
}

// Value returns the current text
func (e *InputElement) Value() string {
	return attr(e.node, "value")
}

// SetValue replaces the current text without firing input listeners
func (e *InputElement) SetValue(v string) {
	setAttr(e.node, "value", v)
}

// Attr returns an attribute value, or "" when absent
func (e *InputElement) Attr(name string) string {
	return attr(e.node, name)
}

// OnInput registers an input listener
func (e *InputElement) OnInput(fn func()) {
	e.onInput = append(e.onInput, fn)
}

// OnKeyDown registers a keydown listener
func (e *InputElement) OnKeyDown(fn func(key string)) {
	e.onKey = append(e.onKey, fn)
}

// Listening reports whether any listener is attached
func (e *InputElement) Listening() bool {
	return len(e.onInput) > 0 || len(e.onKey) > 0
}

// Type sets the text as a user edit would and fires input listeners
func (e *InputElement) Type(text string) {
	e.SetValue(text)
	for _, fn := range e.onInput {
		fn()
	}
}

// Press fires keydown listeners for key
func (e *InputElement) Press(key string) {
	for _, fn := range e.onKey {
		fn(key)
	}
}

// ResultsElement is the results container on a headless page
type ResultsElement struct {
	node *html.Node
}

// SetContent replaces every child of the container with the parsed markup.
// Markup that cannot be parsed leaves the container empty.
func (e *ResultsElement) SetContent(markup string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	if markup == "" {
		return
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
}

// Content returns the container's inner markup
func (e *ResultsElement) Content() string {
	s, err := innerHTML(e.node)
	if err != nil {
		return ""
	}
	return s
}

// ChildCount returns the number of element children
func (e *ResultsElement) ChildCount() int {
	count := 0
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

// SetVisible sets the inline display declaration to block or none
func (e *ResultsElement) SetVisible(visible bool) {
	display := "none"
	if visible {
		display = "block"
	}
	setAttr(e.node, "style", withDisplay(attr(e.node, "style"), display))
}

// Visible reports whether the container's inline display is block.
// Containers start hidden until the widget shows them.
func (e *ResultsElement) Visible() bool {
	return displayOf(attr(e.node, "style")) == "block"
}

func withDisplay(style, display string) string {
	decls := []string{"display: " + display}
	for _, d := range strings.Split(style, ";") {
		d = strings.TrimSpace(d)
		if d == "" || declName(d) == "display" {
			continue
		}
		decls = append(decls, d)
	}
	return strings.Join(decls, "; ")
}

func displayOf(style string) string {
	for _, d := range strings.Split(style, ";") {
		d = strings.TrimSpace(d)
		if declName(d) == "display" {
			_, v, _ := strings.Cut(d, ":")
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func declName(decl string) string {
	name, _, _ := strings.Cut(decl, ":")
	return strings.ToLower(strings.TrimSpace(name))
}
