//go:build js && wasm

// Package jsdom hosts the search widget in a browser page through
// syscall/js.
package jsdom

import (
	"strings"
	"syscall/js"

	"github.com/dsjohal14/sitesearch/internal/libs/loop"
	"github.com/dsjohal14/sitesearch/internal/scope/index"
	"github.com/dsjohal14/sitesearch/internal/scope/search"
	"github.com/dsjohal14/sitesearch/internal/scope/widget"
)

// EmbeddedIndexGlobal is the window property an embedding page sets to
// ship its index inline.
const EmbeddedIndexGlobal = "SEARCH_INDEX"

// Document is the browser's window.document. Event listeners registered
// through it run on l, and the browser callback returns once they finish.
type Document struct {
	v     js.Value
	l     *loop.Loop
	funcs []js.Func
}

// New returns the current page's document, dispatching its events on l
func New(l *loop.Loop) *Document {
	return &Document{v: js.Global().Get("document"), l: l}
}

func (d *Document) element(id string) (js.Value, bool) {
	el := d.v.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return js.Value{}, false
	}
	return el, true
}

// Input implements widget.Document
func (d *Document) Input(id string) (widget.Input, bool) {
	el, ok := d.element(id)
	if !ok {
		return nil, false
	}
	return &input{doc: d, v: el}, true
}

// Results implements widget.Document
func (d *Document) Results(id string) (widget.Results, bool) {
	el, ok := d.element(id)
	if !ok {
		return nil, false
	}
	return &results{v: el}, true
}

// Location returns the page URL
func (d *Document) Location() string {
	return js.Global().Get("location").Get("href").String()
}

// ResolveSource returns the embedded index when the page defines
// SEARCH_INDEX and the remote index under basePath otherwise.
func (d *Document) ResolveSource(basePath string) (index.Source, error) {
	v := js.Global().Get(EmbeddedIndexGlobal)
	if v.IsUndefined() || v.IsNull() {
		return index.RemoteFor(basePath), nil
	}

	raw := js.Global().Get("JSON").Call("stringify", v).String()
	entries, err := index.Decode(strings.NewReader(raw))
	if err != nil {
		return index.Embedded(search.Index{}), err
	}
	return index.Embedded(entries), nil
}

// Release frees the registered event callbacks
func (d *Document) Release() {
	for _, f := range d.funcs {
		f.Release()
	}
	d.funcs = nil
}

func (d *Document) listen(el js.Value, event string, fn func(ev js.Value)) {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := js.Undefined()
		if len(args) > 0 {
			ev = args[0]
		}
		// Loop tasks only make synchronous DOM calls, so waiting here
		// cannot stall on the browser's event loop.
		d.l.Do(func() { fn(ev) })
		return nil
	})
	d.funcs = append(d.funcs, f)
	el.Call("addEventListener", event, f)
}

type input struct {
	doc *Document
	v   js.Value
}

func (i *input) Value() string { return i.v.Get("value").String() }

func (i *input) SetValue(v string) { i.v.Set("value", v) }

func (i *input) Attr(name string) string {
	a := i.v.Call("getAttribute", name)
	if a.IsNull() || a.IsUndefined() {
		return ""
	}
	return a.String()
}

func (i *input) OnInput(fn func()) {
	i.doc.listen(i.v, "input", func(js.Value) { fn() })
}

func (i *input) OnKeyDown(fn func(key string)) {
	i.doc.listen(i.v, "keydown", func(ev js.Value) {
		if ev.IsUndefined() {
			return
		}
		fn(ev.Get("key").String())
	})
}

type results struct {
	v js.Value
}

func (r *results) SetContent(markup string) { r.v.Set("innerHTML", markup) }

func (r *results) SetVisible(visible bool) {
	display := "none"
	if visible {
		display = "block"
	}
	r.v.Get("style").Set("display", display)
}
