// Package widget wires the search input and results container of a host
// page to the index loader, matcher and renderer.
package widget

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dsjohal14/sitesearch/internal/libs/loop"
	"github.com/dsjohal14/sitesearch/internal/scope/index"
	"github.com/dsjohal14/sitesearch/internal/scope/render"
	"github.com/dsjohal14/sitesearch/internal/scope/search"
	"github.com/rs/zerolog"
)

const (
	// InputID and ResultsID are the element ids the host page provides
	InputID   = "search-input"
	ResultsID = "search-results"
	// BasePathAttr on the input element carries the page's base path
	BasePathAttr = "data-base-path"
	// EscapeKey clears the widget
	EscapeKey = "Escape"

	defaultDebounce = 200 * time.Millisecond
)

// Input is the host page's search text field. Hosts invoke its listeners
// on the widget's loop.
type Input interface {
	Value() string
	SetValue(v string)
	Attr(name string) string
	OnInput(fn func())
	OnKeyDown(fn func(key string))
}

// Results is the host page's results container
type Results interface {
	SetContent(markup string)
	SetVisible(visible bool)
}

// Document locates the widget's elements on the host page
type Document interface {
	Input(id string) (Input, bool)
	Results(id string) (Results, bool)
}

// Options configures Mount
type Options struct {
	// Source overrides the default remote index at BasePath+index.DefaultPath.
	Source *index.Source
	// BasePath overrides the input element's data-base-path attribute.
	BasePath *string
	Debounce time.Duration
	Loader   *index.Loader
	Logger   zerolog.Logger
}

// Widget is the search state for one page
type Widget struct {
	input    Input
	results  Results
	basePath string

	idx      atomic.Pointer[search.Index]
	loaded   chan struct{}
	loop     *loop.Loop
	debounce *loop.Debouncer
	renderer *render.Renderer
	logger   zerolog.Logger
}

// Mount attaches the widget to doc. It reports false, attaching nothing and
// loading nothing, when either element is missing from the page.
func Mount(ctx context.Context, l *loop.Loop, doc Document, opts Options) (*Widget, bool) {
	input, ok := doc.Input(InputID)
	if !ok {
		return nil, false
	}
	results, ok := doc.Results(ResultsID)
	if !ok {
		return nil, false
	}

	basePath := input.Attr(BasePathAttr)
	if opts.BasePath != nil {
		basePath = *opts.BasePath
	}
	wait := opts.Debounce
	if wait <= 0 {
		wait = defaultDebounce
	}

	w := &Widget{
		input:    input,
		results:  results,
		basePath: basePath,
		loaded:   make(chan struct{}),
		loop:     l,
		debounce: loop.NewDebouncer(l, wait),
		renderer: render.New(basePath),
		logger:   opts.Logger,
	}
	empty := search.Index{}
	w.idx.Store(&empty)

	src := index.RemoteFor(basePath)
	if opts.Source != nil {
		src = *opts.Source
	}
	loader := opts.Loader
	if loader == nil {
		loader = index.NewLoader(opts.Logger)
	}
	w.load(ctx, loader, src)

	input.OnInput(w.HandleInput)
	input.OnKeyDown(w.HandleKey)

	return w, true
}

func (w *Widget) load(ctx context.Context, loader *index.Loader, src index.Source) {
	if src.Kind == index.KindEmbedded {
		w.setIndex(loader.Load(ctx, src))
		return
	}

	go func() {
		idx := loader.Load(ctx, src)
		if !w.loop.Post(func() { w.setIndex(idx) }) {
			w.logger.Warn().Int("entries", len(idx)).Msg("loop unavailable, storing search index directly")
			w.setIndex(idx)
		}
	}()
}

func (w *Widget) setIndex(idx search.Index) {
	w.idx.Store(&idx)
	close(w.loaded)
}

// Loaded is closed once the index load attempt has completed
func (w *Widget) Loaded() <-chan struct{} {
	return w.loaded
}

// Index returns the currently loaded index
func (w *Widget) Index() search.Index {
	return *w.idx.Load()
}

// BasePath returns the prefix applied to result links
func (w *Widget) BasePath() string {
	return w.basePath
}

// Pending reports whether a debounced search is waiting to run
func (w *Widget) Pending() bool {
	return w.debounce.Pending()
}

// HandleInput schedules a search for the current input value. The search
// runs on the loop once the input has been quiet for the debounce wait.
func (w *Widget) HandleInput() {
	w.debounce.Trigger(w.Search)
}

// HandleKey clears the widget when key is Escape. The input value and the
// results container are cleared before it returns, and any pending search
// is dropped.
func (w *Widget) HandleKey(key string) {
	if key != EscapeKey {
		return
	}
	w.debounce.Cancel()
	w.input.SetValue("")
	w.clear()
}

// Search matches the current input value and renders the results.
// Queries below the length threshold clear and hide the container.
func (w *Widget) Search() {
	query := search.Normalize(w.input.Value())
	if !search.IsQuery(query) {
		w.clear()
		return
	}

	results := w.Index().Search(query, search.MaxResults)
	markup, err := w.renderer.Render(results, query)
	if err != nil {
		w.logger.Error().Err(err).Str("query", query).Msg("failed to render results")
		w.clear()
		return
	}

	w.results.SetContent(markup)
	w.results.SetVisible(true)

	w.logger.Debug().
		Str("query", query).
		Int("results", len(results)).
		Msg("search completed")
}

func (w *Widget) clear() {
	w.results.SetContent("")
	w.results.SetVisible(false)
}
