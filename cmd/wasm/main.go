//go:build js && wasm

// Package main implements the in-browser search widget as a WebAssembly module.
package main

import (
	"context"
	"net/url"

	"github.com/dsjohal14/sitesearch/internal/jsdom"
	"github.com/dsjohal14/sitesearch/internal/libs/loop"
	"github.com/dsjohal14/sitesearch/internal/libs/obs"
	"github.com/dsjohal14/sitesearch/internal/scope/index"
	"github.com/dsjohal14/sitesearch/internal/scope/widget"
)

func main() {
	obs.InitLogger("warn")
	logger := obs.Logger("widget")

	l := loop.New(logger)
	doc := jsdom.New(l)
	input, ok := doc.Input(widget.InputID)
	if !ok {
		l.Close()
		return
	}
	basePath := input.Attr(widget.BasePathAttr)

	src, err := doc.ResolveSource(basePath)
	if err != nil {
		logger.Warn().Err(err).Msg("embedded search index not usable")
	}

	loader := index.NewLoader(logger)
	if pageURL, err := url.Parse(doc.Location()); err == nil {
		loader.BaseURL = pageURL
	}

	if _, ok := widget.Mount(context.Background(), l, doc, widget.Options{
		Source: &src,
		Loader: loader,
		Logger: logger,
	}); !ok {
		l.Close()
		return
	}

	select {}
}
