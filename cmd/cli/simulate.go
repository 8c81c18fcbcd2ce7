package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dsjohal14/sitesearch/internal/dom"
	"github.com/dsjohal14/sitesearch/internal/libs/config"
	"github.com/dsjohal14/sitesearch/internal/libs/loop"
	"github.com/dsjohal14/sitesearch/internal/libs/obs"
	"github.com/dsjohal14/sitesearch/internal/scope/index"
	"github.com/dsjohal14/sitesearch/internal/scope/widget"
	"github.com/spf13/cobra"
)

// errNoWidget is returned when the page has no search input or results container
var errNoWidget = errors.New("page has no search widget")

func newSimulateCommand() *cobra.Command {
	var (
		pagePath string
		indexLoc string
		text     string
		escape   bool
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Mount the search widget on a page, type into it and print the results container",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pagePath == "" {
				return fmt.Errorf("--page is required")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			f, err := os.Open(pagePath)
			if err != nil {
				return err
			}
			doc, err := dom.Parse(f)
			_ = f.Close()
			if err != nil {
				return err
			}

			logger := obs.Logger("simulate")
			src, err := pageSource(doc, pagePath, indexLoc, cfg)
			if err != nil {
				logger.Warn().Err(err).Msg("embedded search index not usable")
			}

			l := loop.New(logger)
			defer l.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			w, ok := widget.Mount(ctx, l, doc, widget.Options{
				Source:   &src,
				Debounce: cfg.Debounce,
				Logger:   logger,
			})
			if !ok {
				return errNoWidget
			}
			select {
			case <-w.Loaded():
			case <-ctx.Done():
				return ctx.Err()
			}

			input, _ := doc.InputElement(widget.InputID)
			results, _ := doc.ResultsElement(widget.ResultsID)

			l.Do(func() { input.Type(text) })
			if escape {
				l.Do(func() { input.Press(widget.EscapeKey) })
			}
			if err := settle(ctx, l, w); err != nil {
				return err
			}

			var content string
			var visible bool
			l.Do(func() {
				content = results.Content()
				visible = results.Visible()
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "visible: %v\n", visible)
			if content != "" {
				fmt.Fprintln(out, content)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pagePath, "page", "", "Host page HTML file")
	cmd.Flags().StringVar(&indexLoc, "index", "", "Index file path or http(s) URL (default: the page's embedded or relative index)")
	cmd.Flags().StringVar(&text, "type", "", "Text to type into the search input")
	cmd.Flags().BoolVar(&escape, "escape", false, "Press Escape after typing")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Give up after this long")

	return cmd
}

// pageSource resolves the index for a page on disk. A relative remote index
// is read from the file it would resolve to next to the page.
func pageSource(doc *dom.Document, pagePath, loc string, cfg *config.Config) (index.Source, error) {
	if loc != "" {
		return sourceFor(loc, cfg), nil
	}

	input, ok := doc.InputElement(widget.InputID)
	basePath := ""
	if ok {
		basePath = input.Attr(widget.BasePathAttr)
	}

	src, err := doc.ResolveSource(basePath)
	if src.Kind != index.KindRemote {
		return src, err
	}
	lower := strings.ToLower(src.URL)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return src, nil
	}
	return index.File(filepath.Join(filepath.Dir(pagePath), filepath.FromSlash(src.URL))), nil
}

func settle(ctx context.Context, l *loop.Loop, w *widget.Widget) error {
	l.Do(func() {})

	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for w.Pending() {
		select {
		case <-tick.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	l.Do(func() {})
	return nil
}
