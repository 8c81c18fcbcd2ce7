package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dsjohal14/sitesearch/internal/libs/config"
	"github.com/dsjohal14/sitesearch/internal/libs/obs"
	"github.com/dsjohal14/sitesearch/internal/scope/index"
	"github.com/dsjohal14/sitesearch/internal/scope/render"
	"github.com/dsjohal14/sitesearch/internal/scope/search"
	"github.com/spf13/cobra"
)

func newQueryCommand() *cobra.Command {
	var (
		indexLoc string
		basePath string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "query [text]",
		Short: "Match text against a site index and print the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("base-path") {
				basePath = cfg.BasePath
			}

			src := sourceFor(indexLoc, cfg)
			idx, err := index.NewLoader(obs.Logger("cli")).Fetch(cmd.Context(), src)
			if err != nil {
				return err
			}

			query := search.Normalize(args[0])
			if !search.IsQuery(query) {
				fmt.Fprintf(cmd.ErrOrStderr(), "query must be at least %d characters\n", search.MinQueryLen)
				return nil
			}
			results := idx.Search(query, search.MaxResults)

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				if len(results) == 0 {
					fmt.Fprintln(out, "No results found")
					return nil
				}
				for _, e := range results {
					fmt.Fprintf(out, "[%s] %s -> %s\n", e.Type, e.Title, basePath+e.URL)
				}
			case "html":
				markup, err := render.New(basePath).Render(results, query)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, markup)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want text, html or json)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&indexLoc, "index", "", "Index file path or http(s) URL (default SEARCH_INDEX or <SITE_ROOT>/"+index.DefaultPath+")")
	cmd.Flags().StringVar(&basePath, "base-path", "", "Prefix for result links")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, html or json")

	return cmd
}

func sourceFor(loc string, cfg *config.Config) index.Source {
	if loc == "" {
		loc = cfg.IndexPath
	}
	if loc == "" {
		return index.File(filepath.Join(cfg.SiteRoot, filepath.FromSlash(index.DefaultPath)))
	}
	lower := strings.ToLower(loc)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return index.Remote(loc)
	}
	return index.File(loc)
}
