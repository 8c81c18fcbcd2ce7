// Package render turns search results into the markup injected into the
// results container.
package render

import (
	"html"
	"html/template"
	"regexp"
	"strings"

	"github.com/dsjohal14/sitesearch/internal/scope/search"
)

// NoResults is the placeholder shown when a search finds nothing
const NoResults = `<div class="search-no-results">No results found</div>`

var itemTmpl = template.Must(template.New("item").Parse(
	`<a href="{{.Href}}" class="search-result-item">` +
		`<div class="search-result-type">{{.Type}}</div>` +
		`<div class="search-result-title">{{.Title}}</div>` +
		`</a>`))

type item struct {
	Href  string
	Type  string
	Title template.HTML
}

// Renderer builds result markup for pages served under BasePath
type Renderer struct {
	BasePath string
}

// New creates a renderer that prefixes result links with basePath
func New(basePath string) *Renderer {
	return &Renderer{BasePath: basePath}
}

// Render returns the markup for results found with query. An empty result
// set renders the no-results placeholder.
func (r *Renderer) Render(results []*search.Entry, query string) (string, error) {
	if len(results) == 0 {
		return NoResults, nil
	}

	var b strings.Builder
	for _, e := range results {
		err := itemTmpl.Execute(&b, item{
			Href:  r.BasePath + e.URL,
			Type:  e.Type,
			Title: Highlight(e.Title, query),
		})
		if err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Highlight wraps every case-insensitive occurrence of query in text with
// <mark>. Text outside the marks is HTML-escaped.
func Highlight(text, query string) template.HTML {
	if query == "" {
		return template.HTML(html.EscapeString(text))
	}

	re, err := regexp.Compile("(?i)" + EscapePattern(query))
	if err != nil {
		return template.HTML(html.EscapeString(text))
	}

	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		b.WriteString(html.EscapeString(text[last:loc[0]]))
		b.WriteString("<mark>")
		b.WriteString(html.EscapeString(text[loc[0]:loc[1]]))
		b.WriteString("</mark>")
		last = loc[1]
	}
	b.WriteString(html.EscapeString(text[last:]))

	return template.HTML(b.String())
}

var patternSpecials = regexp.MustCompile(`[.*+?^${}()|\[\]\\]`)

// EscapePattern escapes every pattern metacharacter in s so it matches
// literally.
func EscapePattern(s string) string {
	return patternSpecials.ReplaceAllString(s, `\$0`)
}
