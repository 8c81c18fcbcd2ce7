// Package search provides the in-page query matcher for the static site index.
package search

import (
	"strings"
	"unicode/utf8"
)

const (
	// MinQueryLen is the shortest normalized query that triggers a search.
	MinQueryLen = 2
	// MaxResults caps the number of entries returned for one query.
	MaxResults = 10
)

// Entry is one page record of the site index
type Entry struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	Type    string `json:"type"`
	URL     string `json:"url"`
}

// Index is the ordered list of page records loaded for the page.
// It is never mutated once loaded.
type Index []Entry

// Normalize turns raw input text into the query state used for matching
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsQuery reports whether a normalized query is long enough to search
func IsQuery(query string) bool {
	return utf8.RuneCountInString(query) >= MinQueryLen
}

// Matches reports whether the entry contains the normalized query in its
// title or, when present, its content.
func (e *Entry) Matches(query string) bool {
	if strings.Contains(strings.ToLower(e.Title), query) {
		return true
	}
	return e.Content != "" && strings.Contains(strings.ToLower(e.Content), query)
}

// Search returns the first limit matching entries in index order.
// Results point into the index; nothing is copied.
func (idx Index) Search(query string, limit int) []*Entry {
	if !IsQuery(query) {
		return nil
	}
	if limit <= 0 || limit > MaxResults {
		limit = MaxResults
	}

	results := make([]*Entry, 0, limit)
	for i := range idx {
		if idx[i].Matches(query) {
			results = append(results, &idx[i])
			if len(results) >= limit {
				break
			}
		}
	}

	return results
}

// Valid reports whether the entry carries the required title and url
func (e *Entry) Valid() bool {
	return e.Title != "" && e.URL != ""
}
