// Package index acquires the site search index from an embedded value, a
// remote JSON resource or a local file.
package index

import (
	"github.com/dsjohal14/sitesearch/internal/scope/search"
)

// DefaultPath is the index location relative to the site base path
const DefaultPath = "assets/search-index.json"

// Kind identifies where a Source reads its entries from
type Kind int

const (
	KindEmbedded Kind = iota
	KindRemote
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindEmbedded:
		return "embedded"
	case KindRemote:
		return "remote"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Source describes where the host page's index comes from. The host
// resolves it before mounting the widget.
type Source struct {
	Kind    Kind
	Entries search.Index
	URL     string
	Path    string
}

// Embedded uses entries already present in the page
func Embedded(entries search.Index) Source {
	return Source{Kind: KindEmbedded, Entries: entries}
}

// Remote fetches the index from url, which may be relative to the page
func Remote(url string) Source {
	return Source{Kind: KindRemote, URL: url}
}

// RemoteFor returns the default remote source for a page at basePath
func RemoteFor(basePath string) Source {
	return Remote(basePath + DefaultPath)
}

// File reads the index from a local path
func File(path string) Source {
	return Source{Kind: KindFile, Path: path}
}

// Location is a short human-readable description used in logs
func (s Source) Location() string {
	switch s.Kind {
	case KindRemote:
		return s.URL
	case KindFile:
		return s.Path
	default:
		return s.Kind.String()
	}
}
