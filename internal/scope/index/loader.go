package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/dsjohal14/sitesearch/internal/scope/search"
	"github.com/rs/zerolog"
)

// MaxIndexBytes bounds the size of an index document
const MaxIndexBytes = 16 << 20

var (
	// ErrUnsupportedScheme is returned for remote URLs that are not http(s)
	ErrUnsupportedScheme = errors.New("unsupported index URL scheme")
	// ErrBadStatus is returned when the index request does not answer 200
	ErrBadStatus = errors.New("unexpected index response status")
	// ErrTooLarge is returned when the index exceeds MaxIndexBytes
	ErrTooLarge = errors.New("index document too large")
)

// Loader obtains a search index from a Source
type Loader struct {
	// HTTPClient is used for remote sources; nil means http.DefaultClient.
	HTTPClient *http.Client
	// BaseURL resolves relative remote URLs, usually the page URL.
	BaseURL   *url.URL
	UserAgent string

	logger zerolog.Logger
}

// NewLoader creates a loader that reports failures to logger
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load returns the index for src. Failures are logged and yield an empty
// index; Load never returns an error.
func (l *Loader) Load(ctx context.Context, src Source) search.Index {
	idx, err := l.Fetch(ctx, src)
	if err != nil {
		l.logger.Warn().
			Err(err).
			Str("source", src.Kind.String()).
			Str("location", src.Location()).
			Msg("search index not available")
		return search.Index{}
	}

	l.logger.Debug().
		Str("source", src.Kind.String()).
		Int("entries", len(idx)).
		Msg("search index loaded")
	return idx
}

// Fetch returns the index for src or the first error encountered
func (l *Loader) Fetch(ctx context.Context, src Source) (search.Index, error) {
	switch src.Kind {
	case KindEmbedded:
		return keepValid(src.Entries), nil
	case KindRemote:
		return l.fetchRemote(ctx, src.URL)
	case KindFile:
		return readFile(src.Path)
	default:
		return nil, fmt.Errorf("unknown index source kind %d", src.Kind)
	}
}

func (l *Loader) fetchRemote(ctx context.Context, raw string) (search.Index, error) {
	u, err := l.resolve(raw)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if l.UserAgent != "" {
		req.Header.Set("User-Agent", l.UserAgent)
	}

	client := l.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s from %s", ErrBadStatus, resp.Status, u)
	}

	return Decode(resp.Body)
}

func (l *Loader) resolve(raw string) (*url.URL, error) {
	ref, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse index URL %q: %w", raw, err)
	}
	if l.BaseURL != nil {
		ref = l.BaseURL.ResolveReference(ref)
	}

	scheme := strings.ToLower(ref.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, ref.String())
	}
	return ref, nil
}

func readFile(path string) (search.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode parses a JSON array of index entries. Entries without a title or
// url are skipped; a JSON null decodes to an empty index.
func Decode(r io.Reader) (search.Index, error) {
	b, err := io.ReadAll(io.LimitReader(r, MaxIndexBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	if len(b) > MaxIndexBytes {
		return nil, ErrTooLarge
	}

	var entries search.Index
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}

	return keepValid(entries), nil
}

func keepValid(entries search.Index) search.Index {
	out := make(search.Index, 0, len(entries))
	for _, e := range entries {
		if e.Valid() {
			out = append(out, e)
		}
	}
	return out
}
