package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tartampluch/go-anniversary/internal/config"
	"github.com/tartampluch/go-anniversary/internal/engine"
)

// Format is the encoding of a roster source.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatVCard
)

// Parse decodes people from r according to f.
func (f Format) Parse(r io.Reader) ([]engine.Person, error) {
	switch f {
	case FormatCSV:
		return ParseCSV(r)
	case FormatVCard:
		return ParseVCard(r)
	default:
		return nil, errors.New(config.ErrSourceUnknown)
	}
}

// DetectFormat guesses the format from a file name or URL path, then from a MIME type.
func DetectFormat(name, contentType string) Format {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case config.ExtCSV:
		return FormatCSV
	case config.ExtVCF, config.ExtVCard:
		return FormatVCard
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(ct, config.MimeCSV):
		return FormatCSV
	case strings.HasPrefix(ct, config.MimeVCard), strings.Contains(ct, "x-vcard"):
		return FormatVCard
	}
	return FormatUnknown
}

// Source describes where a batch of people comes from. Exactly one of Path or URL is set.
type Source struct {
	Path   string
	URL    string
	Format Format // FormatUnknown means detect
	Cred   Credentials
}

// Loader reads people from local files and remote URLs.
type Loader struct {
	Fetcher Fetcher
}

// Load opens src, decodes it and returns the people it holds.
func (l *Loader) Load(ctx context.Context, src Source) ([]engine.Person, error) {
	switch {
	case src.Path != "":
		f, err := os.Open(src.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrOpenFile, err)
		}
		defer func() { _ = f.Close() }()

		format := src.Format
		if format == FormatUnknown {
			format = DetectFormat(src.Path, "")
		}
		return format.Parse(f)

	case src.URL != "":
		if l.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		dl, err := l.Fetcher.Fetch(ctx, src.URL, src.Cred)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}
		defer func() { _ = dl.Close() }()

		format := src.Format
		if format == FormatUnknown {
			format = DetectFormat(urlPath(src.URL), dl.ContentType)
		}
		return format.Parse(dl)

	default:
		return nil, errors.New(config.ErrSourceEmpty)
	}
}

func urlPath(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}
