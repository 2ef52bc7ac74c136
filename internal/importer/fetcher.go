package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tartampluch/go-anniversary/internal/config"
)

// Credentials authenticate a remote roster download with HTTP Basic Auth.
type Credentials struct {
	User     string
	Password string
}

// Download is an open remote roster. Callers must Close it.
type Download struct {
	io.ReadCloser
	ContentType string
}

// Fetcher retrieves a remote roster (CSV or vCard).
// The interface lets tests replace the network.
type Fetcher interface {
	Fetch(ctx context.Context, url string, cred Credentials) (*Download, error)
}

// HTTPFetcher implements Fetcher over net/http.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher whose requests time out after timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	return &HTTPFetcher{
		Client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads targetURL. Only http and https are accepted, query strings are
// kept out of the logs, and the body is capped at config.MaxHTTPResponseSize.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string, cred Credentials) (*Download, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)
	log.Debug("Requesting remote roster")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building roster request: %w", err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if cred.User != "" || cred.Password != "" {
		req.SetBasicAuth(cred.User, cred.Password)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("roster request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn("Roster host refused the download", slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %d %s", config.ErrUnexpectedStatus, resp.StatusCode, resp.Status)
	}

	log.Info("Remote roster received", slog.Int64(config.LogKeySizeBytes, resp.ContentLength))

	return &Download{
		ReadCloser: &limitedReadCloser{
			Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
			Closer: resp.Body,
		},
		ContentType: resp.Header.Get(config.HeaderContentType),
	}, nil
}

// limitedReadCloser caps reads while still closing the underlying connection.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}
