package importer_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-anniversary/internal/config"
	"github.com/tartampluch/go-anniversary/internal/engine"
	"github.com/tartampluch/go-anniversary/internal/importer"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string, cred importer.Credentials) (*importer.Download, error) {
	args := m.Called(ctx, url, cred)
	if dl := args.Get(0); dl != nil {
		return dl.(*importer.Download), args.Error(1)
	}
	return nil, args.Error(1)
}

func download(body, contentType string) *importer.Download {
	return &importer.Download{ReadCloser: io.NopCloser(strings.NewReader(body)), ContentType: contentType}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		contentType string
		want        importer.Format
	}{
		{"csv extension", "staff.CSV", "", importer.FormatCSV},
		{"vcf extension", "/tmp/contacts.vcf", "", importer.FormatVCard},
		{"vcard extension", "book.vcard", "", importer.FormatVCard},
		{"extension beats mime", "staff.csv", "text/vcard", importer.FormatCSV},
		{"csv mime", "https://example.com/export", "text/csv; charset=utf-8", importer.FormatCSV},
		{"vcard mime", "/dav/book", "text/vcard", importer.FormatVCard},
		{"legacy vcard mime", "/dav/book", "text/x-vcard", importer.FormatVCard},
		{"unknown", "people.txt", "text/plain", importer.FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, importer.DetectFormat(tt.file, tt.contentType))
		})
	}
}

func TestLoader_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staff.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Start Date\nAda,1990-06-15\n"), 0600))

	loader := importer.Loader{}
	people, err := loader.Load(context.Background(), importer.Source{Path: path})
	require.NoError(t, err)
	assert.Equal(t, []engine.Person{{Name: "Ada", StartDate: engine.Date(1990, 6, 15)}}, people)
}

func TestLoader_LocalFileErrors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "people.txt")
	require.NoError(t, os.WriteFile(txt, []byte("Ada"), 0600))

	loader := importer.Loader{}

	_, err := loader.Load(context.Background(), importer.Source{Path: filepath.Join(dir, "missing.csv")})
	assert.ErrorContains(t, err, config.ErrOpenFile)

	_, err = loader.Load(context.Background(), importer.Source{Path: txt})
	assert.ErrorContains(t, err, config.ErrSourceUnknown)

	_, err = loader.Load(context.Background(), importer.Source{})
	assert.ErrorContains(t, err, config.ErrSourceEmpty)
}

func TestLoader_Remote(t *testing.T) {
	vcf := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Ada\r\nANNIVERSARY:19900615\r\nEND:VCARD\r\n"
	cred := importer.Credentials{User: "hr", Password: "pw"}

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://dav.example.com/book?token=x", cred).
		Return(download(vcf, "text/vcard; charset=utf-8"), nil)

	loader := importer.Loader{Fetcher: fetcher}
	people, err := loader.Load(context.Background(), importer.Source{URL: "https://dav.example.com/book?token=x", Cred: cred})
	require.NoError(t, err)
	assert.Equal(t, []engine.Person{{Name: "Ada", StartDate: engine.Date(1990, 6, 15)}}, people)
	fetcher.AssertExpectations(t)
}

func TestLoader_RemoteExplicitFormat(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://example.com/export", importer.Credentials{}).
		Return(download("Name,Start Date\nBob,2001-01-01\n", "application/octet-stream"), nil)

	loader := importer.Loader{Fetcher: fetcher}
	people, err := loader.Load(context.Background(), importer.Source{URL: "https://example.com/export", Format: importer.FormatCSV})
	require.NoError(t, err)
	assert.Len(t, people, 1)
}

func TestLoader_RemoteErrors(t *testing.T) {
	t.Run("No fetcher", func(t *testing.T) {
		_, err := (&importer.Loader{}).Load(context.Background(), importer.Source{URL: "https://example.com/a.csv"})
		assert.ErrorContains(t, err, config.ErrFetcherMissing)
	})

	t.Run("Fetch failure", func(t *testing.T) {
		fetcher := new(MockFetcher)
		fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		_, err := (&importer.Loader{Fetcher: fetcher}).Load(context.Background(), importer.Source{URL: "https://example.com/a.csv"})
		assert.EqualError(t, err, "boom")
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fetcher := new(MockFetcher)
		fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("request aborted"))

		_, err := (&importer.Loader{Fetcher: fetcher}).Load(ctx, importer.Source{URL: "https://example.com/a.csv"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
