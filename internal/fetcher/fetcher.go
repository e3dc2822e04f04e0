// Package fetcher opens dataset sources (local files, HTTP, FTP) and exposes
// row readers for delimited text and XLSX tables.
package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Fetcher defines the interface for downloading remote data.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Options configures Open.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	HTTP      Fetcher // overrides the default HTTP fetcher
	FTP       Fetcher // overrides the default FTP fetcher
}

// Open returns a reader for a dataset location. Plain paths and file:// URLs
// are opened from disk; http(s):// and ftp:// URLs are downloaded.
// The caller must close the returned reader.
func Open(ctx context.Context, location string, opts Options) (io.ReadCloser, error) {
	if strings.TrimSpace(location) == "" {
		return nil, eris.New("fetcher: empty location")
	}

	switch Scheme(location) {
	case "http", "https":
		f := opts.HTTP
		if f == nil {
			f = NewHTTPFetcher(HTTPOptions{UserAgent: opts.UserAgent, Timeout: opts.Timeout})
		}
		zap.L().Debug("fetcher: downloading", zap.String("url", location))
		return f.Download(ctx, location)
	case "ftp":
		f := opts.FTP
		if f == nil {
			f = NewFTPFetcher(FTPOptions{Timeout: opts.Timeout})
		}
		return f.Download(ctx, location)
	case "file":
		u, err := url.Parse(location)
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: parse file url")
		}
		return openFile(u.Path)
	case "":
		return openFile(location)
	default:
		return nil, eris.Errorf("fetcher: unsupported scheme in %q", location)
	}
}

// Scheme returns the lower-cased URL scheme of location, or "" for a plain path.
// Windows drive letters ("C:\data.csv") are treated as plain paths.
func Scheme(location string) string {
	i := strings.Index(location, "://")
	if i <= 1 {
		return ""
	}
	return strings.ToLower(location[:i])
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open %s", path)
	}
	return f, nil
}
