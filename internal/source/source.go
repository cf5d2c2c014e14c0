// Package source fetches raw payloads for the data pipeline and resolves them
// through an ordered chain of fallback tiers.
package source

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/moriz82/folio/pkg/core"
)

// Source produces one raw payload. Implementations must honour ctx
// cancellation; the resolver bounds every call with a timeout.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	// Describe returns a short human-readable location for logs.
	Describe() string
}

// Open returns the Source for a location string. http(s) URLs become
// HTTPSources; file:// URLs and paths become FileSources. Relative paths and
// site-root paths ("/data/x.json") resolve against baseDir, the directory of
// the host page.
func Open(location, baseDir string, client HTTPDoer) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("no data source location: %w", core.ErrConfigMissing)
	}

	if u, err := url.Parse(location); err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return &HTTPSource{URL: location, Client: client}, nil
		case "file":
			return &FileSource{Path: filepath.FromSlash(u.Path)}, nil
		default:
			return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
		}
	}

	path := filepath.FromSlash(strings.TrimPrefix(location, "/"))
	if baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	return &FileSource{Path: path}, nil
}
