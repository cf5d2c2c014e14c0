package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/moriz82/folio/pkg/core"
)

// maxBodyBytes caps every payload read from the network or disk.
const maxBodyBytes = 2 << 20 // 2 MiB

// UserAgent is sent with every HTTP request.
var UserAgent = "folio"

// HTTPDoer is the subset of *http.Client used by HTTPSource.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.Code)
}

// Unwrap classifies status errors as network failures.
func (e *StatusError) Unwrap() error {
	return core.ErrNetworkFailure
}

// HTTPSource performs a GET that expects a JSON body.
type HTTPSource struct {
	URL    string
	Client HTTPDoer
	// NoCache asks intermediaries for a fresh copy.
	NoCache bool
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", s.URL, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if s.NoCache {
		req.Header.Set("Cache-Control", "no-store")
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w: %w", s.URL, core.ErrNetworkFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{URL: s.URL, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", s.URL, core.ErrNetworkFailure, err)
	}
	return body, nil
}

// Describe implements Source.
func (s *HTTPSource) Describe() string {
	return s.URL
}

// FileSource reads a payload from the local filesystem, typically a data file
// published next to the host page.
type FileSource struct {
	Path string
}

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", s.Path, core.ErrNetworkFailure, err)
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w: file not found", s.Path, core.ErrNetworkFailure)
		}
		return nil, fmt.Errorf("read %s: %w: %w", s.Path, core.ErrNetworkFailure, err)
	}
	defer func() { _ = f.Close() }()

	body, err := io.ReadAll(io.LimitReader(f, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", s.Path, core.ErrNetworkFailure, err)
	}
	return body, nil
}

// Describe implements Source.
func (s *FileSource) Describe() string {
	return "file:" + strings.TrimPrefix(s.Path, "./")
}
