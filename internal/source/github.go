package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/github"
	"golang.org/x/oauth2"

	"github.com/moriz82/folio/pkg/core"
)

// GitHubSource lists a user's public repositories through the GitHub REST API.
// The payload is returned raw so it can be normalized like any other tier.
type GitHubSource struct {
	User   string
	client *github.Client
}

// GitHubOptions configures NewGitHubSource.
type GitHubOptions struct {
	User    string
	Token   string // optional; raises the rate limit
	BaseURL string // optional API root, e.g. for GitHub Enterprise or tests
	Client  *http.Client
}

// NewGitHubSource builds a GitHubSource. A token, when present, is attached via
// an oauth2 static token source.
func NewGitHubSource(opts GitHubOptions) (*GitHubSource, error) {
	if strings.TrimSpace(opts.User) == "" {
		return nil, fmt.Errorf("github user: %w", core.ErrConfigMissing)
	}

	httpClient := opts.Client
	if opts.Token != "" {
		ctx := context.Background()
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}))
	}

	client := github.NewClient(httpClient)
	client.UserAgent = UserAgent
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid github api base url %q: %w", opts.BaseURL, err)
		}
		client.BaseURL = u
	}

	return &GitHubSource{User: opts.User, client: client}, nil
}

// Fetch implements Source.
func (s *GitHubSource) Fetch(ctx context.Context) ([]byte, error) {
	path := fmt.Sprintf("users/%s/repos?type=owner&sort=pushed&per_page=100", url.PathEscape(s.User))
	req, err := s.client.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("build github request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var raw json.RawMessage
	if _, err := s.client.Do(ctx, req, &raw); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("github %s: %w: %w", path, core.ErrParseFailure, err)
		}
		return nil, fmt.Errorf("github %s: %w: %w", path, core.ErrNetworkFailure, err)
	}
	return raw, nil
}

// Describe implements Source.
func (s *GitHubSource) Describe() string {
	return "github:" + s.User
}
