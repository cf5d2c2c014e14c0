// Package widgets wires the host page and configuration into one resolver
// chain per data-backed widget.
package widgets

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/moriz82/folio/internal/carousel"
	"github.com/moriz82/folio/internal/defaults"
	"github.com/moriz82/folio/internal/normalize"
	"github.com/moriz82/folio/internal/page"
	"github.com/moriz82/folio/internal/source"
	"github.com/moriz82/folio/pkg/core"
)

// DefaultPinnedEndpoint is the pinned-repository service. {user} is replaced
// with the GitHub user.
const DefaultPinnedEndpoint = "https://pinned.berrysauce.dev/get/{user}"

// DefaultRepoLimit caps the repository grid.
const DefaultRepoLimit = 6

// Disabled-widget statuses.
const (
	PostsDisabled      = "Blog data source missing."
	ReposDisabled      = "GitHub section disabled."
	StatsDisabled      = "Stats section disabled."
	TypewriterDisabled = "Typewriter disabled: no transcript."
)

// Options are the configured overrides for the page's own attributes.
type Options struct {
	// HTTPClient is shared by every remote tier. Nil uses http.DefaultClient.
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *slog.Logger

	PostSource          string
	SecondaryPostSource string

	GitHubUser     string
	PinnedEndpoint string
	GitHubAPIURL   string
	GitHubToken    string
	RepoLimit      int

	StatsPrimary   string
	StatsSecondary string
}

// Widget is one data-backed widget: a resolver chain plus the status to show
// when the page does not enable it.
type Widget[T any] struct {
	Name string
	// Disabled is non-empty when the widget cannot run.
	Disabled string

	resolver *source.Resolver[T]
	finish   func([]T) []T
	// emptyLabel replaces the embedded label when that tier has nothing.
	emptyLabel string
}

// Enabled reports whether the widget has a resolver chain.
func (w *Widget[T]) Enabled() bool {
	return w != nil && w.Disabled == "" && w.resolver != nil
}

// Resolve runs the chain. A disabled widget resolves to no entities and its
// disabled status.
func (w *Widget[T]) Resolve(ctx context.Context) source.Result[T] {
	if !w.Enabled() {
		res := source.Result[T]{Entities: []T{}}
		if w != nil {
			res.Label = w.Disabled
		}
		return res
	}
	res := w.resolver.Resolve(ctx)
	if w.finish != nil {
		res.Entities = w.finish(res.Entities)
	}
	if res.Provenance == core.ProvenanceEmbedded && len(res.Entities) == 0 && w.emptyLabel != "" {
		res.Label = w.emptyLabel
	}
	return res
}

// Set holds every data-backed widget of a page.
type Set struct {
	Posts *Widget[core.ContentCard]
	Repos *Widget[core.RepoSummary]
	Stats *Widget[core.StatSnapshot]
}

// New builds the widget set for p.
func New(p *page.Page, opts Options) *Set {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = source.DefaultTimeout
	}
	b := builder{page: p, opts: opts}
	if opts.HTTPClient != nil {
		b.doer = opts.HTTPClient
	}
	return &Set{
		Posts: b.posts(),
		Repos: b.repos(),
		Stats: b.stats(),
	}
}

type builder struct {
	page *page.Page
	opts Options
	doer source.HTTPDoer
}

// open resolves a location against the page directory. Unusable locations
// are logged and leave the tier without a source, which the resolver treats
// as a missing configuration.
func (b builder) open(widget, location string) source.Source {
	if strings.TrimSpace(location) == "" {
		return nil
	}
	src, err := source.Open(location, b.page.Dir, b.doer)
	if err != nil {
		b.opts.Logger.Warn("unusable data source", "widget", widget, "location", location, "error", err)
		return nil
	}
	return src
}

// =============================================================================
// Posts
// =============================================================================

func (b builder) posts() *Widget[core.ContentCard] {
	w := &Widget[core.ContentCard]{Name: "posts", emptyLabel: carousel.NoItemsStatus}
	location := firstNonEmpty(b.opts.PostSource, b.page.Carousel.Source)
	if !b.page.Carousel.Present && location == "" {
		w.Disabled = PostsDisabled
		return w
	}

	onPage := b.page.Carousel
	w.resolver = source.NewResolver(source.Config[core.ContentCard]{
		Tiers: []source.Tier[core.ContentCard]{
			{
				Name:       "feed",
				Provenance: core.ProvenancePrimary,
				Label:      "Latest posts from the feed.",
				Source:     b.open("posts", location),
				Normalize:  normalize.Posts,
			},
			{
				Name:       "backup feed",
				Provenance: core.ProvenanceSecondary,
				Label:      "Latest posts from the backup feed.",
				Source:     b.open("posts", b.opts.SecondaryPostSource),
				Normalize:  normalize.Posts,
			},
		},
		Hydrate: &source.Fallback[core.ContentCard]{
			Label:    "Unable to load posts right now. Showing the posts on the page.",
			Entities: onPage.Hydrate,
		},
		Embedded: source.Fallback[core.ContentCard]{
			Label: "No posts have been published yet in the feed. Showing local entries.",
			Entities: func() []core.ContentCard {
				if cards := normalize.Posts(onPage.Items); len(cards) > 0 {
					return cards
				}
				return defaults.Posts()
			},
		},
		RetainedLabel: "Unable to load posts right now. Showing cached entries.",
		Timeout:       b.opts.Timeout,
		Logger:        b.opts.Logger.With("widget", "posts"),
	})
	return w
}

// =============================================================================
// Repositories
// =============================================================================

func (b builder) repos() *Widget[core.RepoSummary] {
	w := &Widget[core.RepoSummary]{Name: "repos"}
	user := firstNonEmpty(b.opts.GitHubUser, b.page.GitHub.User)
	if user == "" {
		w.Disabled = ReposDisabled
		return w
	}

	endpoint := firstNonEmpty(b.opts.PinnedEndpoint, DefaultPinnedEndpoint)
	endpoint = strings.ReplaceAll(endpoint, "{user}", url.PathEscape(user))

	var api source.Source
	gh, err := source.NewGitHubSource(source.GitHubOptions{
		User:    user,
		Token:   b.opts.GitHubToken,
		BaseURL: b.opts.GitHubAPIURL,
		Client:  b.opts.HTTPClient,
	})
	if err != nil {
		b.opts.Logger.Warn("github api tier unavailable", "error", err)
	} else {
		api = gh
	}

	limit := b.opts.RepoLimit
	if limit <= 0 {
		limit = DefaultRepoLimit
	}
	w.finish = func(repos []core.RepoSummary) []core.RepoSummary {
		return repos[:min(len(repos), limit)]
	}

	w.resolver = source.NewResolver(source.Config[core.RepoSummary]{
		Tiers: []source.Tier[core.RepoSummary]{
			{
				Name:       "pinned",
				Provenance: core.ProvenancePrimary,
				Label:      "Pinned repositories pulled from " + siteName(endpoint),
				Source:     b.open("repos", endpoint),
				Normalize:  normalize.Repos,
			},
			{
				Name:       "github api",
				Provenance: core.ProvenanceSecondary,
				Label:      "Top repositories for " + user + " from the GitHub API",
				Source:     api,
				Normalize:  normalize.RankedRepos,
			},
		},
		Embedded: source.Fallback[core.RepoSummary]{
			Label:    "Unable to fetch pinned repos right now. Showing featured repositories.",
			Entities: defaults.Repos,
		},
		RetainedLabel: "Unable to fetch pinned repos right now. Showing the last list.",
		Timeout:       b.opts.Timeout,
		Logger:        b.opts.Logger.With("widget", "repos"),
	})
	return w
}

// siteName reduces an endpoint to its registrable domain, e.g.
// pinned.berrysauce.dev becomes berrysauce.dev.
func siteName(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Hostname() == "" {
		return endpoint
	}
	if net.ParseIP(u.Hostname()) != nil {
		return u.Hostname()
	}
	labels := strings.Split(u.Hostname(), ".")
	if len(labels) > 2 {
		labels = labels[len(labels)-2:]
	}
	return strings.Join(labels, ".")
}

// =============================================================================
// Statistics
// =============================================================================

func (b builder) stats() *Widget[core.StatSnapshot] {
	w := &Widget[core.StatSnapshot]{Name: "stats"}
	primary := firstNonEmpty(b.opts.StatsPrimary, b.page.Stats.Source)
	if !b.page.Stats.Present && b.opts.StatsPrimary == "" {
		w.Disabled = StatsDisabled
		return w
	}

	fallback := defaults.Stats()
	w.finish = func(snaps []core.StatSnapshot) []core.StatSnapshot {
		out := make([]core.StatSnapshot, len(snaps))
		for i, s := range snaps {
			out[i] = s.WithDefaults(fallback)
		}
		return out
	}

	w.resolver = source.NewResolver(source.Config[core.StatSnapshot]{
		Tiers: []source.Tier[core.StatSnapshot]{
			{
				Name:       "stats",
				Provenance: core.ProvenancePrimary,
				Label:      "Stats synced from " + primary,
				Source:     noCache(b.open("stats", primary)),
				Normalize:  normalize.Stats,
			},
			{
				Name:       "stats mirror",
				Provenance: core.ProvenanceSecondary,
				Label:      "Stats synced from " + b.opts.StatsSecondary,
				Source:     noCache(b.open("stats", b.opts.StatsSecondary)),
				Normalize:  normalize.Stats,
			},
		},
		Embedded: source.Fallback[core.StatSnapshot]{
			Label: "Showing archived stats.",
			Entities: func() []core.StatSnapshot {
				return []core.StatSnapshot{fallback}
			},
		},
		RetainedLabel: "Unable to refresh stats. Showing the last sync.",
		Timeout:       b.opts.Timeout,
		Logger:        b.opts.Logger.With("widget", "stats"),
	})
	return w
}

func noCache(src source.Source) source.Source {
	if h, ok := src.(*source.HTTPSource); ok {
		h.NoCache = true
	}
	return src
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
