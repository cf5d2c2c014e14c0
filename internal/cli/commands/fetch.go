package commands

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/moriz82/folio/internal/cli/config"
	"github.com/moriz82/folio/internal/source"
	"github.com/moriz82/folio/internal/widgets"
	"github.com/moriz82/folio/pkg/core"
)

// Widget names accepted by fetch.
const (
	widgetPosts = "posts"
	widgetRepos = "repos"
	widgetStats = "stats"
)

var fetchWidgets = []string{widgetPosts, widgetRepos, widgetStats}

// DefaultFetchWidth is the layout width for text and HTML output.
const DefaultFetchWidth = 100

// FetchOptions holds options for the fetch command.
type FetchOptions struct {
	Width int
	// Mount writes the whole host page with the widgets mounted in place.
	Mount bool
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand() *cobra.Command {
	opts := &FetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch [posts|repos|stats]...",
		Short: "Resolve widget data once and print it",
		Long: `Resolve the data behind the page's widgets through their fallback chains
and print the result. Every widget reports which tier answered and why the
earlier tiers did not.

Without arguments all widgets are fetched, concurrently.`,
		Example: `  # Summary tables for every widget
  folio fetch

  # Repositories as JSON
  folio fetch repos -o json

  # The host page with rendered widgets mounted in place
  folio fetch -o html --mount > dist/index.html`,
		ValidArgs: fetchWidgets,
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts, args)
		},
	}

	cmd.Flags().IntVar(&opts.Width, "width", DefaultFetchWidth, "Layout width in columns for text and html output")
	cmd.Flags().BoolVar(&opts.Mount, "mount", false, "With -o html, write the full page with widgets mounted")

	return cmd
}

func runFetch(cmd *cobra.Command, opts *FetchOptions, args []string) error {
	cc := NewCommandContext(cmd)

	p, err := cc.LoadPage()
	if err != nil {
		return err
	}

	start := time.Now()
	rep, err := resolveAll(cmd.Context(), cc.Widgets(p), selectWidgets(args))
	if err != nil {
		return err
	}
	cc.Logger.Debug("fetch complete", "elapsed", time.Since(start))

	r := &reportRenderer{
		w:           cc.Out,
		width:       opts.Width,
		breakpoints: cc.Cfg.Carousel.Breakpoints,
		now:         time.Now(),
	}
	if opts.Mount {
		if cc.Cfg.Output != config.OutputHTML {
			return fmt.Errorf("--mount requires --output html, got %q", cc.Cfg.Output)
		}
		return r.mount(p.Path, rep)
	}
	return r.render(cc.Cfg.Output, rep)
}

// selectWidgets returns the requested widgets in display order, all of them
// when none are named.
func selectWidgets(args []string) []string {
	if len(args) == 0 {
		return fetchWidgets
	}
	var out []string
	for _, name := range fetchWidgets {
		if slices.Contains(args, name) {
			out = append(out, name)
		}
	}
	return out
}

// fetchReport is the resolved state of the selected widgets. Widgets that
// were not requested are nil.
type fetchReport struct {
	Posts *source.Result[core.ContentCard]
	Repos *source.Result[core.RepoSummary]
	Stats *source.Result[core.StatSnapshot]
}

// resolveAll runs the selected chains concurrently.
func resolveAll(ctx context.Context, set *widgets.Set, want []string) (*fetchReport, error) {
	g, ctx := errgroup.WithContext(ctx)
	rep := &fetchReport{}

	for _, name := range want {
		switch name {
		case widgetPosts:
			g.Go(func() error {
				res := set.Posts.Resolve(ctx)
				rep.Posts = &res
				return ctx.Err()
			})
		case widgetRepos:
			g.Go(func() error {
				res := set.Repos.Resolve(ctx)
				rep.Repos = &res
				return ctx.Err()
			})
		case widgetStats:
			g.Go(func() error {
				res := set.Stats.Resolve(ctx)
				rep.Stats = &res
				return ctx.Err()
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch interrupted: %w", err)
	}
	return rep, nil
}
