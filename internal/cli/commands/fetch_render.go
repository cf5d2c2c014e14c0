package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/moriz82/folio/internal/carousel"
	"github.com/moriz82/folio/internal/cli/config"
	"github.com/moriz82/folio/internal/render"
	"github.com/moriz82/folio/internal/source"
	"github.com/moriz82/folio/pkg/core"
)

// reportRenderer writes a fetchReport in one of the output formats.
type reportRenderer struct {
	w           io.Writer
	width       int
	breakpoints carousel.Breakpoints
	now         time.Time
}

func (r *reportRenderer) render(format string, rep *fetchReport) error {
	switch format {
	case config.OutputJSON:
		return r.json(rep)
	case config.OutputHTML:
		return render.HTML(r.w, r.sections(rep)...)
	case config.OutputText:
		return r.text(rep)
	case config.OutputMarkdown:
		return r.tables(rep, true)
	default:
		return r.tables(rep, false)
	}
}

// =============================================================================
// Summary
// =============================================================================

type summaryRow struct {
	widget   string
	prov     core.Provenance
	count    int
	label    string
	failures []error
}

func (rep *fetchReport) summary() []summaryRow {
	var rows []summaryRow
	if rep.Posts != nil {
		rows = append(rows, summaryRow{widgetPosts, rep.Posts.Provenance, len(rep.Posts.Entities), rep.Posts.Label, rep.Posts.Failures})
	}
	if rep.Repos != nil {
		rows = append(rows, summaryRow{widgetRepos, rep.Repos.Provenance, len(rep.Repos.Entities), rep.Repos.Label, rep.Repos.Failures})
	}
	if rep.Stats != nil {
		rows = append(rows, summaryRow{widgetStats, rep.Stats.Provenance, len(rep.Stats.Entities), rep.Stats.Label, rep.Stats.Failures})
	}
	return rows
}

// =============================================================================
// Tables
// =============================================================================

func (r *reportRenderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	return t
}

func (r *reportRenderer) flush(t table.Writer, title string, markdown bool) {
	if markdown {
		_, _ = fmt.Fprintf(r.w, "### %s\n\n", title)
		t.RenderMarkdown()
	} else {
		t.SetTitle(title)
		t.Render()
	}
	_, _ = fmt.Fprintln(r.w)
}

func (r *reportRenderer) tables(rep *fetchReport, markdown bool) error {
	caser := cases.Title(language.English)
	rows := rep.summary()

	t := r.newTable()
	t.AppendHeader(table.Row{"Widget", "Source", "Items", "Status"})
	var failures [][2]string
	for _, s := range rows {
		t.AppendRow(table.Row{s.widget, caser.String(s.prov.String()), s.count, s.label})
		for _, err := range s.failures {
			failures = append(failures, [2]string{s.widget, err.Error()})
		}
	}
	r.flush(t, "Widgets", markdown)

	if len(failures) > 0 {
		t := r.newTable()
		t.AppendHeader(table.Row{"Widget", "Skipped tier"})
		for _, f := range failures {
			t.AppendRow(table.Row{f[0], f[1]})
		}
		r.flush(t, "Fallbacks", markdown)
	}

	if rep.Posts != nil && len(rep.Posts.Entities) > 0 {
		t := r.newTable()
		t.AppendHeader(table.Row{"Title", "Published", "Read", "Tags"})
		for _, c := range rep.Posts.Entities {
			t.AppendRow(table.Row{c.Title, render.FormatDate(c), c.ReadDuration, strings.Join(c.Tags, ", ")})
		}
		r.flush(t, "Posts", markdown)
	}

	if rep.Repos != nil && len(rep.Repos.Entities) > 0 {
		t := r.newTable()
		t.AppendHeader(table.Row{"Repository", "Stars", "Language", "Updated"})
		for _, repo := range rep.Repos.Entities {
			updated := "unknown"
			if !repo.LastUpdated.IsZero() {
				updated = humanize.RelTime(repo.LastUpdated, r.now, "ago", "from now")
			}
			t.AppendRow(table.Row{repo.Name, humanize.Comma(int64(repo.StarCount)), repo.Language, updated})
		}
		r.flush(t, "Repositories", markdown)
	}

	if rep.Stats != nil && len(rep.Stats.Entities) > 0 {
		snap := rep.Stats.Entities[0]
		if segs := snap.Distribution.Segments(); len(segs) > 0 {
			t := r.newTable()
			t.AppendHeader(table.Row{"Bucket", "Value", "Share"})
			for _, s := range segs {
				t.AppendRow(table.Row{s.Label, humanize.Ftoa(s.Value), fmt.Sprintf("%.1f%%", s.End-s.Start)})
			}
			r.flush(t, "Distribution", markdown)
		}
		if recent := snap.Recent(); len(recent) > 0 {
			t := r.newTable()
			t.AppendHeader(table.Row{"Challenge", "Category", "Date"})
			for _, e := range recent {
				t.AppendRow(table.Row{e.Name, e.Category, e.OccurredOn})
			}
			r.flush(t, "Timeline", markdown)
		}
	}
	return nil
}

// =============================================================================
// JSON
// =============================================================================

type widgetJSON struct {
	Widget     string   `json:"widget"`
	Provenance string   `json:"provenance"`
	Status     string   `json:"status,omitempty"`
	Failures   []string `json:"failures,omitempty"`
	Items      any      `json:"items"`
}

type postJSON struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary,omitempty"`
	Href         string   `json:"href"`
	MediaURL     string   `json:"media_url,omitempty"`
	MediaAlt     string   `json:"media_alt,omitempty"`
	Published    string   `json:"published,omitempty"`
	ReadDuration string   `json:"read_duration,omitempty"`
	Tags         []string `json:"tags"`
}

type repoJSON struct {
	Name        string     `json:"name"`
	Owner       string     `json:"owner,omitempty"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url"`
	Language    string     `json:"language,omitempty"`
	Stars       int        `json:"stars"`
	Forks       int        `json:"forks"`
	Watchers    int        `json:"watchers"`
	Score       int        `json:"score"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type segmentJSON struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type timelineJSON struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

type statsJSON struct {
	Segments []segmentJSON  `json:"segments"`
	Timeline []timelineJSON `json:"timeline"`
	Gradient string         `json:"gradient"`
}

func failureStrings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

func widgetOf[T any](name string, res *source.Result[T], items any) widgetJSON {
	return widgetJSON{
		Widget:     name,
		Provenance: res.Provenance.String(),
		Status:     res.Label,
		Failures:   failureStrings(res.Failures),
		Items:      items,
	}
}

func (r *reportRenderer) json(rep *fetchReport) error {
	var out []widgetJSON

	if rep.Posts != nil {
		posts := make([]postJSON, 0, len(rep.Posts.Entities))
		for _, c := range rep.Posts.Entities {
			posts = append(posts, postJSON{
				ID:           c.ID,
				Title:        c.Title,
				Summary:      c.Summary,
				Href:         c.Link(),
				MediaURL:     c.MediaURL,
				MediaAlt:     c.MediaAlt,
				Published:    c.PublishedRaw,
				ReadDuration: c.ReadDuration,
				Tags:         append([]string{}, c.Tags...),
			})
		}
		out = append(out, widgetOf(widgetPosts, rep.Posts, posts))
	}

	if rep.Repos != nil {
		repos := make([]repoJSON, 0, len(rep.Repos.Entities))
		for _, repo := range rep.Repos.Entities {
			rj := repoJSON{
				Name:        repo.Name,
				Owner:       repo.Owner,
				Description: repo.Description,
				URL:         repo.URL,
				Language:    repo.Language,
				Stars:       repo.StarCount,
				Forks:       repo.ForkCount,
				Watchers:    repo.WatcherCount,
				Score:       repo.Score(),
			}
			if !repo.LastUpdated.IsZero() {
				updated := repo.LastUpdated
				rj.UpdatedAt = &updated
			}
			repos = append(repos, rj)
		}
		out = append(out, widgetOf(widgetRepos, rep.Repos, repos))
	}

	if rep.Stats != nil {
		var items []statsJSON
		for _, snap := range rep.Stats.Entities {
			sj := statsJSON{
				Segments: []segmentJSON{},
				Timeline: []timelineJSON{},
				Gradient: render.Gradient(snap.Distribution),
			}
			for _, s := range snap.Distribution.Segments() {
				sj.Segments = append(sj.Segments, segmentJSON{s.Label, s.Value, s.ColorToken, s.Start, s.End})
			}
			for _, e := range snap.Recent() {
				sj.Timeline = append(sj.Timeline, timelineJSON{e.Name, e.Category, e.OccurredOn, e.Summary})
			}
			items = append(items, sj)
		}
		if items == nil {
			items = []statsJSON{}
		}
		out = append(out, widgetOf(widgetStats, rep.Stats, items))
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// =============================================================================
// Rendered widgets
// =============================================================================

func (r *reportRenderer) postNodes(res *source.Result[core.ContentCard]) []*render.Node {
	c := carousel.New(r.breakpoints)
	c.Resize(r.width)
	c.SetItems(res.Entities)
	return []*render.Node{render.Carousel(c.View(), res.Label)}
}

func (r *reportRenderer) repoNodes(res *source.Result[core.RepoSummary]) []*render.Node {
	return []*render.Node{render.RepoGrid(res.Entities, r.now), render.Status(res.Label)}
}

func (r *reportRenderer) statNodes(res *source.Result[core.StatSnapshot]) []*render.Node {
	if len(res.Entities) == 0 {
		return []*render.Node{render.Status(res.Label)}
	}
	return []*render.Node{render.Stats(res.Entities[0]), render.Status(res.Label)}
}

func (r *reportRenderer) sections(rep *fetchReport) []*render.Node {
	var out []*render.Node
	if rep.Repos != nil {
		out = append(out, render.Section("Projects", r.repoNodes(rep.Repos)...))
	}
	if rep.Posts != nil {
		out = append(out, render.Section("Writing", r.postNodes(rep.Posts)...))
	}
	if rep.Stats != nil {
		out = append(out, render.Section("Challenges", r.statNodes(rep.Stats)...))
	}
	return out
}

func (r *reportRenderer) text(rep *fetchReport) error {
	term := render.NewTerminal(r.w, r.width)
	for i, n := range r.sections(rep) {
		if i > 0 {
			_, _ = fmt.Fprintln(r.w)
		}
		if _, err := fmt.Fprintln(r.w, term.Render(n)); err != nil {
			return err
		}
	}
	return nil
}

// mount writes the host page at path with each fetched widget rendered into
// its mount point. Mount points missing from the page are left out.
func (r *reportRenderer) mount(path string, rep *fetchReport) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := html.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse page %s: %w", path, err)
	}

	if rep.Posts != nil {
		mountInto(doc, "data-blog-carousel", r.postNodes(rep.Posts))
	}
	if rep.Repos != nil {
		mountInto(doc, "data-github-grid", r.repoNodes(rep.Repos))
	}
	if rep.Stats != nil {
		mountInto(doc, "data-htb-pie", r.statNodes(rep.Stats))
	}
	return html.Render(r.w, doc)
}

// mountInto replaces the children of the first element carrying attr. The
// page already provides the widget's outer element, so the rendered one is
// unwrapped unless it is a bare status line.
func mountInto(doc *html.Node, attr string, nodes []*render.Node) {
	el := findAttr(doc, attr)
	if el == nil || len(nodes) == 0 {
		return
	}
	if nodes[0].HasClass("status") {
		render.Mount(el, nodes...)
		return
	}
	children := append([]*render.Node{}, nodes[0].Children...)
	render.Mount(el, append(children, nodes[1:]...)...)
}

func findAttr(n *html.Node, key string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == key {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findAttr(c, key); found != nil {
			return found
		}
	}
	return nil
}
