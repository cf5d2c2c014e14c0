package render

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/moriz82/folio/internal/carousel"
	"github.com/moriz82/folio/pkg/core"
)

// Fallback copy.
const (
	UntitledPost       = "Untitled Post"
	DefaultMediaAlt    = "Blog hero image"
	NoDescription      = "No description provided."
	NoSummary          = "No summary provided."
	MaxCardTags        = 4
	DateLayout         = "Jan 2, 2006"
	machineDateLayout  = "2006-01-02"
	transcriptCursor   = "▌"
	defaultRepoColumns = 3
)

// =============================================================================
// Carousel
// =============================================================================

// FormatDate renders a card's publication date, or the raw value when it
// could not be parsed.
func FormatDate(c core.ContentCard) string {
	if c.PublishedAt.IsZero() {
		return c.PublishedRaw
	}
	return c.PublishedAt.Format(DateLayout)
}

// Card renders one content card.
func Card(c core.ContentCard) *Node {
	title := c.Title
	if title == "" {
		title = UntitledPost
	}

	media := El("div", "blog-card-media")
	if c.HasMedia() {
		alt := c.MediaAlt
		if alt == "" {
			alt = c.Title
		}
		if alt == "" {
			alt = DefaultMediaAlt
		}
		media.Append(El("img", "").Set("src", c.MediaURL).Set("alt", alt).Set("loading", "lazy"))
	}

	meta := El("div", "blog-card-meta")
	if date := FormatDate(c); date != "" {
		el := TextEl("time", "", date)
		if !c.PublishedAt.IsZero() {
			el.Set("datetime", c.PublishedAt.Format(machineDateLayout))
		}
		meta.Append(el)
	}
	if c.ReadDuration != "" {
		meta.Append(TextEl("span", "", c.ReadDuration+" read"))
	}

	body := El("div", "blog-card-body", meta, TextEl("h3", "", title), TextEl("p", "", c.Summary))
	if len(c.Tags) > 0 {
		tags := El("ul", "tag-list blog-card-tags")
		for _, tag := range c.Tags[:min(len(c.Tags), MaxCardTags)] {
			tags.Append(TextEl("li", "", tag))
		}
		body.Append(tags)
	}

	link := El("a", "blog-card-link", media, body).Set("href", c.Link())
	return El("article", "blog-card", link).Set("data-slug", c.ID)
}

// CardTrack lays out cards side by side, columns per row.
func CardTrack(cards []core.ContentCard, columns int) *Node {
	track := El("div", "carousel-track").Set("data-carousel-track", "").Set("data-columns", strconv.Itoa(max(columns, 1)))
	for _, c := range cards {
		track.Append(Card(c))
	}
	return track
}

// Carousel renders a full carousel view: cards, navigation, page indicators
// and a single status line. note is the source label; it is merged with the
// view's own status. An empty view renders the status alone.
func Carousel(v carousel.View, note string) *Node {
	root := El("div", "blog-carousel").Set("data-blog-carousel", "")
	status := Status(statusLine(note, v.Status))
	if v.Empty() {
		return root.Append(status)
	}

	prev := TextEl("button", "carousel-prev", "‹ Prev").Set("data-carousel-prev", "")
	next := TextEl("button", "carousel-next", "Next ›").Set("data-carousel-next", "")
	if v.PrevDisabled {
		prev.Set("disabled", "")
	}
	if v.NextDisabled {
		next.Set("disabled", "")
	}

	dots := El("div", "carousel-dots").Set("data-carousel-dots", "")
	for _, ind := range v.Indicators {
		class := "carousel-dot"
		if ind.Active {
			class += " is-active"
		}
		dots.Append(El("button", class).Set("aria-label", ind.Label).Set("data-page", strconv.Itoa(ind.Page)))
	}

	return root.Append(
		CardTrack(v.Cards, v.PageSize),
		El("div", "carousel-nav", prev, dots, next),
		status,
	)
}

// statusLine joins the non-empty parts, skipping repeats.
func statusLine(parts ...string) string {
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || slices.Contains(out, p) {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, " ")
}

// =============================================================================
// Repositories
// =============================================================================

// Repo renders one repository card. now anchors the relative update age.
func Repo(r core.RepoSummary, now time.Time) *Node {
	desc := r.Description
	if desc == "" {
		desc = NoDescription
	}

	title := TextEl("a", "", r.Name).Set("href", r.URL).Set("target", "_blank").Set("rel", "noopener")
	meta := El("div", "repo-meta", TextEl("span", "repo-stars", "★ "+humanize.Comma(int64(r.StarCount))))
	if r.Language != "" {
		meta.Append(TextEl("span", "repo-language", r.Language))
	}
	if !r.LastUpdated.IsZero() {
		meta.Append(TextEl("span", "repo-updated", "updated "+humanize.RelTime(r.LastUpdated, now, "ago", "from now")))
	}

	return El("article", "repo-card",
		El("h3", "", title),
		TextEl("p", "repo-description", desc),
		meta,
	)
}

// RepoGrid renders repositories in rank order.
func RepoGrid(repos []core.RepoSummary, now time.Time) *Node {
	grid := El("div", "github-grid").Set("data-github-grid", "")
	for _, r := range repos {
		grid.Append(Repo(r, now))
	}
	return grid
}

// =============================================================================
// Statistics
// =============================================================================

// Gradient returns a CSS conic-gradient for the distribution, or "" when
// nothing is positive.
func Gradient(d core.StatDistribution) string {
	segments := d.Segments()
	if len(segments) == 0 {
		return ""
	}
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, fmt.Sprintf("%s %s%% %s%%", s.ColorToken, percent(s.Start), percent(s.End)))
	}
	return "conic-gradient(" + strings.Join(parts, ", ") + ")"
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Distribution renders the proportional indicator and its legend.
func Distribution(d core.StatDistribution) *Node {
	bar := El("div", "pie-bar")
	for _, s := range d.Segments() {
		bar.Append(El("span", "pie-segment").
			Set("data-label", s.Label).
			Set("data-color", s.ColorToken).
			Set("data-start", percent(s.Start)).
			Set("data-end", percent(s.End)))
	}

	pie := El("div", "htb-pie", bar).Set("data-htb-pie", "")
	if g := Gradient(d); g != "" {
		pie.Set("style", "--pie-gradient: "+g)
	}
	return El("div", "htb-distribution", pie, Legend(d))
}

// Legend lists buckets as "Label · value".
func Legend(d core.StatDistribution) *Node {
	legend := El("ul", "htb-legend")
	for _, b := range d.Buckets {
		if b.Value <= 0 {
			continue
		}
		swatch := El("span", "swatch").Set("style", "background: "+b.ColorToken).Set("data-color", b.ColorToken)
		legend.Append(El("li", "", swatch, Text(b.Label+" · "+humanize.Ftoa(b.Value))))
	}
	return legend
}

// Timeline renders the most recent entries.
func Timeline(entries []core.TimelineEntry) *Node {
	tl := El("div", "htb-timeline")
	for _, e := range entries[:min(len(entries), core.MaxTimelineEntries)] {
		item := El("div", "htb-timeline-item", TextEl("h4", "", e.Name))

		var meta []string
		if e.OccurredOn != "" {
			meta = append(meta, e.OccurredOn)
		}
		if e.Category != "" {
			meta = append(meta, e.Category)
		}
		if len(meta) > 0 {
			item.Append(TextEl("div", "htb-meta", strings.Join(meta, " · ")))
		}

		summary := e.Summary
		if summary == "" {
			summary = NoSummary
		}
		item.Append(TextEl("p", "", summary))
		tl.Append(item)
	}
	return tl
}

// Stats renders a whole snapshot.
func Stats(s core.StatSnapshot) *Node {
	return El("div", "htb-stats", Distribution(s.Distribution), Timeline(s.Recent()))
}

// =============================================================================
// Shared
// =============================================================================

// Transcript renders the typewriter text followed by a cursor.
func Transcript(text string) *Node {
	return El("pre", "typewriter",
		Text(text),
		TextEl("span", "typewriter-cursor", transcriptCursor).Set("aria-hidden", "true"),
	)
}

// Status renders a widget status line. An empty message is hidden.
func Status(msg string) *Node {
	n := TextEl("p", "status", msg).Set("role", "status").Set("aria-live", "polite")
	if msg == "" {
		n.Set("hidden", "")
	}
	return n
}

// Section wraps widget content under a heading.
func Section(title string, body ...*Node) *Node {
	return El("section", "widget", TextEl("h2", "", title)).Append(body...)
}
