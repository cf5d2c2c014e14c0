// Package page reads the static host page: the embedded widget scripts, the
// data-source attributes and the pre-rendered cards used for hydration.
package page

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/moriz82/folio/pkg/core"
)

// DefaultStatsSource is used when the stats widget is present without a
// data-htb-source attribute.
const DefaultStatsSource = "/data/htb.json"

// Page is everything folio needs from the host page.
type Page struct {
	// Path is the file the page was loaded from; empty when parsed from a reader.
	Path string
	// Dir is the site root used to resolve relative data sources.
	Dir string

	Transcript Transcript
	Carousel   Carousel
	GitHub     GitHub
	Stats      Stats
}

// Transcript is the typewriter mount point.
type Transcript struct {
	Present bool
	Prompt  string
	Script  []byte
}

// Carousel is the blog carousel mount point.
type Carousel struct {
	Present bool
	// Source is the posts feed location (data-post-source).
	Source string
	// Items is the serialized initial item set, when the page embeds one.
	Items []byte
	// Cards are the cards already rendered into the page.
	Cards []RenderedCard
}

// GitHub is the repository grid mount point.
type GitHub struct {
	Present bool
	User    string
}

// Stats is the challenge statistics mount point.
type Stats struct {
	Present bool
	Source  string
}

// Load parses the page at path.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %s: %w", path, err)
	}
	p, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", path, err)
	}
	p.Path = path
	p.Dir = filepath.Dir(path)
	return p, nil
}

// Parse reads a page from r.
func Parse(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	p := &Page{}

	if el := find(doc, hasClass("typewriter")); el != nil {
		p.Transcript = Transcript{
			Present: true,
			Prompt:  attrOr(el, "data-prompt", core.DefaultPrompt),
			Script:  []byte(strings.TrimSpace(attr(el, "data-terminal"))),
		}
	}

	if el := find(doc, hasAttr("data-blog-carousel")); el != nil {
		p.Carousel = Carousel{
			Present: true,
			Source:  strings.TrimSpace(attr(el, "data-post-source")),
			Items:   embeddedItems(doc, el),
			Cards:   renderedCards(el),
		}
	}

	if el := find(doc, hasAttr("data-github-grid")); el != nil {
		p.GitHub = GitHub{
			Present: true,
			User:    strings.TrimSpace(attr(el, "data-github-user")),
		}
	}

	if el := find(doc, hasAttr("data-htb-pie")); el != nil {
		p.Stats = Stats{
			Present: true,
			Source:  attrOr(el, "data-htb-source", DefaultStatsSource),
		}
	}

	return p, nil
}

// embeddedItems returns the carousel's serialized initial item set, taken from
// the data-carousel-items attribute or from a JSON script tag carrying it.
func embeddedItems(doc, carousel *html.Node) []byte {
	if v := strings.TrimSpace(attr(carousel, "data-carousel-items")); v != "" {
		return []byte(v)
	}
	script := find(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "script" &&
			has(n, "data-carousel-items") && strings.Contains(attr(n, "type"), "json")
	})
	if script == nil {
		return nil
	}
	if v := strings.TrimSpace(textContent(script)); v != "" {
		return []byte(v)
	}
	return nil
}

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic explains whether a widget is enabled by the page.
type Diagnostic struct {
	Widget  string
	Enabled bool
	Reason  string
}

// Diagnostics reports which widgets the page enables and why the others are
// disabled.
func (p *Page) Diagnostics() []Diagnostic {
	var out []Diagnostic

	switch {
	case !p.Transcript.Present:
		out = append(out, Diagnostic{"typewriter", false, "no .typewriter element"})
	case len(p.Transcript.Script) == 0:
		out = append(out, Diagnostic{"typewriter", false, "data-terminal is empty"})
	default:
		out = append(out, Diagnostic{"typewriter", true, fmt.Sprintf("prompt %q", p.Transcript.Prompt)})
	}

	switch {
	case !p.Carousel.Present:
		out = append(out, Diagnostic{"carousel", false, "no [data-blog-carousel] element"})
	case p.Carousel.Source == "" && len(p.Carousel.Cards) == 0 && len(p.Carousel.Items) == 0:
		out = append(out, Diagnostic{"carousel", false, "no data-post-source, embedded items or rendered cards"})
	default:
		out = append(out, Diagnostic{"carousel", true,
			fmt.Sprintf("source %q, %d rendered cards", p.Carousel.Source, len(p.Carousel.Cards))})
	}

	switch {
	case !p.GitHub.Present:
		out = append(out, Diagnostic{"github", false, "no [data-github-grid] element"})
	default:
		reason := "user " + p.GitHub.User
		if p.GitHub.User == "" {
			reason = "no data-github-user, configured user applies"
		}
		out = append(out, Diagnostic{"github", true, reason})
	}

	switch {
	case !p.Stats.Present:
		out = append(out, Diagnostic{"stats", false, "no [data-htb-pie] element"})
	default:
		out = append(out, Diagnostic{"stats", true, "source " + p.Stats.Source})
	}

	return out
}
