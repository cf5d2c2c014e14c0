package page

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/moriz82/folio/internal/normalize"
	"github.com/moriz82/folio/pkg/core"
)

// cardNamespace scopes the UUIDs minted for rendered cards that have no slug.
var cardNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/moriz82/folio/cards"))

// RenderedCard is a blog card as it appears in the page markup. Data attributes
// win over the visible text, which may be truncated or decorated.
type RenderedCard struct {
	Slug     string
	Title    string
	Summary  string
	Media    string
	MediaAlt string
	Date     string
	Read     string
	Tags     []string
	Href     string
}

func renderedCards(carousel *html.Node) []RenderedCard {
	nodes := findAll(carousel, hasClass("blog-card"))
	if len(nodes) == 0 {
		return nil
	}

	cards := make([]RenderedCard, 0, len(nodes))
	for _, n := range nodes {
		c := RenderedCard{
			Slug:    strings.TrimSpace(attr(n, "data-slug")),
			Title:   firstNonEmpty(attr(n, "data-title"), textOf(find(n, isTag("h3")))),
			Summary: firstNonEmpty(attr(n, "data-summary"), textOf(find(n, isTag("p")))),
			Href:    "#",
		}
		if img := find(n, isTag("img")); img != nil {
			c.Media = strings.TrimSpace(attr(img, "src"))
			c.MediaAlt = strings.TrimSpace(attr(img, "alt"))
		}
		c.Date = strings.TrimSpace(attr(n, "data-date"))
		if c.Date == "" {
			if t := find(n, isTag("time")); t != nil {
				c.Date = firstNonEmpty(attr(t, "datetime"), textContent(t))
			}
		}
		c.Read = firstNonEmpty(attr(n, "data-read"), textOf(within(hasClass("blog-card-meta"), isTag("span"))(n)))
		c.Read = strings.TrimSpace(strings.TrimSuffix(c.Read, " read"))
		if list := find(n, hasClass("tag-list")); list != nil {
			for _, li := range findAll(list, isTag("li")) {
				if tag := textContent(li); tag != "" {
					c.Tags = append(c.Tags, tag)
				}
			}
		}
		if link := find(n, hasClass("blog-card-link")); link != nil {
			c.Href = attrOr(link, "href", "#")
		}
		cards = append(cards, c)
	}
	return cards
}

// Card converts the rendered card into a ContentCard. Cards without a slug get
// a stable UUID derived from their title.
func (r RenderedCard) Card() core.ContentCard {
	id := r.Slug
	if id == "" {
		id = uuid.NewSHA1(cardNamespace, []byte(r.Title)).String()
	}
	href := r.Href
	if href == "#" && r.Slug != "" {
		href = ""
	}
	return core.ContentCard{
		ID:           id,
		Title:        r.Title,
		Summary:      r.Summary,
		MediaURL:     r.Media,
		MediaAlt:     r.MediaAlt,
		PublishedAt:  normalize.ParseDate(r.Date),
		PublishedRaw: r.Date,
		ReadDuration: r.Read,
		Tags:         r.Tags,
		Href:         href,
	}
}

// Hydrate reconstructs content cards from the cards already rendered in the
// page, keeping their on-page order.
func (c Carousel) Hydrate() []core.ContentCard {
	if len(c.Cards) == 0 {
		return nil
	}
	out := make([]core.ContentCard, 0, len(c.Cards))
	for _, rc := range c.Cards {
		out = append(out, rc.Card())
	}
	return out
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	return textContent(n)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
