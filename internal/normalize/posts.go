package normalize

import (
	"github.com/moriz82/folio/pkg/core"
	"github.com/tidwall/gjson"
)

// Post field aliases, in resolution order.
var (
	PostID           = Aliases{"slug"}
	PostTitle        = Aliases{"title"}
	PostSummary      = Aliases{"summary", "excerpt", "notes"}
	PostMedia        = Aliases{"hero", "image"}
	PostMediaAlt     = Aliases{"heroAlt", "hero_alt", "imageAlt"}
	PostPublished    = Aliases{"date", "published"}
	PostReadDuration = Aliases{"readTime", "read_time", "read"}
	PostTags         = Aliases{"tags"}
	PostHref         = Aliases{"href", "url"}
)

// Posts normalizes a JSON array of post records into cards ordered newest
// first. Records without a slug or title are dropped. Returns nil when no
// record survives.
func Posts(raw []byte) []core.ContentCard {
	var cards []core.ContentCard
	for _, rec := range records(raw) {
		if card, ok := post(rec); ok {
			cards = append(cards, card)
		}
	}
	if len(cards) == 0 {
		return nil
	}
	return core.SortCards(cards)
}

func post(rec gjson.Result) (core.ContentCard, bool) {
	if !rec.IsObject() {
		return core.ContentCard{}, false
	}
	id := PostID.String(rec)
	title := PostTitle.String(rec)
	if id == "" || title == "" {
		return core.ContentCard{}, false
	}

	published := PostPublished.String(rec)
	return core.ContentCard{
		ID:           id,
		Title:        title,
		Summary:      PostSummary.String(rec),
		MediaURL:     PostMedia.String(rec),
		MediaAlt:     PostMediaAlt.String(rec),
		PublishedAt:  ParseDate(published),
		PublishedRaw: published,
		ReadDuration: PostReadDuration.String(rec),
		Tags:         stringList(PostTags.Lookup(rec)),
		Href:         PostHref.String(rec),
	}, true
}
