package core

import (
	"sort"
	"time"
)

// ContentCard is a single post shown in the carousel.
type ContentCard struct {
	ID           string
	Title        string
	Summary      string
	MediaURL     string
	MediaAlt     string
	PublishedAt  time.Time // zero when absent or unparseable
	PublishedRaw string    // the value as it arrived, kept for display
	ReadDuration string
	Tags         []string
	Href         string
}

// HasMedia reports whether the card carries an image.
func (c ContentCard) HasMedia() bool {
	return c.MediaURL != ""
}

// Link returns the card target, deriving it from the ID when no explicit href exists.
func (c ContentCard) Link() string {
	if c.Href != "" {
		return c.Href
	}
	if c.ID != "" {
		return "posts/" + c.ID + ".html"
	}
	return "#"
}

// SortCards orders cards by PublishedAt, newest first.
// Ties (including cards without a date) keep their input order.
// The input is not modified.
func SortCards(cards []ContentCard) []ContentCard {
	out := make([]ContentCard, len(cards))
	copy(out, cards)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}
