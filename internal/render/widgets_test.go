package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moriz82/folio/internal/carousel"
	"github.com/moriz82/folio/pkg/core"
)

func sampleDistribution() core.StatDistribution {
	return core.StatDistribution{Buckets: []core.StatBucket{
		{Label: "Easy", Value: 18, ColorToken: "#3ddc84"},
		{Label: "Medium", Value: 9, ColorToken: "#f7b733"},
		{Label: "Hard", Value: 4, ColorToken: "#ef5350"},
		{Label: "Insane", Value: 1, ColorToken: "#8d4cff"},
	}}
}

func TestGradient(t *testing.T) {
	assert.Equal(t,
		"conic-gradient(#3ddc84 0% 56.25%, #f7b733 56.25% 84.375%, #ef5350 84.375% 96.875%, #8d4cff 96.875% 100%)",
		Gradient(sampleDistribution()))

	assert.Empty(t, Gradient(core.StatDistribution{}))
	assert.Empty(t, Gradient(core.StatDistribution{Buckets: []core.StatBucket{{Label: "Easy"}}}))
}

func TestDistribution(t *testing.T) {
	n := Distribution(sampleDistribution())

	pie := n.Find("htb-pie")
	require.NotNil(t, pie)
	assert.Contains(t, pie.Attr("style"), "conic-gradient(")

	segments := n.FindAll("pie-segment")
	require.Len(t, segments, 4)
	assert.Equal(t, "56.25", segments[0].Attr("data-end"))

	items := n.Find("htb-legend").Children
	require.Len(t, items, 4)
	assert.Equal(t, "Easy · 18", items[0].TextContent())
}

func TestCard(t *testing.T) {
	published := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		card  core.ContentCard
		check func(t *testing.T, n *Node)
	}{
		{
			name: "full card",
			card: core.ContentCard{
				ID: "hello-world", Title: "Hello World", Summary: "First post.",
				MediaURL: "img/hello.png", MediaAlt: "Hello hero",
				PublishedAt: published, PublishedRaw: "2024-02-01", ReadDuration: "3 min",
				Tags: []string{"a", "b", "c", "d", "e"},
			},
			check: func(t *testing.T, n *Node) {
				assert.Equal(t, "posts/hello-world.html", n.Find("blog-card-link").Attr("href"))
				meta := n.Find("blog-card-meta")
				require.Len(t, meta.Children, 2)
				assert.Equal(t, "Feb 1, 2024", meta.Children[0].Text)
				assert.Equal(t, "2024-02-01", meta.Children[0].Attr("datetime"))
				assert.Equal(t, "3 min read", meta.Children[1].Text)
				assert.Len(t, n.Find("tag-list").Children, MaxCardTags)
				img := n.Find("blog-card-media").Children[0]
				assert.Equal(t, "Hello hero", img.Attr("alt"))
				assert.Equal(t, "lazy", img.Attr("loading"))
			},
		},
		{
			name: "fallbacks",
			card: core.ContentCard{MediaURL: "x.png", PublishedRaw: "sometime in spring"},
			check: func(t *testing.T, n *Node) {
				assert.Contains(t, n.TextContent(), UntitledPost)
				assert.Contains(t, n.TextContent(), "sometime in spring")
				assert.Equal(t, DefaultMediaAlt, n.Find("blog-card-media").Children[0].Attr("alt"))
				assert.Equal(t, "#", n.Find("blog-card-link").Attr("href"))
				assert.Nil(t, n.Find("tag-list"))
			},
		},
		{
			name: "alt falls back to title",
			card: core.ContentCard{ID: "x", Title: "Titled", MediaURL: "x.png"},
			check: func(t *testing.T, n *Node) {
				assert.Equal(t, "Titled", n.Find("blog-card-media").Children[0].Attr("alt"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Card(tt.card))
		})
	}
}

func TestCarousel(t *testing.T) {
	c := carousel.New(carousel.DefaultBreakpoints())
	c.SetItems([]core.ContentCard{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}, {ID: "c", Title: "C"}})
	c.Resize(90)

	n := Carousel(c.View(), "")
	assert.Len(t, n.FindAll("blog-card"), 2)
	assert.Equal(t, "2", n.Find("carousel-track").Attr("data-columns"))
	assert.True(t, n.Find("carousel-prev").HasAttr("disabled"))
	assert.False(t, n.Find("carousel-next").HasAttr("disabled"))

	dots := n.FindAll("carousel-dot")
	require.Len(t, dots, 2)
	assert.True(t, dots[0].HasClass("is-active"))
	assert.Equal(t, "Show posts 3 through 3", dots[1].Attr("aria-label"))
	assert.Equal(t, "Showing posts 1–2 of 3. Featuring A · B.", n.Find("status").Text)
}

func TestCarousel_Empty(t *testing.T) {
	c := carousel.New(carousel.DefaultBreakpoints())
	c.Resize(90)

	n := Carousel(c.View(), carousel.NoItemsStatus)
	assert.Nil(t, n.Find("carousel-track"))
	assert.Nil(t, n.Find("carousel-prev"))
	assert.Nil(t, n.Find("carousel-next"))
	assert.Nil(t, n.Find("carousel-dots"))
	assert.Empty(t, n.FindAll("blog-card"))

	statuses := n.FindAll("status")
	require.Len(t, statuses, 1)
	assert.Equal(t, carousel.NoItemsStatus, statuses[0].Text)
	assert.True(t, n.HasAttr("data-blog-carousel"))
}

func TestCarousel_SingleStatusLine(t *testing.T) {
	c := carousel.New(carousel.DefaultBreakpoints())
	c.SetItems([]core.ContentCard{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}})
	c.Resize(130)

	n := Carousel(c.View(), "Showing the posts on the page.")
	statuses := n.FindAll("status")
	require.Len(t, statuses, 1)
	assert.Equal(t, "Showing the posts on the page. Showing posts 1–2 of 2. Featuring A · B.", statuses[0].Text)
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "", statusLine("", " "))
	assert.Equal(t, "a b", statusLine("a", "", "b"))
	assert.Equal(t, "a", statusLine("a", " a "))
}

func TestRepo(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	n := Repo(core.RepoSummary{
		Name: "folio", URL: "https://github.com/moriz82/folio", Language: "Go",
		StarCount: 1234, LastUpdated: now.Add(-72 * time.Hour),
	}, now)

	assert.Equal(t, NoDescription, n.Find("repo-description").Text)
	assert.Equal(t, "★ 1,234", n.Find("repo-stars").Text)
	assert.Equal(t, "Go", n.Find("repo-language").Text)
	assert.Equal(t, "updated 3 days ago", n.Find("repo-updated").Text)

	bare := Repo(core.RepoSummary{Name: "x"}, now)
	assert.Nil(t, bare.Find("repo-language"))
	assert.Nil(t, bare.Find("repo-updated"))
}

func TestTimeline(t *testing.T) {
	entries := []core.TimelineEntry{
		{Name: "Synced", Category: "Medium", OccurredOn: "Mar 2025", Summary: "RCE."},
		{Name: "Hawk", Category: "Hard"},
		{Name: "Quiet"},
		{Name: "Dropped"},
	}

	n := Timeline(entries)
	items := n.FindAll("htb-timeline-item")
	require.Len(t, items, core.MaxTimelineEntries)

	assert.Equal(t, "Mar 2025 · Medium", items[0].Find("htb-meta").Text)
	assert.Equal(t, "Hard", items[1].Find("htb-meta").Text)
	assert.Nil(t, items[2].Find("htb-meta"))
	assert.Contains(t, items[1].TextContent(), NoSummary)
}

func TestStatus(t *testing.T) {
	assert.True(t, Status("").HasAttr("hidden"))
	assert.False(t, Status("ok").HasAttr("hidden"))
	assert.Equal(t, "status", Status("ok").Attr("role"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Mar 5, 2025", FormatDate(core.ContentCard{PublishedAt: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)}))
	assert.Equal(t, "soon", FormatDate(core.ContentCard{PublishedRaw: "soon"}))
	assert.Empty(t, FormatDate(core.ContentCard{}))
}
