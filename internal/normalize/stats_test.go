package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moriz82/folio/pkg/core"
)

func TestStats_FullDocument(t *testing.T) {
	raw := []byte(`{
		"difficulties": [
			{"label": "easy", "value": 18},
			{"name": "medium", "count": "9", "color": "#123456"},
			{"label": "hard", "total": 4},
			{"label": "insane", "value": 0}
		],
		"boxes": [
			{"name": "Synced", "difficulty": "medium", "date": "Mar 2025", "summary": "pivot"},
			{"title": "Hawk", "level": "hard", "excerpt": "adcs"},
			{"date": "Jan 2025"}
		]
	}`)

	got := Stats(raw)
	require.Len(t, got, 1)

	wantBuckets := []core.StatBucket{
		{Label: "Easy", Value: 18, ColorToken: "#3ddc84"},
		{Label: "Medium", Value: 9, ColorToken: "#123456"},
		{Label: "Hard", Value: 4, ColorToken: "#ef5350"},
	}
	if diff := cmp.Diff(wantBuckets, got[0].Distribution.Buckets); diff != "" {
		t.Errorf("buckets mismatch (-want +got):\n%s", diff)
	}

	wantTimeline := []core.TimelineEntry{
		{Name: "Synced", Category: "Medium", OccurredOn: "Mar 2025", Summary: "pivot"},
		{Name: UnknownEntryName, OccurredOn: "Jan 2025"},
		{Name: "Hawk", Category: "Hard", Summary: "adcs"},
	}
	if diff := cmp.Diff(wantTimeline, got[0].Timeline); diff != "" {
		t.Errorf("timeline mismatch (-want +got):\n%s", diff)
	}
}

func TestStats_TimelineNewestFirst(t *testing.T) {
	got := Stats([]byte(`{"boxes": [
		{"name": "Old", "date": "Jan 2024"},
		{"name": "Undated"},
		{"name": "Newest", "date": "2025-04-02"},
		{"name": "Mid", "date": "Sep 2024"},
		{"name": "Older", "date": "Feb 2024"}
	]}`))
	require.Len(t, got, 1)

	var names []string
	for _, e := range got[0].Timeline {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Newest", "Mid", "Older", "Old", "Undated"}, names)

	recent := got[0].Recent()
	require.Len(t, recent, 3)
	assert.Equal(t, "Newest", recent[0].Name)
	assert.Equal(t, "Older", recent[2].Name)
}

func TestStats_PartialDocument(t *testing.T) {
	got := Stats([]byte(`{"boxes": [{"name": "Only"}]}`))
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Distribution.Buckets)
	assert.Len(t, got[0].Timeline, 1)
}

func TestStats_NilOnEmpty(t *testing.T) {
	for _, raw := range []string{`{}`, `[]`, `{"difficulties": [{"label": "x", "value": 0}]}`, `not json`} {
		assert.Nil(t, Stats([]byte(raw)), "raw=%s", raw)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "", Label(""))
	assert.Equal(t, "Easy", Label("easy"))
	assert.Equal(t, "VeryEasy", Label("veryEasy"), "only the first letter changes")
	assert.Equal(t, "Élan", Label("élan"))
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, "#4ac1ff", ColorFor("Very Easy"))
	assert.Equal(t, "#ff6bd6", ColorFor("Guru"))
	assert.Equal(t, DefaultColorToken, ColorFor("Mythic"))
}
