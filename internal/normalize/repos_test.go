package normalize

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moriz82/folio/pkg/core"
)

func TestRepos_PinnedShape(t *testing.T) {
	raw := []byte(`[
		{"author": "moriz82", "name": "folio", "description": "site", "language": "Go", "stars": 3, "forks": 1},
		{"author": "moriz82", "name": "dots", "stars": "12"}
	]`)

	got := Repos(raw)
	want := []core.RepoSummary{
		{Name: "folio", Owner: "moriz82", Description: "site", URL: "https://github.com/moriz82/folio", Language: "Go", StarCount: 3, ForkCount: 1},
		{Name: "dots", Owner: "moriz82", URL: "https://github.com/moriz82/dots", StarCount: 12},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Repos() mismatch (-want +got):\n%s", diff)
	}
}

func TestRankedRepos_GitHubShape(t *testing.T) {
	raw := []byte(`[
		{"name": "low", "owner": {"login": "moriz82"}, "html_url": "https://github.com/moriz82/low", "stargazers_count": 1, "forks_count": 0, "watchers_count": 1, "pushed_at": "2025-01-02T03:04:05Z"},
		{"name": "high", "owner": {"login": "moriz82"}, "html_url": "https://github.com/moriz82/high", "stargazers_count": 9, "forks_count": 2, "watchers_count": 9},
		{"description": "nameless"}
	]`)

	got := RankedRepos(raw)
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].Name)
	assert.Equal(t, "moriz82", got[0].Owner)
	assert.Equal(t, "low", got[1].Name)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), got[1].LastUpdated)
}

func TestRepos_NegativeCountsClamp(t *testing.T) {
	got := Repos([]byte(`[{"name": "x", "stars": -4}]`))
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].StarCount)
}

func TestRepos_NilOnEmpty(t *testing.T) {
	assert.Nil(t, Repos([]byte(`[]`)))
	assert.Nil(t, Repos([]byte(`{"message": "Not Found"}`)))
	assert.Nil(t, RankedRepos([]byte(`[{"stars": 1}]`)))
}
