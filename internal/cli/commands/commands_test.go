package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moriz82/folio/internal/carousel"
	"github.com/moriz82/folio/internal/cli/config"
	"github.com/moriz82/folio/internal/source"
	"github.com/moriz82/folio/internal/testutil"
	"github.com/moriz82/folio/internal/widgets"
	"github.com/moriz82/folio/pkg/core"
)

const (
	testPosts = `[
		{"slug": "older", "title": "Older Post", "date": "2024-01-01", "tags": ["go"]},
		{"slug": "newer", "title": "Newer Post", "date": "2024-03-01", "readTime": "4 min"}
	]`
	testStats = `{
		"difficulties": [{"label": "Easy", "value": 3}, {"label": "Hard", "value": 1}],
		"boxes": [{"name": "Lame", "difficulty": "Easy", "date": "Jan 2024"}]
	}`
	testPinned = `[
		{"author": "moriz82", "name": "small", "stars": 1},
		{"author": "moriz82", "name": "big", "stars": 1234}
	]`
)

// setupProject writes the sample page with local feeds, points the repository
// tiers at test servers and loads the resulting configuration.
func setupProject(t *testing.T) *config.Config {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	dir := filepath.Dir(testutil.WriteSamplePage(t))
	testutil.WriteFile(t, dir, filepath.Join("data", "posts.json"), testPosts)
	testutil.WriteFile(t, dir, filepath.Join("data", "htb.json"), testStats)

	pinned := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testPinned))
	}))
	t.Cleanup(pinned.Close)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(api.Close)

	cfgPath := testutil.WriteFile(t, dir, "folio.yaml", fmt.Sprintf(`page: index.html
github:
  pinned_endpoint: %s/get/{user}
  api_base_url: %s
typewriter:
  typing_delay: 1ms
  command_delay: 1ms
`, pinned.URL, api.URL))

	cfg, err := config.Load(cfgPath, nil)
	require.NoError(t, err)
	return cfg
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return buf.String(), err
}

func TestFetch_JSON(t *testing.T) {
	cfg := setupProject(t)
	cfg.Output = config.OutputJSON

	out, err := execute(t, NewFetchCommand())
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)

	byWidget := map[string]map[string]any{}
	for _, w := range got {
		byWidget[w["widget"].(string)] = w
	}

	posts := byWidget[widgetPosts]
	assert.Equal(t, "primary", posts["provenance"])
	items := posts["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "Newer Post", items[0].(map[string]any)["title"])
	assert.Equal(t, "posts/newer.html", items[0].(map[string]any)["href"])

	repos := byWidget[widgetRepos]
	assert.Equal(t, "primary", repos["provenance"])
	names := []string{}
	for _, r := range repos["items"].([]any) {
		names = append(names, r.(map[string]any)["name"].(string))
	}
	assert.Equal(t, []string{"small", "big"}, names, "pinned order is kept")

	stats := byWidget[widgetStats]
	assert.Equal(t, "primary", stats["provenance"])
	snap := stats["items"].([]any)[0].(map[string]any)
	assert.Len(t, snap["segments"], 2)
	assert.Contains(t, snap["gradient"], "conic-gradient(")
}

func TestFetch_SelectsWidgets(t *testing.T) {
	cfg := setupProject(t)
	cfg.Output = config.OutputJSON

	out, err := execute(t, NewFetchCommand(), "repos")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, widgetRepos, got[0]["widget"])
}

func TestFetch_InvalidWidget(t *testing.T) {
	setupProject(t)

	_, err := execute(t, NewFetchCommand(), "weather")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestFetch_Tables(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		wantOut []string
	}{
		{
			name:    "table",
			output:  config.OutputTable,
			wantOut: []string{"Widgets", "Primary", "Newer Post", "1,234", "Easy", "Lame"},
		},
		{
			name:    "markdown",
			output:  config.OutputMarkdown,
			wantOut: []string{"### Widgets", "| Widget | Source | Items | Status |", "### Repositories", "| Newer Post |"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := setupProject(t)
			cfg.Output = tt.output

			out, err := execute(t, NewFetchCommand())
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestFetch_FallbackTable(t *testing.T) {
	cfg := setupProject(t)
	cfg.Output = config.OutputTable
	cfg.Carousel.Source = "data/missing.json"

	out, err := execute(t, NewFetchCommand(), "posts")
	require.NoError(t, err)
	assert.Contains(t, out, "Fallbacks")
	assert.Contains(t, out, "Hydrated")
	assert.Contains(t, out, "Hello World")
}

func TestFetch_HTML(t *testing.T) {
	cfg := setupProject(t)
	cfg.Output = config.OutputHTML

	out, err := execute(t, NewFetchCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "<h2>Projects</h2>")
	assert.Contains(t, out, `class="blog-card"`)
	assert.Contains(t, out, `data-github-grid`)
	assert.Contains(t, out, "--pie-gradient")
	assert.NotContains(t, out, "<html>")
}

func TestFetch_Mount(t *testing.T) {
	cfg := setupProject(t)
	cfg.Output = config.OutputHTML

	out, err := execute(t, NewFetchCommand(), "--mount")
	require.NoError(t, err)
	assert.Contains(t, out, "<html>")
	assert.Contains(t, out, `id="github"`)
	assert.Contains(t, out, "Newer Post")
	assert.Contains(t, out, "★ 1,234")
	assert.NotContains(t, out, "Ignored heading", "rendered cards are replaced")
	assert.Equal(t, 1, strings.Count(out, "data-github-grid"), "mount point is not nested")
}

func TestReportRenderer_PostNodes(t *testing.T) {
	r := &reportRenderer{width: 130, breakpoints: carousel.DefaultBreakpoints()}

	nodes := r.postNodes(&source.Result[core.ContentCard]{
		Entities:   []core.ContentCard{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}},
		Provenance: core.ProvenanceSecondary,
		Label:      "Latest posts from the backup feed.",
	})
	require.Len(t, nodes, 1)
	statuses := nodes[0].FindAll("status")
	require.Len(t, statuses, 1)
	assert.Equal(t, "Latest posts from the backup feed. Showing posts 1–2 of 2. Featuring A · B.", statuses[0].Text)

	nodes = r.postNodes(&source.Result[core.ContentCard]{Provenance: core.ProvenanceEmbedded, Label: carousel.NoItemsStatus})
	require.Len(t, nodes, 1)
	assert.Nil(t, nodes[0].Find("carousel-track"))
	assert.Nil(t, nodes[0].Find("carousel-dots"))
	require.Len(t, nodes[0].FindAll("status"), 1)
	assert.Equal(t, carousel.NoItemsStatus, nodes[0].Find("status").Text)
}

func TestFetch_MountRequiresHTML(t *testing.T) {
	cfg := setupProject(t)
	cfg.Output = config.OutputJSON

	_, err := execute(t, NewFetchCommand(), "--mount")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--mount requires --output html")
}

func TestFetch_Text(t *testing.T) {
	cfg := setupProject(t)
	cfg.Output = config.OutputText

	out, err := execute(t, NewFetchCommand(), "--width", "120")
	require.NoError(t, err)
	assert.Contains(t, out, "Projects")
	assert.Contains(t, out, "Newer Post")
	assert.Contains(t, out, "Lame")
}

func TestFetch_MissingPage(t *testing.T) {
	cfg := setupProject(t)
	cfg.Page = filepath.Join(t.TempDir(), "nope.html")

	_, err := execute(t, NewFetchCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set --page")
}

func TestSelectWidgets(t *testing.T) {
	assert.Equal(t, fetchWidgets, selectWidgets(nil))
	assert.Equal(t, []string{widgetPosts, widgetStats}, selectWidgets([]string{"stats", "posts", "stats"}))
}

func TestPlay(t *testing.T) {
	setupProject(t)

	out, err := execute(t, NewPlayCommand(), "--typing-delay", "1ms", "--command-delay", "1ms")
	require.NoError(t, err)
	assert.Equal(t, "operator@lab:~$ scan\nok\noperator@lab:~$ whoami\noperator\noperator@lab:~$ \n", out)
}

func TestPlay_NoTranscript(t *testing.T) {
	cfg := setupProject(t)
	cfg.Page = testutil.WriteFile(t, t.TempDir(), "bare.html", "<html><body></body></html>")

	_, err := execute(t, NewPlayCommand())
	require.Error(t, err)
	assert.Equal(t, widgets.TypewriterDisabled, err.Error())
}

func TestFramePrinter(t *testing.T) {
	buf := new(bytes.Buffer)
	p := &framePrinter{w: buf}
	for _, frame := range []string{"$ ", "$ a", "$ ab", "$ ab", "$ "} {
		p.print(frame)
	}
	assert.Equal(t, "$ ab\n\n$ ", buf.String())
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		wantOut []string
	}{
		{"table", config.OutputTable, []string{"typewriter", "yes", "user moriz82", "source /data/htb.json"}},
		{"markdown", config.OutputMarkdown, []string{"| Widget | Enabled | Detail |", "| carousel | yes |"}},
		{"json", config.OutputJSON, []string{`"widget": "github"`, `"enabled": true`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := setupProject(t)
			cfg.Output = tt.output

			out, err := execute(t, NewInspectCommand())
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}
