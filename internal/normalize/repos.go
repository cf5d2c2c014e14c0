package normalize

import (
	"fmt"

	"github.com/moriz82/folio/pkg/core"
	"github.com/tidwall/gjson"
)

// Repository field aliases. The pinned-repo service and the GitHub REST API
// disagree on most names.
var (
	RepoName        = Aliases{"name", "repo"}
	RepoOwner       = Aliases{"author", "owner.login", "owner"}
	RepoDescription = Aliases{"description"}
	RepoURL         = Aliases{"html_url", "url", "link"}
	RepoLanguage    = Aliases{"language"}
	RepoStars       = Aliases{"stars", "stargazers_count"}
	RepoForks       = Aliases{"forks", "forks_count"}
	RepoWatchers    = Aliases{"watchers", "watchers_count"}
	RepoUpdated     = Aliases{"pushed_at", "updated_at"}
)

// Repos normalizes a JSON array of repositories, keeping input order. Use it
// for pre-ranked (pinned) lists.
func Repos(raw []byte) []core.RepoSummary {
	var repos []core.RepoSummary
	for _, rec := range records(raw) {
		if r, ok := repo(rec); ok {
			repos = append(repos, r)
		}
	}
	if len(repos) == 0 {
		return nil
	}
	return repos
}

// RankedRepos normalizes like Repos and then orders by derived score.
func RankedRepos(raw []byte) []core.RepoSummary {
	repos := Repos(raw)
	if repos == nil {
		return nil
	}
	return core.RankRepos(repos)
}

func repo(rec gjson.Result) (core.RepoSummary, bool) {
	if !rec.IsObject() {
		return core.RepoSummary{}, false
	}
	name := RepoName.String(rec)
	if name == "" {
		return core.RepoSummary{}, false
	}
	owner := RepoOwner.String(rec)
	url := RepoURL.String(rec)
	if url == "" && owner != "" {
		url = fmt.Sprintf("https://github.com/%s/%s", owner, name)
	}

	return core.RepoSummary{
		Name:         name,
		Owner:        owner,
		Description:  RepoDescription.String(rec),
		URL:          url,
		Language:     RepoLanguage.String(rec),
		StarCount:    RepoStars.Count(rec),
		ForkCount:    RepoForks.Count(rec),
		WatcherCount: RepoWatchers.Count(rec),
		LastUpdated:  ParseDate(RepoUpdated.String(rec)),
	}, true
}
