package core

import (
	"sort"
	"time"
)

// Score weights used to rank repositories when no pinned list is available.
const (
	StarWeight    = 3
	ForkWeight    = 1
	WatcherWeight = 1
)

// RepoSummary is a condensed view of a code-hosting repository.
type RepoSummary struct {
	Name         string
	Owner        string
	Description  string
	URL          string
	Language     string
	StarCount    int
	ForkCount    int
	WatcherCount int
	LastUpdated  time.Time
}

// Score is the derived ranking value. Stars count more than forks or watchers.
func (r RepoSummary) Score() int {
	return r.StarCount*StarWeight + r.ForkCount*ForkWeight + r.WatcherCount*WatcherWeight
}

// RankRepos returns repos ordered by Score, highest first. Equal scores keep input order.
func RankRepos(repos []RepoSummary) []RepoSummary {
	out := make([]RepoSummary, len(repos))
	copy(out, repos)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})
	return out
}
