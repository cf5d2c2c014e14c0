// Package defaults holds the static data embedded in the binary. It is the
// final tier of every fallback chain.
package defaults

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/moriz82/folio/internal/normalize"
	"github.com/moriz82/folio/pkg/core"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var embedded []byte

// Kind names a data set inside the defaults document.
type Kind string

// Data sets carried by the defaults document.
const (
	KindRepos Kind = "repos"
	KindStats Kind = "stats"
	KindPosts Kind = "posts"
)

var (
	loadOnce sync.Once
	docs     map[Kind][]byte
	loadErr  error
)

// load converts each top-level YAML section into JSON so the embedded tier
// goes through the same normalizers as the remote ones.
func load() (map[Kind][]byte, error) {
	loadOnce.Do(func() {
		docs, loadErr = parse(embedded)
	})
	return docs, loadErr
}

func parse(data []byte) (map[Kind][]byte, error) {
	var sections map[string]any
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}

	out := make(map[Kind][]byte, len(sections))
	for key, value := range sections {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode defaults section %q: %w", key, err)
		}
		out[Kind(key)] = raw
	}
	return out, nil
}

// Raw returns the JSON form of one defaults section.
func Raw(kind Kind) ([]byte, error) {
	d, err := load()
	if err != nil {
		return nil, err
	}
	raw, ok := d[kind]
	if !ok {
		return nil, fmt.Errorf("defaults section %q: %w", kind, core.ErrConfigMissing)
	}
	return raw, nil
}

// Repos returns the embedded repository list.
func Repos() []core.RepoSummary {
	raw, err := Raw(KindRepos)
	if err != nil {
		return nil
	}
	return normalize.Repos(raw)
}

// Stats returns the embedded challenge statistics.
func Stats() core.StatSnapshot {
	raw, err := Raw(KindStats)
	if err != nil {
		return core.StatSnapshot{}
	}
	snaps := normalize.Stats(raw)
	if len(snaps) == 0 {
		return core.StatSnapshot{}
	}
	return snaps[0]
}

// Posts returns the embedded posts. The list may be empty; the carousel then
// shows its "no items" status.
func Posts() []core.ContentCard {
	raw, err := Raw(KindPosts)
	if err != nil {
		return nil
	}
	return normalize.Posts(raw)
}
