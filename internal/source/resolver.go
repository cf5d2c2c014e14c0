package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/moriz82/folio/pkg/core"
)

// DefaultTimeout bounds a single tier's fetch.
const DefaultTimeout = 8 * time.Second

// Tier is one remote source in a fallback chain together with the normalizer
// that turns its payload into entities.
type Tier[T any] struct {
	Name       string
	Provenance core.Provenance
	// Label is the status text shown when this tier answers.
	Label     string
	Source    Source
	Normalize func(raw []byte) []T
}

// Fallback is a local tier that needs no network: hydration from rendered
// content or the embedded defaults.
type Fallback[T any] struct {
	Label    string
	Entities func() []T
}

// Result is the outcome of Resolve.
type Result[T any] struct {
	Entities   []T
	Provenance core.Provenance
	// Label is the human-readable status for the widget.
	Label string
	// Failures lists why each skipped tier did not answer, in order.
	Failures []error
}

// Config configures a Resolver.
type Config[T any] struct {
	Tiers []Tier[T]
	// Hydrate reconstructs entities from already rendered content. It is only
	// consulted while no remote tier has ever succeeded.
	Hydrate *Fallback[T]
	// Embedded is the always-available last tier.
	Embedded Fallback[T]
	// RetainedLabel is the status used when remote tiers fail after an earlier
	// success and the previous entities are kept.
	RetainedLabel string
	Timeout       time.Duration
	Logger        *slog.Logger
}

// Resolver walks an ordered chain of tiers and returns the first usable answer.
// It remembers the last remote success so a failed refresh keeps showing data.
type Resolver[T any] struct {
	cfg Config[T]

	mu   sync.Mutex
	last *Result[T]
}

// NewResolver creates a Resolver.
func NewResolver[T any](cfg Config[T]) *Resolver[T] {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver[T]{cfg: cfg}
}

// Resolve tries each tier in order. A tier succeeds when its fetch completes
// without error and its normalizer returns at least one entity. When every
// remote tier fails the resolver falls back to the previous success, then to
// hydration, then to the embedded defaults. Resolve never returns an error.
func (r *Resolver[T]) Resolve(ctx context.Context) Result[T] {
	var failures []error

	for _, tier := range r.cfg.Tiers {
		entities, err := r.try(ctx, tier)
		if err != nil {
			failures = append(failures, &core.TierError{Tier: tier.Name, Err: err})
			r.cfg.Logger.Warn("data tier failed",
				"tier", tier.Name,
				"source", describe(tier.Source),
				"kind", kindOf(err),
				"error", err)
			continue
		}

		res := Result[T]{
			Entities:   entities,
			Provenance: tier.Provenance,
			Label:      tier.Label,
			Failures:   failures,
		}
		r.mu.Lock()
		saved := res
		r.last = &saved
		r.mu.Unlock()

		r.cfg.Logger.Debug("data tier answered", "tier", tier.Name, "entities", len(entities))
		return res
	}

	r.mu.Lock()
	last := r.last
	r.mu.Unlock()
	if last != nil {
		return Result[T]{
			Entities:   last.Entities,
			Provenance: core.ProvenanceRetained,
			Label:      r.cfg.RetainedLabel,
			Failures:   failures,
		}
	}

	if h := r.cfg.Hydrate; h != nil && h.Entities != nil {
		if entities := h.Entities(); len(entities) > 0 {
			r.cfg.Logger.Info("hydrated from rendered content", "entities", len(entities))
			return Result[T]{
				Entities:   entities,
				Provenance: core.ProvenanceHydrated,
				Label:      h.Label,
				Failures:   failures,
			}
		}
		failures = append(failures, &core.TierError{Tier: "hydrate", Err: core.ErrEmptyResult})
	}

	var entities []T
	if r.cfg.Embedded.Entities != nil {
		entities = r.cfg.Embedded.Entities()
	}
	if entities == nil {
		entities = []T{}
	}
	return Result[T]{
		Entities:   entities,
		Provenance: core.ProvenanceEmbedded,
		Label:      r.cfg.Embedded.Label,
		Failures:   failures,
	}
}

func (r *Resolver[T]) try(ctx context.Context, tier Tier[T]) ([]T, error) {
	if tier.Source == nil {
		return nil, core.ErrConfigMissing
	}

	tctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	raw, err := tier.Source.Fetch(tctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, core.ErrNetworkFailure) {
			return nil, fmt.Errorf("%w: timed out after %s", core.ErrNetworkFailure, r.cfg.Timeout)
		}
		return nil, err
	}

	entities := tier.Normalize(raw)
	if len(entities) == 0 {
		if !gjson.ValidBytes(raw) {
			return nil, fmt.Errorf("%s: %w: malformed JSON", describe(tier.Source), core.ErrParseFailure)
		}
		return nil, fmt.Errorf("%s: %w", describe(tier.Source), core.ErrEmptyResult)
	}
	return entities, nil
}

func describe(s Source) string {
	if s == nil {
		return "none"
	}
	return s.Describe()
}

func kindOf(err error) string {
	if kind := core.Classify(err); kind != nil {
		return kind.Error()
	}
	return "unknown"
}
