// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch discovers catalog items not yet delivered, within a bounded
// search effort.
//
// Two strategies implement Fetcher. SinglePage issues one large query and
// filters it. Windowed walks backward one day at a time until it has enough
// new items or reaches its step ceiling. Both return items in discovery
// order, never return an identifier from the seen set, and never return the
// same identifier twice. A short result is not an error.
package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/arxiv-digest/internal/catalog"
	"github.com/pdiddy/arxiv-digest/internal/history"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const (
	// DefaultStepCeiling bounds the windowed strategy to a year of days.
	DefaultStepCeiling = 365

	// DefaultWindowMaxResults is the per-day page size.
	DefaultWindowMaxResults = 200

	// pageFactor scales the target count when no larger page size is configured.
	pageFactor = 5
)

// ErrUnknownStrategy reports a strategy name New does not recognize.
var ErrUnknownStrategy = errors.New("unknown fetch strategy")

// Fetcher finds up to req.TargetCount items absent from seen. Implementations
// must not mutate seen.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, req types.FetchRequest, seen history.Set) ([]types.Item, error)
}

// New returns the Fetcher selected by cfg.Strategy. An empty strategy
// selects single-page.
func New(cfg types.FetchConfig, c catalog.Catalog, log zerolog.Logger) (Fetcher, error) {
	switch cfg.Strategy {
	case types.StrategySinglePage, "":
		return &SinglePage{Catalog: c, PageSize: cfg.PageSize, Log: log}, nil
	case types.StrategyWindowed:
		return &Windowed{
			Catalog:          c,
			StepCeiling:      cfg.StepCeiling,
			WindowMaxResults: cfg.WindowMaxResults,
			StepDelay:        cfg.StepDelay,
			Log:              log,
		}, nil
	default:
		return nil, fmt.Errorf("%w %q (want %s or %s)", ErrUnknownStrategy,
			cfg.Strategy, types.StrategySinglePage, types.StrategyWindowed)
	}
}

// accumulator collects unseen items against a private working set so that
// an item found once is not counted again, whichever query returns it.
type accumulator struct {
	working history.Set
	items   []types.Item
	target  int
}

func newAccumulator(seen history.Set, target int) *accumulator {
	capacity := target
	if capacity > DefaultWindowMaxResults {
		capacity = DefaultWindowMaxResults
	}
	return &accumulator{
		working: seen.Clone(),
		items:   make([]types.Item, 0, capacity),
		target:  target,
	}
}

// offer appends the unseen candidates in order until the target is met.
// It returns how many were accepted.
func (a *accumulator) offer(candidates []types.Item) int {
	accepted := 0
	for _, it := range candidates {
		if a.full() {
			break
		}
		if it.ID == "" || a.working.Has(it.ID) {
			continue
		}
		a.working.Add(it.ID)
		a.items = append(a.items, it)
		accepted++
	}
	return accepted
}

func (a *accumulator) full() bool { return len(a.items) >= a.target }
