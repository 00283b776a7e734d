// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest runs one fetch-and-deliver cycle: load the History Set,
// fetch unseen items, and commit their identifiers exactly once.
//
// A failure at any step before the commit leaves the History Store
// untouched. Once Commit succeeds the items count as delivered, whatever
// happens to the report afterwards.
package digest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/arxiv-digest/internal/fetch"
	"github.com/pdiddy/arxiv-digest/internal/history"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// ErrInvalidRequest reports a request rejected before any catalog call.
var ErrInvalidRequest = errors.New("invalid fetch request")

// Result is the outcome of one cycle.
type Result struct {
	// Items are the newly delivered items in discovery order.
	Items []types.Item

	// Requested is the target count the cycle was asked for.
	Requested int

	// PreviouslySeen is the size of the History Set at load time.
	PreviouslySeen int

	// Committed reports whether the History Set was saved.
	Committed bool
}

// Short reports whether fewer items than requested were found.
func (r Result) Short() bool { return len(r.Items) < r.Requested }

// Runner sequences the History Store and the Fetcher.
type Runner struct {
	Store   history.Store
	Fetcher fetch.Fetcher
	Log     zerolog.Logger

	// DryRun skips the commit so nothing is marked as delivered.
	DryRun bool
}

// Run executes one cycle for req.
func (r *Runner) Run(ctx context.Context, req types.FetchRequest) (Result, error) {
	if !req.HasKeyword() {
		return Result{}, fmt.Errorf("%w: keyword is empty", ErrInvalidRequest)
	}
	req.Keyword = strings.TrimSpace(req.Keyword)

	res := Result{Items: []types.Item{}, Requested: req.TargetCount}
	if req.TargetCount <= 0 {
		r.Log.Info().Int("target", req.TargetCount).Msg("nothing requested, history untouched")
		return res, nil
	}

	seen, err := r.Store.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("loading history: %w", err)
	}
	res.PreviouslySeen = seen.Len()

	log := r.Log.With().Str("strategy", r.Fetcher.Name()).Logger()
	log.Info().
		Str("keyword", req.Keyword).
		Int("target", req.TargetCount).
		Int("seen", seen.Len()).
		Msg("fetching")

	items, err := r.Fetcher.Fetch(ctx, req, seen)
	if err != nil {
		return Result{}, fmt.Errorf("fetching %q: %w", req.Keyword, err)
	}
	res.Items = items

	if res.Short() {
		log.Warn().Int("found", len(items)).Int("target", req.TargetCount).Msg("short result")
	}

	if r.DryRun {
		log.Info().Int("found", len(items)).Msg("dry run, history not committed")
		return res, nil
	}

	updated, err := Commit(ctx, r.Store, seen, items)
	if err != nil {
		return Result{}, err
	}
	res.Committed = true

	log.Info().
		Int("found", len(items)).
		Int("history_size", updated.Len()).
		Msg("history committed")
	return res, nil
}
