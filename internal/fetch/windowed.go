// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/arxiv-digest/internal/catalog"
	"github.com/pdiddy/arxiv-digest/internal/history"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Windowed queries one UTC day at a time, starting today and stepping
// backward, until it holds TargetCount new items or has made StepCeiling
// queries.
type Windowed struct {
	Catalog catalog.Catalog

	// StepCeiling is the maximum number of daily queries (default 365).
	StepCeiling int

	// WindowMaxResults is max_results per daily query (default 200).
	WindowMaxResults int

	// StepDelay pauses between consecutive queries.
	StepDelay time.Duration

	// Now supplies the starting day. Nil means time.Now.
	Now func() time.Time

	Log zerolog.Logger
}

// Name returns the strategy identifier.
func (f *Windowed) Name() string { return string(types.StrategyWindowed) }

// Fetch walks the day windows. A catalog error on any step aborts the whole
// fetch and discards what was gathered. TargetCount <= 0 makes no catalog
// call.
func (f *Windowed) Fetch(ctx context.Context, req types.FetchRequest, seen history.Set) ([]types.Item, error) {
	if req.TargetCount <= 0 {
		return []types.Item{}, nil
	}

	ceiling := f.StepCeiling
	if ceiling <= 0 {
		ceiling = DefaultStepCeiling
	}
	perWindow := f.WindowMaxResults
	if perWindow <= 0 {
		perWindow = DefaultWindowMaxResults
	}
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}

	acc := newAccumulator(seen, req.TargetCount)
	cursor := types.DayWindow(now())

	steps := 0
	for ; steps < ceiling && !acc.full(); steps++ {
		if steps > 0 && f.StepDelay > 0 {
			if err := sleep(ctx, f.StepDelay); err != nil {
				return nil, err
			}
		}

		window := cursor
		candidates, err := f.Catalog.Search(ctx, req.Keyword, &window, perWindow)
		if err != nil {
			return nil, err
		}
		accepted := acc.offer(candidates)

		f.Log.Debug().
			Int("step", steps+1).
			Str("window", window.String()).
			Int("candidates", len(candidates)).
			Int("new", accepted).
			Int("total", len(acc.items)).
			Msg("window queried")

		cursor = types.DayWindow(cursor.From.AddDate(0, 0, -1))
	}

	f.Log.Info().
		Int("steps", steps).
		Int("ceiling", ceiling).
		Int("new", len(acc.items)).
		Int("target", req.TargetCount).
		Msg("windowed fetch complete")

	return acc.items, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
