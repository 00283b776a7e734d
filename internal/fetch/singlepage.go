// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pdiddy/arxiv-digest/internal/catalog"
	"github.com/pdiddy/arxiv-digest/internal/history"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// SinglePage issues one unwindowed query and filters it. If recency order
// puts too many seen items on the page, the result comes up short even
// when older new items exist.
type SinglePage struct {
	Catalog catalog.Catalog

	// PageSize is max_results for the query. Values not larger than the
	// target count are replaced by five times the target.
	PageSize int

	Log zerolog.Logger
}

// Name returns the strategy identifier.
func (f *SinglePage) Name() string { return string(types.StrategySinglePage) }

// Fetch runs the single query. TargetCount <= 0 makes no catalog call.
func (f *SinglePage) Fetch(ctx context.Context, req types.FetchRequest, seen history.Set) ([]types.Item, error) {
	if req.TargetCount <= 0 {
		return []types.Item{}, nil
	}

	pageSize := f.PageSize
	if pageSize <= req.TargetCount {
		pageSize = req.TargetCount * pageFactor
	}

	candidates, err := f.Catalog.Search(ctx, req.Keyword, nil, pageSize)
	if err != nil {
		return nil, err
	}

	acc := newAccumulator(seen, req.TargetCount)
	accepted := acc.offer(candidates)

	f.Log.Info().
		Int("page_size", pageSize).
		Int("candidates", len(candidates)).
		Int("new", accepted).
		Int("target", req.TargetCount).
		Msg("single-page fetch complete")

	return acc.items, nil
}
