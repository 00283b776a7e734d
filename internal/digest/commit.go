// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"context"
	"fmt"

	"github.com/pdiddy/arxiv-digest/internal/history"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Commit saves seen plus the identifiers of items, in one Save call. The
// caller's seen set is not modified; the updated set is returned.
func Commit(ctx context.Context, store history.Store, seen history.Set, items []types.Item) (history.Set, error) {
	updated := seen.Clone()
	for _, it := range items {
		updated.Add(it.ID)
	}
	if err := store.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("saving history: %w", err)
	}
	return updated, nil
}
