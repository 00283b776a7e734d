// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog adapts external paper catalogs to a narrow, typed search
// contract. The fetcher depends only on the Catalog interface; ArxivCatalog
// is the production implementation.
package catalog

import (
	"context"
	"fmt"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Catalog searches a paper catalog by keyword.
//
// Results are ordered by submission date, most recent first. A nil window
// searches without a date restriction. Fewer than maxResults items, or none,
// is a valid answer. Calls with overlapping windows may return the same item
// more than once.
type Catalog interface {
	Search(ctx context.Context, keyword string, window *types.DateRange, maxResults int) ([]types.Item, error)
}

// Error reports a failed catalog query: transport, HTTP status, parse, or
// an error document returned by the catalog itself.
type Error struct {
	Keyword string
	Window  *types.DateRange
	Err     error
}

func (e *Error) Error() string {
	if e.Window != nil {
		return fmt.Sprintf("catalog search %q in %s: %v", e.Keyword, e.Window, e.Err)
	}
	return fmt.Sprintf("catalog search %q: %v", e.Keyword, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
