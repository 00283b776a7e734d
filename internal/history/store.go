// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists the set of catalog identifiers delivered in
// earlier runs so that later runs do not deliver them again.
//
// A Store has two operations. Load returns the persisted set and fails soft
// on absent or empty state. Save replaces the persisted set in full. A
// persisted state that exists but cannot be parsed is surfaced as a
// *CorruptError and is never treated as empty.
package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// ErrCorrupt matches any *CorruptError via errors.Is.
var ErrCorrupt = errors.New("history state is corrupt")

// CorruptError reports a persisted History Set that exists but cannot be
// parsed. Callers must not overwrite the file.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("history state %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrCorrupt) match.
func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }

// Store loads and saves the History Set.
type Store interface {
	Load(ctx context.Context) (Set, error)
	Save(ctx context.Context, ids Set) error
}

// Open returns the Store backend selected by cfg. The path is required.
func Open(cfg types.HistoryConfig) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history path is empty")
	}
	switch cfg.Backend {
	case types.HistoryFile, "":
		return NewFileStore(cfg.Path), nil
	case types.HistorySQLite:
		return NewSQLiteStore(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unknown history backend %q (want file or sqlite)", cfg.Backend)
	}
}
