// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the History Set as a JSON list of strings.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Load reads the JSON list. An absent file, or one holding only whitespace,
// yields an empty set. Anything else that is not a JSON list of strings is
// a *CorruptError.
func (s *FileStore) Load(ctx context.Context) (Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewSet(), nil
		}
		return nil, fmt.Errorf("reading history %s: %w", s.path, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return NewSet(), nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}
	return NewSet(ids...), nil
}

// Save writes ids, sorted, to a temporary file in the same directory and
// renames it over the target. A crash mid-write leaves the previous file
// intact.
func (s *FileStore) Save(ctx context.Context, ids Set) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	list := ids.IDs()
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating history directory %s: %w", dir, err)
	}
	return writeAtomic(s.path, data)
}

// writeAtomic replaces path with data via temp file, fsync, and rename.
func writeAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".history-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	syncErr := tmpFile.Sync()
	closeErr := tmpFile.Close()
	switch {
	case writeErr != nil:
		os.Remove(tmpPath)
		return fmt.Errorf("writing history: %w", writeErr)
	case syncErr != nil:
		os.Remove(tmpPath)
		return fmt.Errorf("syncing history: %w", syncErr)
	case closeErr != nil:
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	// Persist the rename itself. Not every platform supports syncing a
	// directory, so failures here are ignored.
	if d, err := os.Open(filepath.Dir(path)); err == nil {
		d.Sync()
		d.Close()
	}
	return nil
}
