// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps the History Set in a single-table SQLite database.
// The database is opened per operation; a run touches it at most twice.
type SQLiteStore struct {
	path string
}

// NewSQLiteStore returns a SQLiteStore backed by the database file at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Path returns the backing database file.
func (s *SQLiteStore) Path() string { return s.path }

// Load returns every identifier in the delivered table. An absent or
// zero-byte file, or a database without the table, yields an empty set.
// A file SQLite rejects as not-a-database or corrupt is a *CorruptError.
func (s *SQLiteStore) Load(ctx context.Context) (Set, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewSet(), nil
		}
		return nil, fmt.Errorf("checking history %s: %w", s.path, err)
	}
	if info.Size() == 0 {
		return NewSet(), nil
	}

	db, err := sql.Open("sqlite3", "file:"+s.path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	defer db.Close()

	var tables int
	err = db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='delivered'`,
	).Scan(&tables)
	if err != nil {
		return nil, s.classify(err, "checking delivered table")
	}
	if tables == 0 {
		return NewSet(), nil
	}

	rows, err := db.QueryContext(ctx, `SELECT id FROM delivered`)
	if err != nil {
		return nil, s.classify(err, "querying delivered ids")
	}
	defer rows.Close()

	ids := NewSet()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, s.classify(err, "scanning delivered id")
		}
		ids.Add(id)
	}
	if err := rows.Err(); err != nil {
		return nil, s.classify(err, "reading delivered ids")
	}
	return ids, nil
}

// Save replaces the delivered table contents with ids in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, ids Set) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating history directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", s.path+"?_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS delivered (id TEXT PRIMARY KEY)`,
	); err != nil {
		return s.classify(err, "creating delivered table")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM delivered`); err != nil {
		return fmt.Errorf("clearing delivered ids: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO delivered (id) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range ids.IDs() {
		if _, err := stmt.ExecContext(ctx, id); err != nil {
			return fmt.Errorf("inserting id %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// classify turns SQLite's not-a-database and corruption codes into a
// *CorruptError and wraps everything else.
func (s *SQLiteStore) classify(err error, op string) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrNotADB, sqlite3.ErrCorrupt:
			return &CorruptError{Path: s.path, Err: err}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
