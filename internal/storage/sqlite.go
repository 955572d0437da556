// This file provides the SQLite backend. The list lives in a single todos
// table whose position column carries the insertion order.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/todoapp/pkg/types"
)

// DefaultSQLiteFileName is the database file the SQLite backend writes
// inside the data directory.
const DefaultSQLiteFileName = "todos.db"

const (
	createTodos = `CREATE TABLE IF NOT EXISTS todos (
    item_id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    done INTEGER NOT NULL
);`

	selectTodos = `SELECT text, done FROM todos ORDER BY position`
	deleteTodos = `DELETE FROM todos`
	insertTodo  = `INSERT INTO todos (item_id, position, text, done) VALUES (?, ?, ?, ?)`
)

// SQLite stores the item list in a SQLite database file. A connection is
// opened per call; the store is synchronous and calls are infrequent.
type SQLite struct {
	path string
}

// NewSQLite returns a SQLite backend bound to path.
func NewSQLite(path string) *SQLite {
	return &SQLite{path: path}
}

// Location returns the database path.
func (s *SQLite) Location() string {
	return s.path
}

// Read returns rows ordered by position. A missing database file yields an
// error wrapping fs.ErrNotExist; a file SQLite cannot query wraps
// types.ErrFormat.
func (s *SQLite) Read() ([]types.Item, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: stat %s: %w", types.ErrIO, s.path, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", types.ErrIO, s.path, err)
	}
	defer db.Close()

	rows, err := db.Query(selectTodos)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %w", types.ErrFormat, s.path, err)
	}
	defer rows.Close()

	var items []types.Item
	for rows.Next() {
		var (
			text string
			done int
		)
		if err := rows.Scan(&text, &done); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %w", types.ErrFormat, err)
		}
		items = append(items, types.Item{Text: text, Done: done != 0})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating rows: %w", types.ErrFormat, err)
	}
	return items, nil
}

// Write replaces every row in one transaction. Each row gets a fresh UUID
// v7 identifier; identity is not meaningful across writes.
func (s *SQLite) Write(items []types.Item) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", types.ErrIO, filepath.Dir(s.path), err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", types.ErrIO, s.path, err)
	}
	defer db.Close()

	if _, err := db.Exec(createTodos); err != nil {
		return fmt.Errorf("%w: creating schema: %w", types.ErrIO, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", types.ErrIO, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteTodos); err != nil {
		return fmt.Errorf("%w: clearing todos: %w", types.ErrIO, err)
	}

	stmt, err := tx.Prepare(insertTodo)
	if err != nil {
		return fmt.Errorf("%w: preparing insert: %w", types.ErrIO, err)
	}
	defer stmt.Close()

	for pos, it := range items {
		done := 0
		if it.Done {
			done = 1
		}
		if _, err := stmt.Exec(generateUUID(), pos, it.Text, done); err != nil {
			return fmt.Errorf("%w: inserting item %d: %w", types.ErrIO, pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %w", types.ErrIO, err)
	}
	return nil
}

// generateUUID generates a new UUID v7 for row IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
