package kv

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver with database/sql
)

// SQLite backs the DB contract with a single-table SQLite database.
type SQLite struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the SQLite database at path and initialises the
// aliases table. Parent directories are created as needed.
func Open(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("kv.Open: %w", err)
		}
	}
	sqldb, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("kv.Open: %w", err)
	}
	s := &SQLite{db: sqldb, path: path}
	if _, err := sqldb.Exec(
		`CREATE TABLE IF NOT EXISTS aliases (
			name TEXT PRIMARY KEY,
			defs TEXT NOT NULL
		)`,
	); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("kv.Open createSchema: %w", err)
	}
	return s, nil
}

// Path returns the file path the database was opened from.
func (s *SQLite) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *SQLite) Close() error { return s.db.Close() }

// BeginRead opens a read-only transaction.
func (s *SQLite) BeginRead() (ReadTx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("kv.BeginRead: %w", err)
	}
	return &sqliteTx{tx: tx}, nil
}

// BeginWrite opens a read-write transaction.
func (s *SQLite) BeginWrite() (WriteTx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("kv.BeginWrite: %w", err)
	}
	return &sqliteTx{tx: tx}, nil
}

type sqliteTx struct {
	tx   *sql.Tx
	done bool
}

func (t *sqliteTx) Get(key string) (string, bool, error) {
	var value string
	err := t.tx.QueryRow(`SELECT defs FROM aliases WHERE name = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv.Get: %w", err)
	}
	return value, true, nil
}

func (t *sqliteTx) All() ([]Pair, error) {
	rows, err := t.tx.Query(`SELECT name, defs FROM aliases ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("kv.All: %w", err)
	}
	defer rows.Close()

	var pairs []Pair
	for rows.Next() {
		var p Pair
		if err := rows.Scan(&p.Key, &p.Value); err != nil {
			return nil, fmt.Errorf("kv.All scan: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv.All rows: %w", err)
	}
	return pairs, nil
}

func (t *sqliteTx) Insert(key, value string) error {
	if _, err := t.tx.Exec(
		`INSERT OR REPLACE INTO aliases (name, defs) VALUES (?, ?)`, key, value,
	); err != nil {
		return fmt.Errorf("kv.Insert: %w", err)
	}
	return nil
}

func (t *sqliteTx) Remove(key string) (string, bool, error) {
	prev, ok, err := t.Get(key)
	if err != nil || !ok {
		return "", false, err
	}
	if _, err := t.tx.Exec(`DELETE FROM aliases WHERE name = ?`, key); err != nil {
		return "", false, fmt.Errorf("kv.Remove: %w", err)
	}
	return prev, true, nil
}

func (t *sqliteTx) Commit() error {
	t.done = true
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("kv.Commit: %w", err)
	}
	return nil
}

func (t *sqliteTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.tx.Rollback()
}

// Done releases a read transaction.
func (t *sqliteTx) Done() error { return t.Rollback() }
