package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/rake/pkg/rake/internalerr"
	"github.com/cognicore/rake/pkg/rake/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates
// the stoplist tables if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, internalerr.ErrResourceUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w: %w", path, internalerr.ErrResourceUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// OpenExisting opens a SQLite database that must already exist. A missing
// or unreadable file yields internalerr.ErrResourceUnavailable and nothing
// is created at path.
func OpenExisting(ctx context.Context, path string) (store.Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, internalerr.ErrResourceUnavailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open %s: is a directory: %w", path, internalerr.ErrResourceUnavailable)
	}
	return OpenSQLite(ctx, path)
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS stoplists (
	name TEXT PRIMARY KEY,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS stoplist_terms (
	list TEXT NOT NULL,
	token TEXT NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY(list, token),
	FOREIGN KEY(list) REFERENCES stoplists(name) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_stoplist_terms_position ON stoplist_terms(list, position);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// Stoplist returns the words of a list in stored order.
func (s *sqliteStore) Stoplist(ctx context.Context, name string) ([]string, error) {
	var updated string
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM stoplists WHERE name = ?`, name).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("stoplist %q: %w", name, internalerr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT token FROM stoplist_terms WHERE list = ? ORDER BY position`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := []string{}
	for rows.Next() {
		var tok string
		if err := rows.Scan(&tok); err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, rows.Err()
}

// UpsertStoplist replaces the words of a list inside one transaction.
func (s *sqliteStore) UpsertStoplist(ctx context.Context, name string, tokens []string) error {
	if name == "" {
		return fmt.Errorf("stoplist name is required: %w", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const upsertList = `
INSERT INTO stoplists (name, updated_at) VALUES (?, ?)
ON CONFLICT(name) DO UPDATE SET updated_at=excluded.updated_at;
`
	if _, err := tx.ExecContext(ctx, upsertList, name, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM stoplist_terms WHERE list = ?`, name); err != nil {
		return err
	}

	tokens = store.Normalize(tokens)
	if len(tokens) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO stoplist_terms (list, token, position) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, tok := range tokens {
			if _, err := stmt.ExecContext(ctx, name, tok, i); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Stoplists describes every stored list, ordered by name.
func (s *sqliteStore) Stoplists(ctx context.Context) ([]store.StoplistInfo, error) {
	const query = `
SELECT l.name, l.updated_at, COUNT(t.token)
FROM stoplists l
LEFT JOIN stoplist_terms t ON t.list = l.name
GROUP BY l.name, l.updated_at
ORDER BY l.name;
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.StoplistInfo
	for rows.Next() {
		var (
			info    store.StoplistInfo
			updated string
		)
		if err := rows.Scan(&info.Name, &updated, &info.Count); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339Nano, updated); err == nil {
			info.UpdatedAt = ts
		}
		out = append(out, info)
	}
	return out, rows.Err()
}
