// ABOUTME: SQLite persistence for followed accounts, keyed by handle
// ABOUTME: Pure-Go modernc driver with WAL and busy_timeout pragmas in the DSN

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an account handle does not exist.
var ErrNotFound = errors.New("account not found")

// Account is a followed account.
type Account struct {
	Handle    string
	Name      string
	CreatedAt time.Time
}

// Store wraps the accounts database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	handle     TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);`

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	dsn := path
	if !strings.Contains(path, "?") {
		dsn += "?"
	} else {
		dsn += "&"
	}
	dsn += "_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	log.Info().Str("path", path).Msg("account store initialized")
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListAccounts returns every handle in the order it was followed.
func (s *Store) ListAccounts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT handle FROM accounts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var handles []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		handles = append(handles, h)
	}
	return handles, rows.Err()
}

// CreateAccount follows handle. Following an existing handle is a no-op that
// returns the stored row.
func (s *Store) CreateAccount(ctx context.Context, handle string) (Account, error) {
	now := time.Now().Unix()
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO accounts (handle, name, created_at) VALUES (?, ?, ?)`,
		handle, handle, now,
	); err != nil {
		return Account{}, fmt.Errorf("creating account %q: %w", handle, err)
	}
	return s.GetAccount(ctx, handle)
}

// GetAccount returns the account for handle, or ErrNotFound.
func (s *Store) GetAccount(ctx context.Context, handle string) (Account, error) {
	var (
		a       Account
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT handle, name, created_at FROM accounts WHERE handle = ?`, handle,
	).Scan(&a.Handle, &a.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, fmt.Errorf("reading account %q: %w", handle, err)
	}
	a.CreatedAt = time.Unix(created, 0)
	return a, nil
}

// DeleteAccount unfollows handle. It returns ErrNotFound when nothing was
// deleted.
func (s *Store) DeleteAccount(ctx context.Context, handle string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE handle = ?`, handle)
	if err != nil {
		return fmt.Errorf("deleting account %q: %w", handle, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting account %q: %w", handle, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
