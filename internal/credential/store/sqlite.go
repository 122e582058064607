package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"credforge/internal/credential/models"
	"credforge/internal/platform/database"
	"credforge/internal/sentinel"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Compile-time interface satisfaction check.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore persists credential records in the service's local SQLite file.
// Records are stored as opaque JSON under the credentials table; the PRIMARY
// KEY on id is the enforcement point for the at-most-once-insert invariant.
type SQLiteStore struct {
	db *database.DB
}

// NewSQLite constructs a SQLite-backed record store.
func NewSQLite(db *database.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Exists reports whether a record with the given id is present.
func (s *SQLiteStore) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT 1 FROM credentials WHERE id = ?`
	var one int
	err := s.db.Reader.QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check credential %q: %w", id, err)
	}
	return true, nil
}

// Save inserts a new record under id. A primary key violation means the id
// was already issued, possibly by a concurrent request that won the race.
func (s *SQLiteStore) Save(ctx context.Context, id string, rec *models.Record) error {
	if rec == nil {
		return fmt.Errorf("record is required")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode credential %q: %w", id, err)
	}

	const query = `INSERT INTO credentials (id, data) VALUES (?, ?)`
	if _, err := s.db.Writer.ExecContext(ctx, query, id, string(data)); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("credential %q already issued: %w", id, sentinel.ErrDuplicateID)
		}
		return fmt.Errorf("save credential %q: %w", id, err)
	}
	return nil
}

// Get returns the record stored under id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*models.Record, error) {
	const query = `SELECT data FROM credentials WHERE id = ?`
	var data string
	err := s.db.Reader.QueryRowContext(ctx, query, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get credential %q: %w", id, err)
	}

	var rec models.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("decode credential %q: %w", id, err)
	}
	return &rec, nil
}

// isUniqueViolation reports whether err is a SQLite primary key or unique
// constraint violation.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
