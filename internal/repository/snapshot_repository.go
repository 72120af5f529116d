package repository

import (
	"database/sql"
	"fmt"
)

// SnapshotRepository provides data access methods for the snapshot table.
// Each snapshot is a whole serialized value under a fixed key; writes always
// replace the previous value in a single statement, which on SQLite gives
// the atomic-overwrite semantics the portfolio save path relies on.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Get retrieves the snapshot stored under key. The boolean reports whether a
// snapshot exists; a missing snapshot is not an error.
func (r *SnapshotRepository) Get(key string) ([]byte, bool, error) {
	query := `SELECT value FROM snapshot WHERE "key" = ?`

	var value string
	err := r.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query snapshot table: %w", err)
	}

	return []byte(value), true, nil
}

// Put stores value under key, overwriting any prior snapshot.
func (r *SnapshotRepository) Put(key string, value []byte) error {
	query := `
		INSERT INTO snapshot ("key", value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT("key") DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, key, string(value)); err != nil {
		return fmt.Errorf("failed to write snapshot table: %w", err)
	}

	return nil
}
