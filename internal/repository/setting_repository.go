package repository

import (
	"database/sql"
	"fmt"

	"github.com/armyblogger/stock-tracker/internal/apperrors"
)

// SettingRepository provides data access methods for the setting table.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves the value stored under key.
// Returns apperrors.ErrSettingNotFound when the key has no stored value.
func (r *SettingRepository) Get(key string) (string, error) {
	query := `SELECT value FROM setting WHERE "key" = ?`

	var value string
	err := r.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting table: %w", err)
	}

	return value, nil
}

// Put stores value under key, overwriting any prior value.
func (r *SettingRepository) Put(key, value string) error {
	query := `
		INSERT INTO setting ("key", value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT("key") DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to write setting table: %w", err)
	}

	return nil
}
