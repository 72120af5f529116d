package service

import (
	"database/sql"

	"github.com/armyblogger/stock-tracker/internal/database"
	"github.com/armyblogger/stock-tracker/internal/model"
	"github.com/armyblogger/stock-tracker/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// VersionInfo returns the application version and database schema version.
func (s *SystemService) VersionInfo() (model.VersionInfo, error) {
	schema, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	return model.VersionInfo{
		AppVersion:    version.Version,
		SchemaVersion: schema,
	}, nil
}
