package testutil

import (
	"context"
	"database/sql"
	"testing"

	fernet "github.com/fernet/fernet-go"

	"github.com/armyblogger/stock-tracker/internal/model"
	"github.com/armyblogger/stock-tracker/internal/repository"
	"github.com/armyblogger/stock-tracker/internal/service"
)

// NewTestPortfolioService wires a PortfolioService against the test database
// and the given quote client.
func NewTestPortfolioService(t *testing.T, db *sql.DB, quotes service.QuoteClient) *service.PortfolioService {
	t.Helper()

	snapshotRepo := repository.NewSnapshotRepository(db)

	return service.NewPortfolioService(snapshotRepo, quotes)
}

// NewTestSettingsService wires a SettingsService with a freshly generated
// fernet key.
func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}

	settingRepo := repository.NewSettingRepository(db)
	svc, err := service.NewSettingsService(settingRepo, key.Encode())
	if err != nil {
		t.Fatalf("Failed to create settings service: %v", err)
	}

	return svc
}

// AddPosition adds a position through the service, failing the test on error.
func AddPosition(t *testing.T, svc *service.PortfolioService, ticker string, buyPrice float64, shares int64) model.Position {
	t.Helper()

	pos, err := svc.Add(context.Background(), ticker, buyPrice, shares)
	if err != nil {
		t.Fatalf("Failed to add position %s: %v", ticker, err)
	}
	return pos
}

// FloatPtr returns a pointer to v, for building positions with market data.
func FloatPtr(v float64) *float64 {
	return &v
}
