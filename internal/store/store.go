// Package store persists price discovery runs behind a driver-agnostic
// interface with SQLite and Postgres backends.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/slabworks/comps-cli/internal/model"
)

// RunFilter specifies criteria for listing price runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	SKU    string          `json:"sku,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for price discovery runs.
type Store interface {
	CreateRun(ctx context.Context, sku string, card model.Card) (*model.PriceRun, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	CompleteRun(ctx context.Context, runID string, result *model.CompResult) error
	FailRun(ctx context.Context, runID string, cause string) error
	GetRun(ctx context.Context, runID string) (*model.PriceRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.PriceRun, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open builds a Store for the configured driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite", "":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
