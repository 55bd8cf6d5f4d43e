// Package arcanes is the local mirror of catalog rows used while offline.
// Rows are keyed by creature id; a write with an existing id replaces the
// previous row. There is no expiry and no size bound.
package arcanes

import (
	"context"

	"github.com/dmitrijs2005/arcanedex/internal/client/models"
)

type Repository interface {
	// InsertAll upserts rows by id in a single transaction.
	InsertAll(ctx context.Context, rows []models.CatalogRow) error

	// GetAll returns every cached row. Callers must not rely on ordering.
	GetAll(ctx context.Context) ([]models.CatalogRow, error)

	// GetByID returns the cached row or (nil, nil) when absent.
	GetByID(ctx context.Context, id int64) (*models.CatalogRow, error)

	Count(ctx context.Context) (int, error)

	// Clear deletes every row.
	Clear(ctx context.Context) error
}
