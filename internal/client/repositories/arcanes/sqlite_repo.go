package arcanes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const upsertQuery = `
	INSERT INTO arcanes (id, name, img, lore) VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		img  = excluded.img,
		lore = excluded.lore
`

func (r *SQLiteRepository) InsertAll(ctx context.Context, rows []models.CatalogRow) error {
	if len(rows) == 0 {
		return nil
	}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, row := range rows {
			if _, err := tx.ExecContext(ctx, upsertQuery, row.ID, row.Name, row.ImageRef, row.Lore); err != nil {
				return fmt.Errorf("upsert arcane %d: %w", row.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert arcanes: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.CatalogRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, img, lore FROM arcanes`)
	if err != nil {
		return nil, fmt.Errorf("failed to select arcanes: %w", err)
	}
	defer rows.Close()

	var result []models.CatalogRow
	for rows.Next() {
		var (
			item models.CatalogRow
			img  sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.Name, &img, &item.Lore); err != nil {
			return nil, fmt.Errorf("failed to scan arcane row: %w", err)
		}
		if img.Valid {
			item.ImageRef = &img.String
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate arcane rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.CatalogRow, error) {
	var (
		item models.CatalogRow
		img  sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, name, img, lore FROM arcanes WHERE id = ?`, id).
		Scan(&item.ID, &item.Name, &img, &item.Lore)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get arcane %d: %w", id, err)
	}
	if img.Valid {
		item.ImageRef = &img.String
	}
	return &item, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM arcanes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count arcanes: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM arcanes`); err != nil {
		return fmt.Errorf("failed to clear arcanes: %w", err)
	}
	return nil
}
