package repositories

import (
	"context"

	"github.com/chrisdamba/cafedatasim/internal/models"
)

// TableRepository persists whole dataset tables into one database engine.
type TableRepository interface {
	// CreateSchema drops and recreates the tables so each run starts clean.
	CreateSchema(ctx context.Context, tables []models.Table) error
	BulkCreate(ctx context.Context, table models.Table) error
	Count(ctx context.Context, table string) (int, error)
	DeleteAll(ctx context.Context, table string) error
	Close() error
}
