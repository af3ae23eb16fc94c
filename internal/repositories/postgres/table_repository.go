package postgres

import (
	"context"
	"fmt"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/chrisdamba/cafedatasim/internal/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TableRepository struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against the configured server and checks it answers.
func Connect(ctx context.Context, cfg models.PostgresConfig) (*TableRepository, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return NewTableRepository(pool), nil
}

func NewTableRepository(pool *pgxpool.Pool) *TableRepository {
	return &TableRepository{pool: pool}
}

var _ repositories.TableRepository = (*TableRepository)(nil)

func (r *TableRepository) CreateSchema(ctx context.Context, tables []models.Table) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, t := range repositories.Reversed(tables) {
		if _, err := tx.Exec(ctx, repositories.DropTableSQL(t)); err != nil {
			return fmt.Errorf("failed to drop %s: %w", t.Name, err)
		}
	}
	for _, t := range tables {
		if _, err := tx.Exec(ctx, repositories.CreateTableSQL(repositories.Postgres, t)); err != nil {
			return fmt.Errorf("failed to create %s: %w", t.Name, err)
		}
	}
	return tx.Commit(ctx)
}

// BulkCreate streams the rows with COPY.
func (r *TableRepository) BulkCreate(ctx context.Context, table models.Table) error {
	if len(table.Rows) == 0 {
		return nil
	}
	n, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{table.Name},
		table.ColumnNames(),
		pgx.CopyFromRows(table.Rows),
	)
	if err != nil {
		return fmt.Errorf("failed to copy into %s: %w", table.Name, err)
	}
	if int(n) != len(table.Rows) {
		return fmt.Errorf("copied %d of %d rows into %s", n, len(table.Rows), table.Name)
	}
	return nil
}

func (r *TableRepository) Count(ctx context.Context, table string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+pgx.Identifier{table}.Sanitize()).Scan(&count)
	return count, err
}

func (r *TableRepository) DeleteAll(ctx context.Context, table string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM "+pgx.Identifier{table}.Sanitize())
	return err
}

func (r *TableRepository) Close() error {
	r.pool.Close()
	return nil
}
