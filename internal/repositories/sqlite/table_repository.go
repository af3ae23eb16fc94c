package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/chrisdamba/cafedatasim/internal/repositories"
	_ "github.com/mattn/go-sqlite3"
)

type TableRepository struct {
	db *sql.DB
}

// Open creates the database file, and its directory, when missing.
func Open(path string) (*TableRepository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &TableRepository{db: db}, nil
}

var _ repositories.TableRepository = (*TableRepository)(nil)

func (r *TableRepository) CreateSchema(ctx context.Context, tables []models.Table) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range repositories.Reversed(tables) {
		if _, err := tx.ExecContext(ctx, repositories.DropTableSQL(t)); err != nil {
			return fmt.Errorf("failed to drop %s: %w", t.Name, err)
		}
	}
	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, repositories.CreateTableSQL(repositories.SQLite, t)); err != nil {
			return fmt.Errorf("failed to create %s: %w", t.Name, err)
		}
	}
	return tx.Commit()
}

// BulkCreate inserts every row inside one transaction.
func (r *TableRepository) BulkCreate(ctx context.Context, table models.Table) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(table.Columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table.Name, strings.Join(table.ColumnNames(), ", "), placeholders)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %w", table.Name, err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(table.Columns))
	for _, row := range table.Rows {
		for i, v := range row {
			// sqlite has no timestamp type; keep the flat-file layout
			if ts, ok := v.(time.Time); ok {
				v = models.FormatTimestamp(ts)
			}
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table.Name, err)
		}
	}
	return tx.Commit()
}

func (r *TableRepository) Count(ctx context.Context, table string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %q", table)).Scan(&count)
	return count, err
}

func (r *TableRepository) DeleteAll(ctx context.Context, table string) error {
	_, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %q", table))
	return err
}

func (r *TableRepository) Close() error {
	return r.db.Close()
}
