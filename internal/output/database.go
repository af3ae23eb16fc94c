package output

import (
	"context"
	"fmt"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/chrisdamba/cafedatasim/internal/repositories"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
)

// DatabaseSink recreates the schema and bulk-loads every table.
type DatabaseSink struct {
	engine string
	repo   repositories.TableRepository
}

func NewDatabaseSink(engine string, repo repositories.TableRepository) *DatabaseSink {
	return &DatabaseSink{engine: engine, repo: repo}
}

func (s *DatabaseSink) Name() string { return models.FormatDB }

// Write loads every table. When a table fails, the tables loaded so far are
// emptied again so the database never holds a partial dataset.
func (s *DatabaseSink) Write(ctx context.Context, ds *models.Dataset) error {
	tables := ds.Tables()
	if err := s.repo.CreateSchema(ctx, tables); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	for i, t := range tables {
		if err := s.load(ctx, t); err != nil {
			if errs := s.clear(ctx, tables[:i+1]); len(errs) > 0 {
				return multierror.Append(err, errs...)
			}
			return err
		}
	}
	return nil
}

func (s *DatabaseSink) load(ctx context.Context, t models.Table) error {
	if err := s.repo.BulkCreate(ctx, t); err != nil {
		return err
	}
	n, err := s.repo.Count(ctx, t.Name)
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", t.Name, err)
	}
	if n != len(t.Rows) {
		return fmt.Errorf("%s holds %d rows, expected %d", t.Name, n, len(t.Rows))
	}
	log.Debug().Str("engine", s.engine).Str("table", t.Name).Int("rows", n).Msg("table loaded")
	return nil
}

// clear empties tables in reverse order so child rows go before parents.
func (s *DatabaseSink) clear(ctx context.Context, tables []models.Table) []error {
	var errs []error
	for i := len(tables) - 1; i >= 0; i-- {
		if err := s.repo.DeleteAll(context.WithoutCancel(ctx), tables[i].Name); err != nil {
			errs = append(errs, fmt.Errorf("failed to clear %s: %w", tables[i].Name, err))
		}
	}
	log.Warn().Str("engine", s.engine).Int("tables", len(tables)).Msg("load failed, tables cleared")
	return errs
}

func (s *DatabaseSink) Close() error { return s.repo.Close() }
