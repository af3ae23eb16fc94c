package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/chrisdamba/cafedatasim/internal/repositories/postgres"
	"github.com/chrisdamba/cafedatasim/internal/repositories/sqlite"
	"github.com/rs/zerolog/log"
)

// Sink serializes a finished dataset to one destination.
type Sink interface {
	Name() string
	Write(ctx context.Context, ds *models.Dataset) error
	Close() error
}

// Dir is the directory file outputs and the manifest are written to.
func Dir(cfg *models.Config) string {
	return filepath.Join(cfg.Output.Path, cfg.Output.Folder)
}

// NewSinks builds one sink per configured format, in configuration order.
// Repeated formats are ignored.
func NewSinks(ctx context.Context, cfg *models.Config, dir string) ([]Sink, error) {
	var sinks []Sink
	seen := make(map[string]bool)
	for _, format := range cfg.Output.Formats {
		format = strings.ToLower(format)
		if seen[format] {
			continue
		}
		seen[format] = true

		sink, err := newSink(ctx, cfg, format, dir)
		if err != nil {
			closeAll(sinks)
			return nil, err
		}
		sinks = append(sinks, sink)
	}
	return sinks, nil
}

func newSink(ctx context.Context, cfg *models.Config, format, dir string) (Sink, error) {
	switch format {
	case models.FormatCSV:
		sink := NewCSVSink(dir)
		if strings.EqualFold(cfg.Output.Encoding, models.EncodingUTF8BOM) {
			sink.WithBOM()
		}
		return sink, nil
	case models.FormatJSON:
		return NewJSONSink(dir), nil
	case models.FormatXLSX:
		return NewXLSXSink(filepath.Join(dir, workbookName)), nil
	case models.FormatParquet:
		return NewParquetSink(filepath.Join(dir, "parquet")), nil
	case models.FormatKafka:
		return NewKafkaSink(cfg.Kafka)
	case models.FormatDB:
		return newDatabaseSink(ctx, cfg.Database)
	default:
		return nil, &models.ConfigError{Field: "output.formats", Reason: fmt.Sprintf("unsupported format %q", format)}
	}
}

func newDatabaseSink(ctx context.Context, cfg models.DatabaseConfig) (Sink, error) {
	switch strings.ToLower(cfg.DefaultEngine) {
	case models.EngineSQLite, "":
		repo, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return NewDatabaseSink(models.EngineSQLite, repo), nil
	case models.EnginePostgres:
		repo, err := postgres.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return NewDatabaseSink(models.EnginePostgres, repo), nil
	default:
		return nil, &models.ConfigError{Field: "database.default_engine", Reason: fmt.Sprintf("unsupported engine %q", cfg.DefaultEngine)}
	}
}

// Export writes ds to every configured sink and records the run in a
// manifest next to the file outputs.
func Export(ctx context.Context, cfg *models.Config, ds *models.Dataset) (*Manifest, error) {
	dir := Dir(cfg)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	sinks, err := NewSinks(ctx, cfg, dir)
	if err != nil {
		return nil, err
	}
	defer closeAll(sinks)

	manifest := NewManifest(cfg, ds, dir)
	for _, sink := range sinks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Info().Str("format", sink.Name()).Msg("writing dataset")
		if err := sink.Write(ctx, ds); err != nil {
			return nil, fmt.Errorf("%s sink: %w", sink.Name(), err)
		}
		manifest.Formats = append(manifest.Formats, sink.Name())
	}

	if err := manifest.Write(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func closeAll(sinks []Sink) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			log.Warn().Err(err).Str("format", s.Name()).Msg("failed to close sink")
		}
	}
}
