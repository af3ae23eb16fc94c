package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrisdamba/cafedatasim/internal/models"
)

// CSVSink writes one <table>.csv file per table with a header row.
type CSVSink struct {
	dir string
	bom bool
}

func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir}
}

// WithBOM makes the sink start every file with a UTF-8 byte order mark.
func (s *CSVSink) WithBOM() *CSVSink {
	s.bom = true
	return s
}

func (s *CSVSink) Name() string { return models.FormatCSV }

func (s *CSVSink) Write(ctx context.Context, ds *models.Dataset) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	for _, t := range ds.Tables() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.writeTable(t); err != nil {
			return fmt.Errorf("failed to write %s.csv: %w", t.Name, err)
		}
	}
	return nil
}

func (s *CSVSink) writeTable(t models.Table) error {
	f, err := os.Create(filepath.Join(s.dir, t.Name+".csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	if s.bom {
		if _, err := f.WriteString("\uFEFF"); err != nil {
			return err
		}
	}
	w := csv.NewWriter(f)
	if err := w.Write(t.ColumnNames()); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = formatValue(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func (s *CSVSink) Close() error { return nil }
