package output

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrisdamba/cafedatasim/internal/models"
)

// JSONSink writes one <table>.json file per table holding an array of
// objects, one object per line.
type JSONSink struct {
	dir string
}

func NewJSONSink(dir string) *JSONSink {
	return &JSONSink{dir: dir}
}

func (s *JSONSink) Name() string { return models.FormatJSON }

func (s *JSONSink) Write(ctx context.Context, ds *models.Dataset) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	for _, t := range ds.Tables() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.writeTable(t); err != nil {
			return fmt.Errorf("failed to write %s.json: %w", t.Name, err)
		}
	}
	return nil
}

func (s *JSONSink) writeTable(t models.Table) error {
	f, err := os.Create(filepath.Join(s.dir, t.Name+".json"))
	if err != nil {
		return err
	}
	defer f.Close()

	keys := t.ColumnNames()
	w := bufio.NewWriter(f)
	w.WriteString("[")
	for i, row := range t.Rows {
		if i > 0 {
			w.WriteString(",")
		}
		b, err := rowJSON(keys, row)
		if err != nil {
			return err
		}
		w.WriteString("\n  ")
		w.Write(b)
	}
	if len(t.Rows) > 0 {
		w.WriteString("\n")
	}
	w.WriteString("]\n")
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func (s *JSONSink) Close() error { return nil }
