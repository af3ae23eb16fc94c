package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/xuri/excelize/v2"
)

const workbookName = "cafe_mock_sales.xlsx"

// XLSXSink writes a single workbook with one sheet per table.
type XLSXSink struct {
	path string
}

func NewXLSXSink(path string) *XLSXSink {
	return &XLSXSink{path: path}
}

func (s *XLSXSink) Name() string { return models.FormatXLSX }

func (s *XLSXSink) Write(ctx context.Context, ds *models.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, t := range ds.Tables() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return err
		}
		if err := writeSheet(f, t); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", t.Name, err)
		}
	}
	return f.SaveAs(s.path)
}

func writeSheet(f *excelize.File, t models.Table) error {
	sw, err := f.NewStreamWriter(t.Name)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(t.Columns))
	for i, name := range t.ColumnNames() {
		header[i] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for r, row := range t.Rows {
		values := make([]interface{}, len(row))
		for i, v := range row {
			switch x := v.(type) {
			case nil:
				values[i] = ""
			case time.Time:
				values[i] = models.FormatTimestamp(x)
			default:
				values[i] = x
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func (s *XLSXSink) Close() error { return nil }
