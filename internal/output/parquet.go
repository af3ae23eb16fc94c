package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// parallel page writers per file
const parquetWriters = 4

// ParquetSink writes <table>.parquet files under dir using a schema derived
// from the table columns.
type ParquetSink struct {
	dir string
}

func NewParquetSink(dir string) *ParquetSink {
	return &ParquetSink{dir: dir}
}

func (s *ParquetSink) Name() string { return models.FormatParquet }

func (s *ParquetSink) Write(ctx context.Context, ds *models.Dataset) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	for _, t := range ds.Tables() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.writeTable(t); err != nil {
			return fmt.Errorf("failed to write %s.parquet: %w", t.Name, err)
		}
	}
	return nil
}

func (s *ParquetSink) writeTable(t models.Table) error {
	schema, err := parquetSchema(t)
	if err != nil {
		return err
	}

	fw, err := local.NewLocalFileWriter(filepath.Join(s.dir, t.Name+".parquet"))
	if err != nil {
		return fmt.Errorf("failed to create local file writer: %w", err)
	}
	if err := writeParquetRows(fw, schema, t); err != nil {
		fw.Close()
		return err
	}
	return fw.Close()
}

func writeParquetRows(fw source.ParquetFile, schema string, t models.Table) error {
	pw, err := writer.NewJSONWriter(schema, fw, parquetWriters)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	keys := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		keys[i] = inName(c.Name)
	}
	for _, row := range t.Rows {
		rec, err := rowJSON(keys, row)
		if err != nil {
			return err
		}
		if err := pw.Write(string(rec)); err != nil {
			return err
		}
	}
	return pw.WriteStop()
}

type parquetField struct {
	Tag    string         `json:"Tag"`
	Fields []parquetField `json:"Fields,omitempty"`
}

// parquetSchema renders the JSON schema parquet-go expects. Timestamps are
// stored as UTF8 in the flat-file layout.
func parquetSchema(t models.Table) (string, error) {
	root := parquetField{Tag: "name=parquet_go_root, repetitiontype=REQUIRED"}
	for _, c := range t.Columns {
		repetition := "REQUIRED"
		if c.Nullable {
			repetition = "OPTIONAL"
		}
		root.Fields = append(root.Fields, parquetField{
			Tag: fmt.Sprintf("name=%s, inname=%s, %s, repetitiontype=%s", c.Name, inName(c.Name), parquetType(c.Type), repetition),
		})
	}
	b, err := json.Marshal(root)
	return string(b), err
}

// inName is the exported field name parquet-go matches JSON keys against.
func inName(column string) string {
	if column == "" {
		return column
	}
	return strings.ToUpper(column[:1]) + column[1:]
}

func parquetType(t models.ColumnType) string {
	switch t {
	case models.ColumnInt:
		return "type=INT64"
	case models.ColumnFloat:
		return "type=DOUBLE"
	case models.ColumnBool:
		return "type=BOOLEAN"
	default:
		return "type=BYTE_ARRAY, convertedtype=UTF8"
	}
}

func (s *ParquetSink) Close() error { return nil }
