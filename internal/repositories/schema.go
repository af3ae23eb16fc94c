package repositories

import (
	"fmt"
	"strings"

	"github.com/chrisdamba/cafedatasim/internal/models"
)

type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func columnType(d Dialect, t models.ColumnType) string {
	switch t {
	case models.ColumnInt:
		if d == Postgres {
			return "BIGINT"
		}
		return "INTEGER"
	case models.ColumnFloat:
		if d == Postgres {
			return "DOUBLE PRECISION"
		}
		return "REAL"
	case models.ColumnBool:
		return "BOOLEAN"
	case models.ColumnTime:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

// CreateTableSQL renders the DDL for t. The first column is the primary key.
func CreateTableSQL(d Dialect, t models.Table) string {
	defs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		def := fmt.Sprintf("%s %s", c.Name, columnType(d, c.Type))
		switch {
		case i == 0:
			def += " PRIMARY KEY"
		case !c.Nullable:
			def += " NOT NULL"
		}
		defs[i] = def
	}
	return fmt.Sprintf("CREATE TABLE %s (\n    %s\n)", t.Name, strings.Join(defs, ",\n    "))
}

func DropTableSQL(t models.Table) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", t.Name)
}

// Reversed returns tables in reverse order so dependants are dropped first.
func Reversed(tables []models.Table) []models.Table {
	out := make([]models.Table, len(tables))
	for i, t := range tables {
		out[len(tables)-1-i] = t
	}
	return out
}
