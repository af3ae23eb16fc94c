package repositories

import (
	"testing"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCreateTableSQL(t *testing.T) {
	table := models.Table{
		Name: "orders",
		Columns: []models.Column{
			{Name: "order_id", Type: models.ColumnInt},
			{Name: "temperature", Type: models.ColumnFloat, Nullable: true},
			{Name: "order_datetime", Type: models.ColumnTime},
		},
	}

	pg := CreateTableSQL(Postgres, table)
	assert.Contains(t, pg, "order_id BIGINT PRIMARY KEY")
	assert.Contains(t, pg, "temperature DOUBLE PRECISION,")
	assert.Contains(t, pg, "order_datetime TIMESTAMP NOT NULL")

	lite := CreateTableSQL(SQLite, table)
	assert.Contains(t, lite, "order_id INTEGER PRIMARY KEY")
	assert.Contains(t, lite, "temperature REAL,")
}

func TestReversed(t *testing.T) {
	tables := []models.Table{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	got := Reversed(tables)
	assert.Equal(t, "c", got[0].Name)
	assert.Equal(t, "a", got[2].Name)
	assert.Equal(t, "a", tables[0].Name)
}
