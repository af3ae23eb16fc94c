package output

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book", workbookName)
	require.NoError(t, NewXLSXSink(path).Write(context.Background(), testDataset()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"categories", "menu_items", "customers", "orders", "order_items", "daily_summary"}, f.GetSheetList())

	rows, err := f.GetRows("orders")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "order_id", rows[0][0])
	assert.Equal(t, "10000", rows[1][0])
	assert.Equal(t, "2024-06-05 08:12:00", rows[1][2])
	assert.Equal(t, "card", rows[1][5])

	rows, err = f.GetRows("daily_summary")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
