package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() *models.Dataset {
	weather := models.WeatherRainy
	at := time.Date(2024, 6, 5, 12, 34, 0, 0, time.UTC)
	return &models.Dataset{
		Categories: []models.Category{{ID: 4, Name: "drink", Description: "Coffee"}},
		MenuItems:  []models.MenuItem{{ID: 7, CategoryID: 4, CategoryName: "drink", Name: "Blend Coffee", Price: 420, AvailableHours: []int{7, 8}, PopularityWeight: 2}},
		Customers:  []models.Customer{{ID: 1000, Name: "Ada Lovelace", Gender: models.GenderFemale, RegistrationDate: at, VisitCount: 1, IsActive: true}},
		Orders: []models.Order{
			{ID: 10000, CustomerID: 1000, OrderDatetime: at, WeatherCondition: &weather, ItemCount: 1, TotalAmount: 420},
		},
		OrderItems:     []models.OrderItem{{ID: 100000, OrderID: 10000, MenuID: 7, Quantity: 1, UnitPrice: 420, Subtotal: 420}},
		DailySummaries: []models.DailySummary{{Date: "2024-06-05", DayOfWeek: "Wednesday", TotalOrders: 1, TotalSales: 420}},
	}
}

func TestTableRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := Open(filepath.Join(t.TempDir(), "db", "cafe.db"))
	require.NoError(t, err)
	defer repo.Close()

	tables := sampleDataset().Tables()
	require.NoError(t, repo.CreateSchema(ctx, tables))
	for _, table := range tables {
		require.NoError(t, repo.BulkCreate(ctx, table))
	}

	for _, table := range tables {
		n, err := repo.Count(ctx, table.Name)
		require.NoError(t, err)
		assert.Equal(t, len(table.Rows), n, table.Name)
	}

	var ts time.Time
	var temperature, payment interface{}
	err = repo.db.QueryRowContext(ctx,
		"SELECT order_datetime, temperature, payment_method FROM orders WHERE order_id = 10000",
	).Scan(&ts, &temperature, &payment)
	require.NoError(t, err)
	// the driver parses TIMESTAMP columns back into time.Time
	assert.True(t, ts.Equal(time.Date(2024, 6, 5, 12, 34, 0, 0, time.UTC)), "got %v", ts)
	assert.Nil(t, temperature)
	assert.Nil(t, payment)

	require.NoError(t, repo.DeleteAll(ctx, models.TableOrderItems))
	n, err := repo.Count(ctx, models.TableOrderItems)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateSchemaStartsClean(t *testing.T) {
	ctx := context.Background()
	repo, err := Open(filepath.Join(t.TempDir(), "cafe.db"))
	require.NoError(t, err)
	defer repo.Close()

	tables := sampleDataset().Tables()
	for i := 0; i < 2; i++ {
		require.NoError(t, repo.CreateSchema(ctx, tables))
		for _, table := range tables {
			require.NoError(t, repo.BulkCreate(ctx, table))
		}
	}

	n, err := repo.Count(ctx, models.TableOrders)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
