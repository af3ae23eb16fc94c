package simulator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterIDs struct{ order, item int64 }

func (c *counterIDs) NextOrderID() int64     { c.order++; return c.order }
func (c *counterIDs) NextOrderItemID() int64 { c.item++; return c.item }

// cleanOrders builds n orders with one item each and no missing fields.
func cleanOrders(n int) ([]models.Order, []models.OrderItem) {
	orders := make([]models.Order, n)
	items := make([]models.OrderItem, n)
	at := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	for i := range orders {
		weather, temp, pay := models.WeatherSunny, 21.5, models.PaymentCard
		orders[i] = models.Order{
			ID:               int64(i + 1),
			CustomerID:       int64(i + 1),
			OrderDatetime:    at,
			WeatherCondition: &weather,
			Temperature:      &temp,
			PaymentMethod:    &pay,
			ItemCount:        1,
			TotalAmount:      480,
		}
		items[i] = models.OrderItem{ID: int64(i + 1), OrderID: int64(i + 1), MenuID: 8, Quantity: 1, UnitPrice: 480, Subtotal: 480}
	}
	return orders, items
}

func TestInjectMissingCorruptsOneFieldPerRow(t *testing.T) {
	orders, _ := cleanOrders(1000)
	n := NewNoiseInjector(models.NoiseConfig{MissingDataRate: 0.02}, &counterIDs{})

	touched := n.InjectMissing(rand.New(rand.NewSource(13)), orders)

	withMissing := 0
	for _, o := range orders {
		switch o.MissingFields() {
		case 0:
		case 1:
			withMissing++
		default:
			t.Fatalf("order %d has %d missing fields", o.ID, o.MissingFields())
		}
		assert.NotZero(t, o.ID)
		assert.NotZero(t, o.CustomerID)
	}
	assert.Equal(t, touched, withMissing)
	assert.GreaterOrEqual(t, withMissing, 15)
	assert.LessOrEqual(t, withMissing, 25)
}

func TestInjectOutliersScalesWithinFactorRange(t *testing.T) {
	orders, items := cleanOrders(500)
	n := NewNoiseInjector(models.NoiseConfig{OutlierRate: 0.1, OutlierFactorMin: 5, OutlierFactorMax: 10}, &counterIDs{})

	touched := n.InjectOutliers(rand.New(rand.NewSource(17)), orders, items)
	assert.Equal(t, 100, touched)

	changed := 0
	for _, o := range orders {
		if o.TotalAmount != 480 {
			changed++
			assert.GreaterOrEqual(t, o.TotalAmount, 480*5.0)
			assert.LessOrEqual(t, o.TotalAmount, 480*10.0)
		}
	}
	for _, it := range items {
		if it.Quantity != 1 {
			changed++
			assert.GreaterOrEqual(t, it.Quantity, 5)
			assert.LessOrEqual(t, it.Quantity, 10)
		}
		if it.Subtotal != 480 {
			changed++
			assert.GreaterOrEqual(t, it.Subtotal, 480*5.0)
		}
	}
	assert.Equal(t, touched, changed)
}

func TestInjectDuplicatesFollowOriginal(t *testing.T) {
	orders, items := cleanOrders(200)
	ids := &counterIDs{order: 10000, item: 20000}
	n := NewNoiseInjector(models.NoiseConfig{DuplicateRate: 0.05}, ids)

	outOrders, outItems, dups := n.InjectDuplicates(rand.New(rand.NewSource(19)), orders, items)
	require.Equal(t, 10, dups)
	require.Len(t, outOrders, 210)
	require.Len(t, outItems, 210)

	seen := map[int64]bool{}
	clones := 0
	for i, o := range outOrders {
		require.False(t, seen[o.ID], "order id %d reused", o.ID)
		seen[o.ID] = true
		if o.ID > 10000 {
			clones++
			prev := outOrders[i-1]
			assert.Equal(t, prev.CustomerID, o.CustomerID)
			assert.Equal(t, prev.TotalAmount, o.TotalAmount)
			assert.Equal(t, prev.OrderDatetime, o.OrderDatetime)
			assert.NotSame(t, prev.WeatherCondition, o.WeatherCondition)
		}
	}
	assert.Equal(t, dups, clones)

	for i, it := range outItems {
		assert.Equal(t, outOrders[i].ID, it.OrderID)
	}
}

func TestApplyLeavesSummariesAlone(t *testing.T) {
	orders, items := cleanOrders(300)
	summary := Summarize(orders, items, date(2024, 6, 5))
	ds := &models.Dataset{Orders: orders, OrderItems: items, DailySummaries: []models.DailySummary{summary}}

	n := NewNoiseInjector(models.NoiseConfig{
		MissingDataRate: 0.1, OutlierRate: 0.1, DuplicateRate: 0.1,
		OutlierFactorMin: 5, OutlierFactorMax: 10,
	}, &counterIDs{order: 1000, item: 1000})
	report := n.Apply(rand.New(rand.NewSource(23)), ds)

	assert.Equal(t, models.NoiseReport{Missing: 30, Outliers: 60, Duplicates: 30}, report)
	assert.Len(t, ds.Orders, 330)
	assert.Equal(t, summary, ds.DailySummaries[0])
	assert.Equal(t, 300, ds.DailySummaries[0].TotalOrders)
}

func TestSampleIndices(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Nil(t, sampleIndices(rng, 100, 0))
	assert.Nil(t, sampleIndices(rng, 0, 0.5))
	assert.Len(t, sampleIndices(rng, 10, 1), 10)

	picked := sampleIndices(rng, 50, 0.2)
	require.Len(t, picked, 10)
	for i := 1; i < len(picked); i++ {
		assert.Less(t, picked[i-1], picked[i])
	}
}
