package simulator

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoWeeks is the default café trimmed to the first half of June 2024.
func twoWeeks() *models.Config {
	cfg := models.DefaultConfig()
	cfg.DataGeneration.StartDate = "2024-06-01"
	cfg.DataGeneration.EndDate = "2024-06-14"
	return cfg
}

func generate(t *testing.T, cfg *models.Config) *models.Dataset {
	t.Helper()
	sim, err := NewSimulator(cfg, WithProgress(io.Discard))
	require.NoError(t, err)
	ds, err := sim.Generate(context.Background())
	require.NoError(t, err)
	return ds
}

func TestGenerateIsDeterministic(t *testing.T) {
	first := generate(t, twoWeeks())
	second := generate(t, twoWeeks())

	require.NotEmpty(t, first.Orders)
	assert.Equal(t, first, second)

	cfg := twoWeeks()
	cfg.DataGeneration.Seed = 43
	other := generate(t, cfg)
	assert.NotEqual(t, first.Orders, other.Orders)
}

func TestGenerateSkipsClosedDaysAndHours(t *testing.T) {
	ds := generate(t, twoWeeks())

	// 14 days minus two Tuesdays
	assert.Len(t, ds.DailySummaries, 12)
	for _, s := range ds.DailySummaries {
		assert.NotEqual(t, "Tuesday", s.DayOfWeek)
	}
	for _, o := range ds.Orders {
		assert.NotEqual(t, time.Tuesday, o.OrderDatetime.Weekday())
		assert.GreaterOrEqual(t, o.OrderDatetime.Hour(), 7)
		assert.Less(t, o.OrderDatetime.Hour(), 21)
	}
}

func TestGenerateCleanDataInvariants(t *testing.T) {
	cfg := twoWeeks()
	cfg.DisableNoise()
	ds := generate(t, cfg)
	require.NotEmpty(t, ds.Orders)
	assert.Equal(t, models.NoiseReport{}, ds.Noise)

	menu := map[int]models.MenuItem{}
	for _, it := range ds.MenuItems {
		menu[it.ID] = it
	}
	customers := map[int64]bool{}
	for _, c := range ds.Customers {
		customers[c.ID] = true
	}

	subtotals := map[int64]float64{}
	quantities := map[int64]int{}
	for _, it := range ds.OrderItems {
		m, ok := menu[it.MenuID]
		require.True(t, ok, "unknown menu id %d", it.MenuID)
		assert.Equal(t, m.Price, it.UnitPrice)
		assert.InDelta(t, it.UnitPrice*float64(it.Quantity), it.Subtotal, 0.005)
		subtotals[it.OrderID] += it.Subtotal
		quantities[it.OrderID] += it.Quantity
	}

	var lastID int64
	for _, o := range ds.Orders {
		assert.Greater(t, o.ID, lastID)
		lastID = o.ID
		assert.True(t, customers[o.CustomerID], "order %d has unknown customer", o.ID)
		assert.InDelta(t, subtotals[o.ID], o.TotalAmount, 0.005)
		assert.Equal(t, quantities[o.ID], o.ItemCount)
		assert.Zero(t, o.MissingFields())
	}

	for i, c := range ds.Customers {
		assert.Equal(t, int64(1000+i), c.ID)
	}
	assert.Equal(t, int64(10000), ds.Orders[0].ID)
}

func TestDailySummariesMatchCleanOrders(t *testing.T) {
	ds := generate(t, twoWeeks())

	total := 0
	for _, s := range ds.DailySummaries {
		total += s.TotalOrders
	}
	noise := ds.Noise
	assert.Equal(t, len(ds.Orders)-noise.Duplicates, total, "summaries reflect pre-noise orders")
	assert.Greater(t, noise.Missing, 0)
}

func TestGenerateReusesCustomersByDefault(t *testing.T) {
	cfg := twoWeeks()
	cfg.DisableNoise()
	ds := generate(t, cfg)

	assert.Less(t, len(ds.Customers), len(ds.Orders))
	visits := 0
	for _, c := range ds.Customers {
		visits += c.VisitCount
	}
	assert.Equal(t, len(ds.Orders), visits)

	repeatDays := 0
	for _, s := range ds.DailySummaries {
		if s.UniqueCustomers < s.TotalOrders {
			repeatDays++
		}
	}
	assert.Greater(t, repeatDays, 0, "some customer orders twice in a day")
}

func TestGenerateWithoutLoyaltyMintsCustomerPerOrder(t *testing.T) {
	cfg := twoWeeks()
	cfg.Customers.Loyalty.Enabled = false
	ds := generate(t, cfg)

	assert.Len(t, ds.Customers, len(ds.Orders)-ds.Noise.Duplicates)
}

func TestNewSimulatorRejectsMalformedConfig(t *testing.T) {
	cfg := twoWeeks()
	cfg.Customers.BehavioralPatterns[0].Demographics.GenderRatio = map[string]float64{
		models.GenderMale:   0.9,
		models.GenderFemale: 0.6,
	}

	sim, err := NewSimulator(cfg, WithProgress(io.Discard))
	assert.Nil(t, sim)
	var cfgErr *models.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestNewSimulatorRejectsInvertedRange(t *testing.T) {
	cfg := twoWeeks()
	cfg.DataGeneration.StartDate = "2024-07-01"

	_, err := NewSimulator(cfg)
	var rangeErr *models.RangeError
	assert.True(t, errors.As(err, &rangeErr))
}

func TestGenerateHonoursCancellation(t *testing.T) {
	sim, err := NewSimulator(twoWeeks(), WithProgress(io.Discard))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
