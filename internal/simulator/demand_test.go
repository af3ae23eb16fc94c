package simulator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDemand(t *testing.T, cfg *models.Config) *DemandEngine {
	t.Helper()
	require.NoError(t, cfg.Validate())
	d, err := NewDemandEngine(cfg)
	require.NoError(t, err)
	return d
}

func TestExpectedCustomersSunnyWednesdayNoon(t *testing.T) {
	d := newDemand(t, models.DefaultConfig())

	// 2024-06-05 is a Wednesday: 5 × 1.0 × 1.5 × 1.2 × 1.0
	slot := models.NewHourSlot(date(2024, 6, 5), 12, models.WeatherSunny, 24)
	assert.InDelta(t, 9.0, d.ExpectedCustomers(slot), 1e-9)

	rng := rand.New(rand.NewSource(11))
	const draws = 5000
	sum := 0
	for i := 0; i < draws; i++ {
		sum += d.SampleCustomerCount(rng, slot)
	}
	assert.InDelta(t, 9.0, float64(sum)/draws, 0.3)
}

func TestExpectedCustomersAppliesSpecialEvents(t *testing.T) {
	d := newDemand(t, models.DefaultConfig())

	// Valentine's day 2024 is a Wednesday in February
	slot := models.NewHourSlot(date(2024, 2, 14), 12, models.WeatherCloudy, 5)
	assert.InDelta(t, 5*1.0*1.5*1.0*0.8*1.5, d.ExpectedCustomers(slot), 1e-9)
}

func TestClosedSlotsHaveNoDemand(t *testing.T) {
	d := newDemand(t, models.DefaultConfig())
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name string
		slot models.HourSlot
	}{
		{"closed weekday", models.NewHourSlot(date(2024, 6, 4), 12, models.WeatherSunny, 20)},
		{"before opening", models.NewHourSlot(date(2024, 6, 5), 6, models.WeatherSunny, 20)},
		{"at closing hour", models.NewHourSlot(date(2024, 6, 5), 21, models.WeatherSunny, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, d.IsOpen(tt.slot))
			assert.Zero(t, d.ExpectedCustomers(tt.slot))
			assert.Zero(t, d.SampleCustomerCount(rng, tt.slot))
		})
	}
}

func TestNormalDemandStaysCentred(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.DataGeneration.Demand = models.DemandConfig{Distribution: models.DemandNormal, StddevRatio: 0.2}
	d := newDemand(t, cfg)

	slot := models.NewHourSlot(date(2024, 6, 5), 12, models.WeatherSunny, 24)
	rng := rand.New(rand.NewSource(8))
	const draws = 5000
	sum := 0
	for i := 0; i < draws; i++ {
		sum += d.SampleCustomerCount(rng, slot)
	}
	assert.InDelta(t, 9.0, float64(sum)/draws, 0.3)
}

func TestWeatherFollowsSeason(t *testing.T) {
	d := newDemand(t, models.DefaultConfig())
	rng := rand.New(rand.NewSource(21))

	seen := map[string]int{}
	temps := 0.0
	const draws = 2000
	for i := 0; i < draws; i++ {
		w, temp := d.WeatherFor(rng, date(2024, 7, 1))
		seen[w]++
		temps += temp
	}
	assert.Zero(t, seen[models.WeatherSnowy], "no snow in summer")
	assert.InDelta(t, 0.6, float64(seen[models.WeatherSunny])/draws, 0.04)
	assert.InDelta(t, 25, temps/draws, 0.5)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
