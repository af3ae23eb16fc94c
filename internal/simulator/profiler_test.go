package simulator

import (
	"math/rand"
	"testing"

	"github.com/chrisdamba/cafedatasim/internal/factories"
	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfiler(t *testing.T, cfg *models.Config, rng *rand.Rand) *CustomerProfiler {
	t.Helper()
	require.NoError(t, cfg.Validate())
	p, err := NewCustomerProfiler(cfg, factories.NewCustomerFactory(rng, cfg.Customers.AverageOrderValue))
	require.NoError(t, err)
	return p
}

func TestMatchPattern(t *testing.T) {
	p := newProfiler(t, models.DefaultConfig(), rand.New(rand.NewSource(1)))

	tests := []struct {
		name string
		slot models.HourSlot
		want string
	}{
		{"weekday morning", models.NewHourSlot(date(2024, 6, 5), 8, models.WeatherSunny, 20), "weekday_commute"},
		{"weekday lunch", models.NewHourSlot(date(2024, 6, 5), 12, models.WeatherSunny, 20), "weekday_lunch"},
		{"weekend afternoon", models.NewHourSlot(date(2024, 6, 8), 15, models.WeatherSunny, 20), "afternoon_break"},
		{"weekend brunch", models.NewHourSlot(date(2024, 6, 9), 10, models.WeatherSunny, 20), "weekend_brunch"},
		{"evening", models.NewHourSlot(date(2024, 6, 5), 19, models.WeatherSunny, 20), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.MatchPattern(tt.slot)
			assert.Equal(t, tt.want != "", ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchPatternPrefersNarrowestThenFirst(t *testing.T) {
	cfg := models.DefaultConfig()
	demo := models.Demographics{
		GenderRatio:     map[string]float64{models.GenderFemale: 1},
		AgeDistribution: map[string]float64{"seniors": 1},
	}
	cfg.Customers.BehavioralPatterns = append(cfg.Customers.BehavioralPatterns,
		models.BehavioralPattern{Name: "noon_rush", Conditions: models.PatternConditions{Hours: []int{12}}, Demographics: demo},
		models.BehavioralPattern{Name: "noon_rush_late", Conditions: models.PatternConditions{Hours: []int{12}}, Demographics: demo},
	)
	p := newProfiler(t, cfg, rand.New(rand.NewSource(1)))

	got, ok := p.MatchPattern(models.NewHourSlot(date(2024, 6, 5), 12, models.WeatherSunny, 20))
	require.True(t, ok)
	assert.Equal(t, "noon_rush", got)

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		gender, group := p.SampleDemographics(rng, models.NewHourSlot(date(2024, 6, 5), 12, models.WeatherSunny, 20))
		assert.Equal(t, models.GenderFemale, gender)
		assert.Equal(t, "seniors", group.Name)
	}
}

func TestSampleCustomerFollowsPatternDemographics(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := newProfiler(t, models.DefaultConfig(), rng)

	// weekday_commute is 60% male
	slot := models.NewHourSlot(date(2024, 6, 5), 8, models.WeatherSunny, 20)
	male := 0
	const draws = 3000
	for i := 0; i < draws; i++ {
		c, isNew := p.SampleCustomer(rng, slot)
		require.True(t, isNew)
		if c.Gender == models.GenderMale {
			male++
		}
		ag, ok := models.DefaultConfig().AgeGroup(c.AgeGroup)
		require.True(t, ok)
		assert.GreaterOrEqual(t, c.Age, ag.MinAge)
		assert.LessOrEqual(t, c.Age, ag.MaxAge)
	}
	assert.InDelta(t, 0.6, float64(male)/draws, 0.04)
}

func TestLoyaltyReusesCustomers(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Customers.Loyalty = models.LoyaltyConfig{Enabled: true, RepeatProbability: 1}
	rng := rand.New(rand.NewSource(3))
	p := newProfiler(t, cfg, rng)
	slot := models.NewHourSlot(date(2024, 6, 5), 15, models.WeatherSunny, 20)

	first, isNew := p.SampleCustomer(rng, slot)
	require.True(t, isNew)
	first.ID = 1000
	p.Remember(first)

	for i := 0; i < 20; i++ {
		c, isNew := p.SampleCustomer(rng, slot)
		assert.False(t, isNew)
		assert.Same(t, first, c)
	}
}

func TestLoyaltyDisabledMintsNewCustomers(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Customers.Loyalty.Enabled = false
	rng := rand.New(rand.NewSource(3))
	p := newProfiler(t, cfg, rng)
	slot := models.NewHourSlot(date(2024, 6, 5), 15, models.WeatherSunny, 20)

	first, _ := p.SampleCustomer(rng, slot)
	p.Remember(first)
	for i := 0; i < 20; i++ {
		_, isNew := p.SampleCustomer(rng, slot)
		assert.True(t, isNew)
	}
}
