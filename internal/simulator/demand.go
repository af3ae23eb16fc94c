package simulator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/chrisdamba/cafedatasim/internal/models"
)

// daily temperatures scatter around the seasonal base with this deviation
const temperatureStddev = 5.0

var defaultWeatherProbabilities = map[string]map[string]float64{
	models.SeasonSpring: {models.WeatherSunny: 0.5, models.WeatherCloudy: 0.3, models.WeatherRainy: 0.2},
	models.SeasonSummer: {models.WeatherSunny: 0.6, models.WeatherCloudy: 0.25, models.WeatherRainy: 0.15, models.WeatherSnowy: 0},
	models.SeasonAutumn: {models.WeatherSunny: 0.5, models.WeatherCloudy: 0.3, models.WeatherRainy: 0.2},
	models.SeasonWinter: {models.WeatherSunny: 0.25, models.WeatherCloudy: 0.35, models.WeatherRainy: 0.2, models.WeatherSnowy: 0.2},
}

var defaultTemperatures = map[string]float64{
	models.SeasonSpring: 15,
	models.SeasonSummer: 25,
	models.SeasonAutumn: 15,
	models.SeasonWinter: 5,
}

// DemandEngine turns the configured multipliers into customer arrivals per
// hour slot.
type DemandEngine struct {
	cfg          *models.Config
	weather      map[string]*Distribution[string]
	temperatures map[string]float64
	normal       bool
}

func NewDemandEngine(cfg *models.Config) (*DemandEngine, error) {
	d := &DemandEngine{
		cfg:          cfg,
		weather:      make(map[string]*Distribution[string], len(models.Seasons)),
		temperatures: make(map[string]float64, len(models.Seasons)),
		normal:       strings.EqualFold(cfg.DataGeneration.Demand.Distribution, models.DemandNormal),
	}

	configured := make(map[string]map[string]float64, len(cfg.DataGeneration.WeatherProbabilities))
	for season, probs := range cfg.DataGeneration.WeatherProbabilities {
		configured[strings.ToLower(season)] = probs
	}
	for _, season := range models.Seasons {
		probs, ok := configured[season]
		if !ok {
			probs = defaultWeatherProbabilities[season]
		}
		lowered := make(map[string]float64, len(probs))
		for w, p := range probs {
			lowered[strings.ToLower(w)] += p
		}
		dist, err := NewStringDistribution(lowered)
		if err != nil {
			return nil, &models.ConfigError{
				Field:  "data_generation.weather_probabilities." + season,
				Reason: err.Error(),
			}
		}
		d.weather[season] = dist

		d.temperatures[season] = defaultTemperatures[season]
	}
	for season, t := range cfg.DataGeneration.Temperature {
		d.temperatures[strings.ToLower(season)] = t
	}
	return d, nil
}

// IsOpen reports whether the café trades during the slot.
func (d *DemandEngine) IsOpen(slot models.HourSlot) bool {
	return !d.cfg.IsClosed(slot.Weekday) && d.cfg.IsOpenHour(slot.Hour)
}

// ExpectedCustomers is the mean arrival count for the slot: the base rate
// scaled by weekday, hour, weather, month and special-event multipliers.
func (d *DemandEngine) ExpectedCustomers(slot models.HourSlot) float64 {
	if !d.IsOpen(slot) {
		return 0
	}
	return d.cfg.DataGeneration.BaseCustomersPerHour *
		d.cfg.DayMultiplier(slot.Weekday) *
		d.cfg.HourMultiplier(slot.Hour) *
		d.cfg.WeatherMultiplier(slot.Weather) *
		d.cfg.MonthMultiplier(slot.Date.Month()) *
		d.cfg.EventMultiplier(slot.Date)
}

// SampleCustomerCount draws the realized number of arrivals for the slot.
func (d *DemandEngine) SampleCustomerCount(rng *rand.Rand, slot models.HourSlot) int {
	expected := d.ExpectedCustomers(slot)
	if expected <= 0 {
		return 0
	}
	if d.normal {
		return sampleRoundedNormal(rng, expected, expected*d.cfg.DataGeneration.Demand.StddevRatio)
	}
	return samplePoisson(rng, expected)
}

// WeatherFor samples the weather and temperature of one date. The result is
// shared by every hour of that date.
func (d *DemandEngine) WeatherFor(rng *rand.Rand, date time.Time) (string, float64) {
	season := models.SeasonOf(date.Month())
	dist, ok := d.weather[season]
	if !ok {
		panic(fmt.Sprintf("simulator: no weather table for season %q", season))
	}
	weather := dist.Sample(rng)
	temperature := roundTo(sampleNormal(rng, d.temperatures[season], temperatureStddev), 1)
	return weather, temperature
}
