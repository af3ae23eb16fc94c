package simulator

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/chrisdamba/cafedatasim/internal/factories"
	"github.com/chrisdamba/cafedatasim/internal/models"
)

// relative chance that a returning customer of each frequency walks in
var visitFrequencyWeights = map[string]float64{
	models.VisitRegular:    3,
	models.VisitOccasional: 1,
	models.VisitRare:       0.3,
}

var defaultVisitFrequency = map[string]float64{
	models.VisitRegular:    0.3,
	models.VisitOccasional: 0.5,
	models.VisitRare:       0.2,
}

type compiledPattern struct {
	name     string
	dayTypes map[string]bool
	hours    map[int]bool
	width    int
	gender   *Distribution[string]
	age      *Distribution[string]
}

func (p compiledPattern) matches(slot models.HourSlot) bool {
	if len(p.dayTypes) > 0 && !p.dayTypes[slot.DayType()] {
		return false
	}
	return len(p.hours) == 0 || p.hours[slot.Hour]
}

// CustomerProfiler decides who walks in during a slot.
type CustomerProfiler struct {
	cfg        *models.Config
	factory    *factories.CustomerFactory
	patterns   []compiledPattern
	baseGender *Distribution[string]
	baseAge    *Distribution[string]
	frequency  *Distribution[string]
	groups     map[string]models.AgeGroup

	// returning customers keyed by visit frequency, only filled when loyalty is on
	pool map[string][]*models.Customer
}

func NewCustomerProfiler(cfg *models.Config, factory *factories.CustomerFactory) (*CustomerProfiler, error) {
	c := cfg.Customers
	p := &CustomerProfiler{
		cfg:     cfg,
		factory: factory,
		groups:  make(map[string]models.AgeGroup, len(c.AgeGroups)),
		pool:    make(map[string][]*models.Customer),
	}

	var err error
	if p.baseGender, err = NewStringDistribution(lowerKeys(c.GenderDistribution)); err != nil {
		return nil, &models.ConfigError{Field: "customers.gender_distribution", Reason: err.Error()}
	}

	ratios := make(map[string]float64, len(c.AgeGroups))
	for _, ag := range c.AgeGroups {
		key := strings.ToLower(ag.Name)
		p.groups[key] = ag
		ratios[key] = ag.BaseRatio
	}
	if p.baseAge, err = NewStringDistribution(ratios); err != nil {
		return nil, &models.ConfigError{Field: "customers.age_groups.base_ratio", Reason: err.Error()}
	}

	frequency := c.VisitFrequency
	if len(frequency) == 0 {
		frequency = defaultVisitFrequency
	}
	if p.frequency, err = NewStringDistribution(lowerKeys(frequency)); err != nil {
		return nil, &models.ConfigError{Field: "customers.visit_frequency", Reason: err.Error()}
	}

	for _, bp := range c.BehavioralPatterns {
		field := "customers.behavioral_patterns." + bp.Name
		cp := compiledPattern{
			name:     bp.Name,
			dayTypes: make(map[string]bool, len(bp.Conditions.DayTypes)),
			hours:    make(map[int]bool, len(bp.Conditions.Hours)),
		}
		for _, dt := range bp.Conditions.DayTypes {
			cp.dayTypes[strings.ToLower(dt)] = true
		}
		for _, h := range bp.Conditions.Hours {
			cp.hours[h] = true
		}
		cp.width = len(cp.hours)
		if cp.width == 0 {
			cp.width = 24
		}
		if cp.gender, err = NewStringDistribution(lowerKeys(bp.Demographics.GenderRatio)); err != nil {
			return nil, &models.ConfigError{Field: field + ".demographics.gender_ratio", Reason: err.Error()}
		}
		if cp.age, err = NewStringDistribution(lowerKeys(bp.Demographics.AgeDistribution)); err != nil {
			return nil, &models.ConfigError{Field: field + ".demographics.age_distribution", Reason: err.Error()}
		}
		p.patterns = append(p.patterns, cp)
	}
	return p, nil
}

func lowerKeys(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] += v
	}
	return out
}

// MatchPattern returns the behavioral pattern that governs the slot. When
// several match, the one with the fewest hours wins and declaration order
// breaks ties.
func (p *CustomerProfiler) MatchPattern(slot models.HourSlot) (string, bool) {
	best := p.matchPattern(slot)
	if best == nil {
		return "", false
	}
	return best.name, true
}

func (p *CustomerProfiler) matchPattern(slot models.HourSlot) *compiledPattern {
	var best *compiledPattern
	for i := range p.patterns {
		cp := &p.patterns[i]
		if !cp.matches(slot) {
			continue
		}
		if best == nil || cp.width < best.width {
			best = cp
		}
	}
	return best
}

// SampleDemographics draws gender then age group for a new customer.
func (p *CustomerProfiler) SampleDemographics(rng *rand.Rand, slot models.HourSlot) (string, models.AgeGroup) {
	genders, ages := p.baseGender, p.baseAge
	if cp := p.matchPattern(slot); cp != nil {
		genders, ages = cp.gender, cp.age
	}
	gender := genders.Sample(rng)
	return gender, p.groups[ages.Sample(rng)]
}

// SampleCustomer returns the customer behind one visit. The second result is
// true when the customer is new and still needs an ID.
func (p *CustomerProfiler) SampleCustomer(rng *rand.Rand, slot models.HourSlot) (*models.Customer, bool) {
	loyalty := p.cfg.Customers.Loyalty
	if loyalty.Enabled && len(p.pool) > 0 && rng.Float64() < loyalty.RepeatProbability {
		return p.pickReturning(rng), false
	}

	gender, group := p.SampleDemographics(rng, slot)
	frequency := p.frequency.Sample(rng)
	return p.factory.CreateCustomer(gender, group, frequency, slot.Date), true
}

// Remember adds a customer to the returning pool when loyalty is enabled.
func (p *CustomerProfiler) Remember(c *models.Customer) {
	if !p.cfg.Customers.Loyalty.Enabled {
		return
	}
	p.pool[c.VisitFrequency] = append(p.pool[c.VisitFrequency], c)
}

func (p *CustomerProfiler) pickReturning(rng *rand.Rand) *models.Customer {
	classes := make([]string, 0, len(p.pool))
	for k := range p.pool {
		classes = append(classes, k)
	}
	sort.Strings(classes)

	weights := make([]float64, len(classes))
	for i, class := range classes {
		w, ok := visitFrequencyWeights[class]
		if !ok {
			w = 1
		}
		weights[i] = w * float64(len(p.pool[class]))
	}
	dist, err := NewDistribution(classes, weights)
	if err != nil {
		// the pool is never empty here and the weights are positive
		panic(err)
	}
	members := p.pool[dist.Sample(rng)]
	return members[rng.Intn(len(members))]
}
