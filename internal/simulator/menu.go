package simulator

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/chrisdamba/cafedatasim/internal/models"
)

// Selection is one line of a customer's order before prices are applied.
type Selection struct {
	Item     models.MenuItem
	Quantity int
}

type menuKey struct {
	gender, ageGroup, season string
	hour                     int
	excludeCategory          int
}

// MenuSelector picks what a customer buys. Weighted tables depend only on
// demographic, hour and season, so each one is built once and cached.
type MenuSelector struct {
	cfg        *models.Config
	categories []models.Category
	items      []models.MenuItem
	byHour     [24][]int
	quantity   *Distribution[int]
	impulse    float64
	cache      map[menuKey]*Distribution[int]
}

func NewMenuSelector(cfg *models.Config) (*MenuSelector, error) {
	m := &MenuSelector{
		cfg:     cfg,
		impulse: cfg.Menu.ImpulseProbability,
		cache:   make(map[menuKey]*Distribution[int]),
	}

	for _, c := range cfg.Menu.Categories {
		m.categories = append(m.categories, models.Category{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	sort.Slice(m.categories, func(i, j int) bool { return m.categories[i].ID < m.categories[j].ID })

	for _, ic := range cfg.Menu.Items {
		category, ok := cfg.Category(ic.CategoryID)
		if !ok {
			return nil, &models.ConfigError{Field: fmt.Sprintf("menu.items.%d.category_id", ic.ID), Reason: "unknown category"}
		}
		item := models.MenuItem{
			ID:                 ic.ID,
			CategoryID:         ic.CategoryID,
			CategoryName:       category.Name,
			Name:               ic.Name,
			Price:              ic.Price,
			Cost:               ic.Cost,
			AvailableHours:     append([]int(nil), ic.AvailableHours...),
			PopularityWeight:   ic.PopularityWeight,
			IsSeasonal:         ic.IsSeasonal,
			SeasonalPreference: strings.ToLower(ic.SeasonalPreference),
			SeasonalMultiplier: ic.SeasonalMultiplier,
		}
		if item.Price > 0 {
			item.ProfitMargin = roundTo((item.Price-item.Cost)/item.Price, 4)
		}
		m.items = append(m.items, item)
	}
	sort.SliceStable(m.items, func(i, j int) bool { return m.items[i].ID < m.items[j].ID })

	for idx, item := range m.items {
		for _, h := range item.AvailableHours {
			if h >= 0 && h < 24 {
				m.byHour[h] = append(m.byHour[h], idx)
			}
		}
	}

	if len(cfg.Menu.QuantityDistribution) > 0 {
		q, err := NewIntDistribution(cfg.Menu.QuantityDistribution)
		if err != nil {
			return nil, &models.ConfigError{Field: "menu.quantity_distribution", Reason: err.Error()}
		}
		m.quantity = q
	}
	return m, nil
}

// Categories returns the category master records ordered by ID.
func (m *MenuSelector) Categories() []models.Category {
	return append([]models.Category(nil), m.categories...)
}

// Items returns the menu catalog ordered by ID.
func (m *MenuSelector) Items() []models.MenuItem {
	return append([]models.MenuItem(nil), m.items...)
}

// Candidates lists the items on sale at hour.
func (m *MenuSelector) Candidates(hour int) []models.MenuItem {
	if hour < 0 || hour > 23 {
		return nil
	}
	out := make([]models.MenuItem, 0, len(m.byHour[hour]))
	for _, idx := range m.byHour[hour] {
		out = append(out, m.items[idx])
	}
	return out
}

// Weight is the selection weight of item for a customer in a slot.
func (m *MenuSelector) Weight(item models.MenuItem, customer *models.Customer, slot models.HourSlot) float64 {
	return item.PopularityWeight *
		m.cfg.Preference(customer.Gender, customer.AgeGroup, item.CategoryName) *
		item.SeasonalFactor(slot.Season)
}

// SelectItems returns the primary item and, with impulse probability, one
// extra item from another category. It returns models.ErrSamplingGap when
// nothing is on sale during the slot.
func (m *MenuSelector) SelectItems(rng *rand.Rand, customer *models.Customer, slot models.HourSlot) ([]Selection, error) {
	if slot.Hour < 0 || slot.Hour > 23 || len(m.byHour[slot.Hour]) == 0 {
		return nil, fmt.Errorf("%w: %s %02d:00", models.ErrSamplingGap, slot.Date.Format("2006-01-02"), slot.Hour)
	}

	key := menuKey{
		gender:          customer.Gender,
		ageGroup:        strings.ToLower(customer.AgeGroup),
		season:          slot.Season,
		hour:            slot.Hour,
		excludeCategory: -1,
	}
	primaryDist, err := m.table(key, customer, slot)
	if err != nil {
		return nil, err
	}
	primary := m.items[primaryDist.Sample(rng)]
	selections := []Selection{{Item: primary, Quantity: m.sampleQuantity(rng)}}

	if m.impulse > 0 && rng.Float64() < m.impulse {
		if extra, ok := m.impulseItem(rng, key, primary, customer, slot); ok {
			selections = append(selections, Selection{Item: extra, Quantity: m.sampleQuantity(rng)})
		}
	}
	return selections, nil
}

func (m *MenuSelector) impulseItem(rng *rand.Rand, key menuKey, primary models.MenuItem, customer *models.Customer, slot models.HourSlot) (models.MenuItem, bool) {
	key.excludeCategory = primary.CategoryID
	dist, err := m.table(key, customer, slot)
	if err == nil {
		return m.items[dist.Sample(rng)], true
	}

	// nothing from another category is on sale, settle for any other item
	var others []models.MenuItem
	for _, idx := range m.byHour[slot.Hour] {
		if m.items[idx].ID != primary.ID {
			others = append(others, m.items[idx])
		}
	}
	if len(others) == 0 {
		return models.MenuItem{}, false
	}
	return others[rng.Intn(len(others))], true
}

// table returns the cached distribution over item indices for key.
func (m *MenuSelector) table(key menuKey, customer *models.Customer, slot models.HourSlot) (*Distribution[int], error) {
	if d, ok := m.cache[key]; ok {
		return d, nil
	}

	var indices []int
	var weights []float64
	for _, idx := range m.byHour[key.hour] {
		item := m.items[idx]
		if item.CategoryID == key.excludeCategory {
			continue
		}
		w := m.Weight(item, customer, slot)
		if w <= 0 {
			return nil, &models.ConfigError{
				Field:  fmt.Sprintf("menu.items.%d", item.ID),
				Reason: fmt.Sprintf("non-positive selection weight %v", w),
			}
		}
		indices = append(indices, idx)
		weights = append(weights, w)
	}
	if len(indices) == 0 {
		return nil, models.ErrSamplingGap
	}

	d, err := NewDistribution(indices, weights)
	if err != nil {
		return nil, err
	}
	m.cache[key] = d
	return d, nil
}

func (m *MenuSelector) sampleQuantity(rng *rand.Rand) int {
	if m.quantity == nil {
		return 1
	}
	return m.quantity.Sample(rng)
}
