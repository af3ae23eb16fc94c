package models

type Category struct {
	ID          int    `json:"category_id"`
	Name        string `json:"category_name"`
	Description string `json:"description"`
}

// MenuItem is a static catalog entry. OrderItems reference it by ID and never
// mutate it.
type MenuItem struct {
	ID                 int     `json:"menu_id"`
	CategoryID         int     `json:"category_id"`
	CategoryName       string  `json:"category_name"`
	Name               string  `json:"item_name"`
	Price              float64 `json:"price"`
	Cost               float64 `json:"cost"`
	ProfitMargin       float64 `json:"profit_margin"`
	AvailableHours     []int   `json:"available_hours"`
	PopularityWeight   float64 `json:"popularity_weight"`
	IsSeasonal         bool    `json:"is_seasonal"`
	SeasonalPreference string  `json:"seasonal_preference"`
	SeasonalMultiplier float64 `json:"seasonal_multiplier"`
}

func (m MenuItem) AvailableAt(hour int) bool {
	for _, h := range m.AvailableHours {
		if h == hour {
			return true
		}
	}
	return false
}

// SeasonalFactor is the item's seasonal multiplier when season matches its
// preference, 1.0 otherwise.
func (m MenuItem) SeasonalFactor(season string) float64 {
	if m.IsSeasonal && m.SeasonalPreference == season && m.SeasonalMultiplier > 0 {
		return m.SeasonalMultiplier
	}
	return 1.0
}
