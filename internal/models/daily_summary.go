package models

// DailySummary is a pure function of the clean (pre-noise) orders of one date.
type DailySummary struct {
	Date             string  `json:"date"`
	DayOfWeek        string  `json:"day_of_week"`
	IsWeekend        bool    `json:"is_weekend"`
	WeatherCondition string  `json:"weather_condition"`
	AvgTemperature   float64 `json:"avg_temperature"`
	TotalOrders      int     `json:"total_orders"`
	UniqueCustomers  int     `json:"unique_customers"`
	TotalSales       float64 `json:"total_sales"`
	TotalItemsSold   int     `json:"total_items_sold"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	AvgItemsPerOrder float64 `json:"avg_items_per_order"`
}
