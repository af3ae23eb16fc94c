package models

// NoiseReport counts the rows touched by each corruption pass.
type NoiseReport struct {
	Missing    int `json:"missing"`
	Outliers   int `json:"outliers"`
	Duplicates int `json:"duplicates"`
}

// Dataset is the finished in-memory output of one generation run.
type Dataset struct {
	Categories     []Category
	MenuItems      []MenuItem
	Customers      []Customer
	Orders         []Order
	OrderItems     []OrderItem
	DailySummaries []DailySummary
	Noise          NoiseReport
}

// Counts returns the number of rows per table name.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		TableCategories:   len(d.Categories),
		TableMenuItems:    len(d.MenuItems),
		TableCustomers:    len(d.Customers),
		TableOrders:       len(d.Orders),
		TableOrderItems:   len(d.OrderItems),
		TableDailySummary: len(d.DailySummaries),
	}
}
