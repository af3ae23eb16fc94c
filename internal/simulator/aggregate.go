package simulator

import (
	"time"

	"github.com/chrisdamba/cafedatasim/internal/models"
)

// Summarize computes the ground-truth summary of one date from clean orders.
// Orders and items from other dates are ignored.
func Summarize(orders []models.Order, items []models.OrderItem, date time.Time) models.DailySummary {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	summary := models.DailySummary{
		Date:      day.Format("2006-01-02"),
		DayOfWeek: day.Weekday().String(),
		IsWeekend: models.IsWeekend(day),
	}

	ids := make(map[int64]bool)
	customers := make(map[int64]bool)
	weatherCounts := make(map[string]int)
	var tempSum float64
	var tempCount int

	for _, o := range orders {
		y, m, d := o.OrderDatetime.Date()
		if y != day.Year() || m != day.Month() || d != day.Day() {
			continue
		}
		ids[o.ID] = true
		customers[o.CustomerID] = true
		summary.TotalOrders++
		summary.TotalSales += o.TotalAmount
		if o.WeatherCondition != nil {
			weatherCounts[*o.WeatherCondition]++
		}
		if o.Temperature != nil {
			tempSum += *o.Temperature
			tempCount++
		}
	}
	for _, it := range items {
		if ids[it.OrderID] {
			summary.TotalItemsSold += it.Quantity
		}
	}

	summary.UniqueCustomers = len(customers)
	summary.TotalSales = roundMoney(summary.TotalSales)
	summary.WeatherCondition = mostFrequent(weatherCounts)
	if tempCount > 0 {
		summary.AvgTemperature = roundTo(tempSum/float64(tempCount), 1)
	}
	if summary.TotalOrders > 0 {
		summary.AvgOrderValue = roundMoney(summary.TotalSales / float64(summary.TotalOrders))
		summary.AvgItemsPerOrder = roundMoney(float64(summary.TotalItemsSold) / float64(summary.TotalOrders))
	}
	return summary
}

// mostFrequent returns the key with the highest count; ties go to the
// lexically smallest key.
func mostFrequent(counts map[string]int) string {
	best, bestCount := "", 0
	for k, c := range counts {
		if c > bestCount || (c == bestCount && k < best) {
			best, bestCount = k, c
		}
	}
	return best
}
