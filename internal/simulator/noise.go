package simulator

import (
	"math"
	"math/rand"
	"sort"

	"github.com/chrisdamba/cafedatasim/internal/models"
)

// IDSource hands out fresh keys for duplicated rows.
type IDSource interface {
	NextOrderID() int64
	NextOrderItemID() int64
}

// NoiseInjector corrupts a finished dataset in three independent passes:
// missing values, outliers, then duplicate orders.
type NoiseInjector struct {
	rates models.NoiseConfig
	ids   IDSource
}

func NewNoiseInjector(rates models.NoiseConfig, ids IDSource) *NoiseInjector {
	return &NoiseInjector{rates: rates, ids: ids}
}

// Apply runs every pass over ds in place. Daily summaries are left untouched.
func (n *NoiseInjector) Apply(rng *rand.Rand, ds *models.Dataset) models.NoiseReport {
	var report models.NoiseReport
	report.Missing = n.InjectMissing(rng, ds.Orders)
	report.Outliers = n.InjectOutliers(rng, ds.Orders, ds.OrderItems)
	ds.Orders, ds.OrderItems, report.Duplicates = n.InjectDuplicates(rng, ds.Orders, ds.OrderItems)
	return report
}

// InjectMissing clears exactly one nullable field on round(rate × len) orders.
func (n *NoiseInjector) InjectMissing(rng *rand.Rand, orders []models.Order) int {
	picked := sampleIndices(rng, len(orders), n.rates.MissingDataRate)
	for _, i := range picked {
		field := models.OrderNullableFields[rng.Intn(len(models.OrderNullableFields))]
		orders[i].ClearField(field)
	}
	return len(picked)
}

// InjectOutliers scales one numeric field on round(rate × rows) rows drawn
// from orders and order items together.
func (n *NoiseInjector) InjectOutliers(rng *rand.Rand, orders []models.Order, items []models.OrderItem) int {
	picked := sampleIndices(rng, len(orders)+len(items), n.rates.OutlierRate)
	for _, i := range picked {
		factor := sampleUniform(rng, n.rates.OutlierFactorMin, n.rates.OutlierFactorMax)
		if i < len(orders) {
			orders[i].TotalAmount = roundMoney(orders[i].TotalAmount * factor)
			continue
		}
		item := &items[i-len(orders)]
		if rng.Intn(2) == 0 {
			item.Quantity = int(math.Round(float64(item.Quantity) * factor))
		} else {
			item.Subtotal = roundMoney(item.Subtotal * factor)
		}
	}
	return len(picked)
}

// InjectDuplicates clones round(rate × len) orders with their items under new
// IDs. Each clone directly follows its original in both returned slices.
func (n *NoiseInjector) InjectDuplicates(rng *rand.Rand, orders []models.Order, items []models.OrderItem) ([]models.Order, []models.OrderItem, int) {
	picked := sampleIndices(rng, len(orders), n.rates.DuplicateRate)
	if len(picked) == 0 {
		return orders, items, 0
	}
	duplicate := make(map[int]bool, len(picked))
	for _, i := range picked {
		duplicate[i] = true
	}

	byOrder := make(map[int64][]models.OrderItem, len(orders))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}

	outOrders := make([]models.Order, 0, len(orders)+len(picked))
	outItems := make([]models.OrderItem, 0, len(items))
	for i, o := range orders {
		outOrders = append(outOrders, o)
		outItems = append(outItems, byOrder[o.ID]...)
		if !duplicate[i] {
			continue
		}

		clone := o.Clone()
		clone.ID = n.ids.NextOrderID()
		outOrders = append(outOrders, clone)
		for _, it := range byOrder[o.ID] {
			it.ID = n.ids.NextOrderItemID()
			it.OrderID = clone.ID
			outItems = append(outItems, it)
		}
	}
	return outOrders, outItems, len(picked)
}

// sampleIndices draws round(rate × n) distinct indices in ascending order.
func sampleIndices(rng *rand.Rand, n int, rate float64) []int {
	k := int(math.Round(rate * float64(n)))
	if k <= 0 || n == 0 {
		return nil
	}
	if k > n {
		k = n
	}
	picked := rng.Perm(n)[:k]
	sort.Ints(picked)
	return picked
}
