package simulator

import (
	"math/rand"
	"testing"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemblePricesSelections(t *testing.T) {
	a := NewOrderAssembler(models.IDGeneration{CustomerIDStart: 1000, OrderIDStart: 10000, OrderItemIDStart: 100000})
	customer := &models.Customer{}
	a.RegisterCustomer(customer)
	require.Equal(t, int64(1000), customer.ID)

	slot := models.NewHourSlot(date(2024, 6, 8), 9, models.WeatherCloudy, 18.5)
	selections := []Selection{
		{Item: models.MenuItem{ID: 1, Price: 550}, Quantity: 2},
		{Item: models.MenuItem{ID: 8, Price: 480.5}, Quantity: 1},
	}

	order, items := a.Assemble(rand.New(rand.NewSource(3)), customer, slot, selections)

	assert.Equal(t, int64(10000), order.ID)
	assert.Equal(t, int64(1000), order.CustomerID)
	assert.Equal(t, 3, order.ItemCount)
	assert.Equal(t, 1580.5, order.TotalAmount)
	assert.True(t, order.IsWeekend)
	assert.Equal(t, models.WeatherCloudy, *order.WeatherCondition)
	assert.Equal(t, 18.5, *order.Temperature)
	assert.Contains(t, []string{models.PaymentCash, models.PaymentCard, models.PaymentEMoney}, *order.PaymentMethod)
	assert.Equal(t, 9, order.OrderDatetime.Hour())
	assert.Equal(t, 1, customer.VisitCount)

	require.Len(t, items, 2)
	assert.Equal(t, int64(100000), items[0].ID)
	assert.Equal(t, int64(100001), items[1].ID)
	assert.Equal(t, 1100.0, items[0].Subtotal)
	assert.Equal(t, 480.5, items[1].Subtotal)
	for _, it := range items {
		assert.Equal(t, order.ID, it.OrderID)
	}

	next, _ := a.Assemble(rand.New(rand.NewSource(4)), customer, slot, selections[:1])
	assert.Equal(t, int64(10001), next.ID)
	assert.Len(t, a.Customers(), 1)
	assert.Equal(t, 2, a.Customers()[0].VisitCount)
}

func TestPaymentMixFollowsWeights(t *testing.T) {
	a := NewOrderAssembler(models.IDGeneration{})
	rng := rand.New(rand.NewSource(11))
	slot := models.NewHourSlot(date(2024, 6, 5), 12, models.WeatherSunny, 22)
	sel := []Selection{{Item: models.MenuItem{ID: 1, Price: 100}, Quantity: 1}}

	counts := map[string]int{}
	const n = 10000
	for i := 0; i < n; i++ {
		o, _ := a.Assemble(rng, &models.Customer{}, slot, sel)
		counts[*o.PaymentMethod]++
	}
	assert.InDelta(t, 0.40, float64(counts[models.PaymentCash])/n, 0.02)
	assert.InDelta(t, 0.45, float64(counts[models.PaymentCard])/n, 0.02)
	assert.InDelta(t, 0.15, float64(counts[models.PaymentEMoney])/n, 0.02)
}
