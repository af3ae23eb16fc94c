package simulator

import (
	"math/rand"
	"time"

	"github.com/chrisdamba/cafedatasim/internal/models"
)

var paymentMethods = map[string]float64{
	models.PaymentCash:   0.4,
	models.PaymentCard:   0.45,
	models.PaymentEMoney: 0.15,
}

// OrderAssembler turns selections into priced orders and owns every ID
// sequence of a run.
type OrderAssembler struct {
	nextCustomerID  int64
	nextOrderID     int64
	nextOrderItemID int64

	customers []*models.Customer
	payments  *Distribution[string]
}

func NewOrderAssembler(ids models.IDGeneration) *OrderAssembler {
	payments, err := NewStringDistribution(paymentMethods)
	if err != nil {
		panic(err)
	}
	return &OrderAssembler{
		nextCustomerID:  ids.CustomerIDStart,
		nextOrderID:     ids.OrderIDStart,
		nextOrderItemID: ids.OrderItemIDStart,
		payments:        payments,
	}
}

// RegisterCustomer assigns the next customer ID and records the customer.
func (a *OrderAssembler) RegisterCustomer(c *models.Customer) {
	c.ID = a.nextCustomerID
	a.nextCustomerID++
	a.customers = append(a.customers, c)
}

// Customers returns every registered customer in ID order.
func (a *OrderAssembler) Customers() []models.Customer {
	out := make([]models.Customer, len(a.customers))
	for i, c := range a.customers {
		out[i] = *c
	}
	return out
}

func (a *OrderAssembler) NextOrderID() int64 {
	id := a.nextOrderID
	a.nextOrderID++
	return id
}

func (a *OrderAssembler) NextOrderItemID() int64 {
	id := a.nextOrderItemID
	a.nextOrderItemID++
	return id
}

// Assemble prices the selections into an order placed at a random minute of
// the slot.
func (a *OrderAssembler) Assemble(rng *rand.Rand, customer *models.Customer, slot models.HourSlot, selections []Selection) (models.Order, []models.OrderItem) {
	weather := slot.Weather
	temperature := slot.Temperature
	payment := a.payments.Sample(rng)

	order := models.Order{
		ID:               a.NextOrderID(),
		CustomerID:       customer.ID,
		OrderDatetime:    slot.Start().Add(time.Duration(rng.Intn(60)) * time.Minute),
		WeatherCondition: &weather,
		Temperature:      &temperature,
		PaymentMethod:    &payment,
		IsWeekend:        slot.IsWeekend,
	}

	items := make([]models.OrderItem, 0, len(selections))
	total := 0.0
	for _, sel := range selections {
		subtotal := roundMoney(sel.Item.Price * float64(sel.Quantity))
		items = append(items, models.OrderItem{
			ID:        a.NextOrderItemID(),
			OrderID:   order.ID,
			MenuID:    sel.Item.ID,
			Quantity:  sel.Quantity,
			UnitPrice: sel.Item.Price,
			Subtotal:  subtotal,
		})
		total += subtotal
		order.ItemCount += sel.Quantity
	}
	order.TotalAmount = roundMoney(total)

	customer.VisitCount++
	return order, items
}
