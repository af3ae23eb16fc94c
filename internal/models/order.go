package models

import "time"

// Nullable order fields, in the order the noise injector considers them.
const (
	FieldWeatherCondition = "weather_condition"
	FieldTemperature      = "temperature"
	FieldPaymentMethod    = "payment_method"
)

var OrderNullableFields = []string{FieldWeatherCondition, FieldTemperature, FieldPaymentMethod}

// Order is one visit by one customer in one slot. A nil pointer field is a
// missing value.
type Order struct {
	ID               int64     `json:"order_id"`
	CustomerID       int64     `json:"customer_id"`
	OrderDatetime    time.Time `json:"order_datetime"`
	WeatherCondition *string   `json:"weather_condition"`
	Temperature      *float64  `json:"temperature"`
	PaymentMethod    *string   `json:"payment_method"`
	IsWeekend        bool      `json:"is_weekend"`
	ItemCount        int       `json:"item_count"`
	TotalAmount      float64   `json:"total_amount"`
}

// ClearField sets a nullable field to missing. It reports false for fields
// that are not nullable.
func (o *Order) ClearField(field string) bool {
	switch field {
	case FieldWeatherCondition:
		o.WeatherCondition = nil
	case FieldTemperature:
		o.Temperature = nil
	case FieldPaymentMethod:
		o.PaymentMethod = nil
	default:
		return false
	}
	return true
}

// MissingFields counts nullable fields currently set to missing.
func (o *Order) MissingFields() int {
	n := 0
	if o.WeatherCondition == nil {
		n++
	}
	if o.Temperature == nil {
		n++
	}
	if o.PaymentMethod == nil {
		n++
	}
	return n
}

// Clone deep-copies the order so pointer fields are not shared.
func (o Order) Clone() Order {
	c := o
	if o.WeatherCondition != nil {
		v := *o.WeatherCondition
		c.WeatherCondition = &v
	}
	if o.Temperature != nil {
		v := *o.Temperature
		c.Temperature = &v
	}
	if o.PaymentMethod != nil {
		v := *o.PaymentMethod
		c.PaymentMethod = &v
	}
	return c
}

type OrderItem struct {
	ID        int64   `json:"order_item_id"`
	OrderID   int64   `json:"order_id"`
	MenuID    int     `json:"menu_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}
