package models

import (
	"strconv"
	"strings"
	"time"
)

const (
	TableCategories   = "categories"
	TableMenuItems    = "menu_items"
	TableCustomers    = "customers"
	TableOrders       = "orders"
	TableOrderItems   = "order_items"
	TableDailySummary = "daily_summary"
)

type ColumnType int

const (
	ColumnInt ColumnType = iota
	ColumnFloat
	ColumnString
	ColumnBool
	ColumnTime
)

type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
}

// Table is a serialization-neutral view of one record kind. Row values are
// int64, float64, string, bool, time.Time or nil for a missing value.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]interface{}
}

func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Tables returns the dataset in dependency order: masters before facts.
func (d *Dataset) Tables() []Table {
	return []Table{
		d.categoriesTable(),
		d.menuItemsTable(),
		d.customersTable(),
		d.ordersTable(),
		d.orderItemsTable(),
		d.dailySummaryTable(),
	}
}

func (d *Dataset) categoriesTable() Table {
	t := Table{
		Name: TableCategories,
		Columns: []Column{
			{Name: "category_id", Type: ColumnInt},
			{Name: "category_name", Type: ColumnString},
			{Name: "description", Type: ColumnString},
		},
	}
	for _, c := range d.Categories {
		t.Rows = append(t.Rows, []interface{}{int64(c.ID), c.Name, c.Description})
	}
	return t
}

func (d *Dataset) menuItemsTable() Table {
	t := Table{
		Name: TableMenuItems,
		Columns: []Column{
			{Name: "menu_id", Type: ColumnInt},
			{Name: "category_id", Type: ColumnInt},
			{Name: "category_name", Type: ColumnString},
			{Name: "item_name", Type: ColumnString},
			{Name: "price", Type: ColumnFloat},
			{Name: "cost", Type: ColumnFloat},
			{Name: "profit_margin", Type: ColumnFloat},
			{Name: "available_hours", Type: ColumnString},
			{Name: "popularity_weight", Type: ColumnFloat},
			{Name: "is_seasonal", Type: ColumnBool},
			{Name: "seasonal_preference", Type: ColumnString},
			{Name: "seasonal_multiplier", Type: ColumnFloat},
		},
	}
	for _, m := range d.MenuItems {
		t.Rows = append(t.Rows, []interface{}{
			int64(m.ID), int64(m.CategoryID), m.CategoryName, m.Name,
			m.Price, m.Cost, m.ProfitMargin, joinHours(m.AvailableHours),
			m.PopularityWeight, m.IsSeasonal, m.SeasonalPreference, m.SeasonalMultiplier,
		})
	}
	return t
}

func (d *Dataset) customersTable() Table {
	t := Table{
		Name: TableCustomers,
		Columns: []Column{
			{Name: "customer_id", Type: ColumnInt},
			{Name: "name", Type: ColumnString},
			{Name: "email", Type: ColumnString},
			{Name: "member_code", Type: ColumnString},
			{Name: "age", Type: ColumnInt},
			{Name: "age_group", Type: ColumnString},
			{Name: "gender", Type: ColumnString},
			{Name: "visit_frequency", Type: ColumnString},
			{Name: "average_order_value", Type: ColumnFloat},
			{Name: "registration_date", Type: ColumnTime},
			{Name: "visit_count", Type: ColumnInt},
			{Name: "is_active", Type: ColumnBool},
		},
	}
	for _, c := range d.Customers {
		t.Rows = append(t.Rows, []interface{}{
			c.ID, c.Name, c.Email, c.MemberCode, int64(c.Age), c.AgeGroup, c.Gender,
			c.VisitFrequency, c.AverageOrderValue, c.RegistrationDate, int64(c.VisitCount), c.IsActive,
		})
	}
	return t
}

func (d *Dataset) ordersTable() Table {
	t := Table{
		Name: TableOrders,
		Columns: []Column{
			{Name: "order_id", Type: ColumnInt},
			{Name: "customer_id", Type: ColumnInt},
			{Name: "order_datetime", Type: ColumnTime},
			{Name: FieldWeatherCondition, Type: ColumnString, Nullable: true},
			{Name: FieldTemperature, Type: ColumnFloat, Nullable: true},
			{Name: FieldPaymentMethod, Type: ColumnString, Nullable: true},
			{Name: "is_weekend", Type: ColumnBool},
			{Name: "item_count", Type: ColumnInt},
			{Name: "total_amount", Type: ColumnFloat},
		},
	}
	for _, o := range d.Orders {
		t.Rows = append(t.Rows, []interface{}{
			o.ID, o.CustomerID, o.OrderDatetime,
			stringOrNil(o.WeatherCondition), floatOrNil(o.Temperature), stringOrNil(o.PaymentMethod),
			o.IsWeekend, int64(o.ItemCount), o.TotalAmount,
		})
	}
	return t
}

func (d *Dataset) orderItemsTable() Table {
	t := Table{
		Name: TableOrderItems,
		Columns: []Column{
			{Name: "order_item_id", Type: ColumnInt},
			{Name: "order_id", Type: ColumnInt},
			{Name: "menu_id", Type: ColumnInt},
			{Name: "quantity", Type: ColumnInt},
			{Name: "unit_price", Type: ColumnFloat},
			{Name: "subtotal", Type: ColumnFloat},
		},
	}
	for _, oi := range d.OrderItems {
		t.Rows = append(t.Rows, []interface{}{
			oi.ID, oi.OrderID, int64(oi.MenuID), int64(oi.Quantity), oi.UnitPrice, oi.Subtotal,
		})
	}
	return t
}

func (d *Dataset) dailySummaryTable() Table {
	t := Table{
		Name: TableDailySummary,
		Columns: []Column{
			{Name: "date", Type: ColumnString},
			{Name: "day_of_week", Type: ColumnString},
			{Name: "is_weekend", Type: ColumnBool},
			{Name: "weather_condition", Type: ColumnString},
			{Name: "avg_temperature", Type: ColumnFloat},
			{Name: "total_orders", Type: ColumnInt},
			{Name: "unique_customers", Type: ColumnInt},
			{Name: "total_sales", Type: ColumnFloat},
			{Name: "total_items_sold", Type: ColumnInt},
			{Name: "avg_order_value", Type: ColumnFloat},
			{Name: "avg_items_per_order", Type: ColumnFloat},
		},
	}
	for _, s := range d.DailySummaries {
		t.Rows = append(t.Rows, []interface{}{
			s.Date, s.DayOfWeek, s.IsWeekend, s.WeatherCondition, s.AvgTemperature,
			int64(s.TotalOrders), int64(s.UniqueCustomers), s.TotalSales, int64(s.TotalItemsSold),
			s.AvgOrderValue, s.AvgItemsPerOrder,
		})
	}
	return t
}

func joinHours(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, ",")
}

func stringOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func floatOrNil(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

// FormatTimestamp is the textual timestamp layout used by flat-file sinks.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
