package store

import (
	"time"

	"github.com/shopspring/decimal"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DemoSnapshot is the reference dataset: four customers, six products, three
// orders, two payments eleven days apart. cmd/seed writes the same rows to
// the database; the report tests pin their expected numbers against it.
func DemoSnapshot() Snapshot {
	return Snapshot{
		Customers: []Customer{
			{ID: 1, Name: "Alice", Email: "alice@example.com", City: "Austin", CreatedAt: day(2025, 9, 20)},
			{ID: 2, Name: "Bob", City: "Boston", CreatedAt: day(2025, 9, 22)},
			{ID: 3, Name: "Caro", Email: "caro@example.com", CreatedAt: day(2025, 9, 25)},
			{ID: 4, Name: "Dani", Email: "dani@example.com", City: "Denver", CreatedAt: day(2025, 9, 28)},
		},
		Categories: []Category{
			{ID: 1, Name: "Electronics"},
			{ID: 2, Name: "Accessories"},
		},
		Products: []Product{
			{ID: 1, CategoryID: 1, Name: "Phone X2", Price: money("699.00"), Stock: 10,
				Attrs: map[string]string{"brand": "Nexon", "color": "black", "ram": "8GB"}},
			{ID: 2, CategoryID: 1, Name: "Laptop Pro 14", Price: money("1299.00"), Stock: 5,
				Attrs: map[string]string{"brand": "Nexon", "ram": "16GB"}},
			{ID: 3, CategoryID: 2, Name: "Phone Case", Price: money("39.00"), Stock: 50,
				Attrs: map[string]string{"color": "clear"}},
			{ID: 4, CategoryID: 1, Name: "Headphones ANC", Price: money("199.00"), Stock: 20},
			{ID: 5, CategoryID: 1, Name: "Monitor 27", Price: money("249.50"), Stock: 7},
			{ID: 6, CategoryID: 2, Name: "Keyboard TKL", Price: money("89.90"), Stock: 30},
		},
		Orders: []Order{
			{ID: 1, CustomerID: 1, OrderDate: day(2025, 10, 1), Status: StatusPaid},
			{ID: 2, CustomerID: 1, OrderDate: day(2025, 10, 11), Status: StatusPaid},
			{ID: 3, CustomerID: 3, OrderDate: day(2025, 10, 5), Status: StatusNew},
		},
		OrderItems: []OrderItem{
			{ID: 1, OrderID: 1, ProductID: 1, Qty: 1, UnitPrice: money("699.00")},
			{ID: 2, OrderID: 1, ProductID: 3, Qty: 1, UnitPrice: money("39.00")},
			{ID: 3, OrderID: 2, ProductID: 2, Qty: 1, UnitPrice: money("1299.00")},
			{ID: 4, OrderID: 3, ProductID: 4, Qty: 2, UnitPrice: money("199.00")},
		},
		Payments: []Payment{
			{ID: 1, OrderID: 1, PaidAt: time.Date(2025, 10, 1, 10, 30, 0, 0, time.UTC), Method: MethodCard, Amount: money("738.00")},
			{ID: 2, OrderID: 2, PaidAt: time.Date(2025, 10, 12, 9, 15, 0, 0, time.UTC), Method: MethodACH, Amount: money("1299.00")},
		},
	}
}
