package store

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID         int64             `json:"id"`
	CategoryID int64             `json:"category_id"`
	Name       string            `json:"name"`
	Price      decimal.Decimal   `json:"price"` // 2 decimal places
	Stock      int               `json:"stock"`
	Attrs      map[string]string `json:"attrs,omitempty"` // brand, color, ram, ...
}

type Order struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	OrderDate  time.Time `json:"order_date"`
	Status     Status    `json:"status"` // see status.go
}

type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"` // price at time of sale, not current product price
}

type Payment struct {
	ID      int64           `json:"id"`
	OrderID int64           `json:"order_id"`
	PaidAt  time.Time       `json:"paid_at"`
	Method  Method          `json:"method"` // see status.go
	Amount  decimal.Decimal `json:"amount"`
}
