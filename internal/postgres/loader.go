package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storewise/shop-analytics/internal/store"
)

type Loader struct{ DB *pgxpool.Pool }

// LoadSnapshot reads the six tables in id order and validates references
// before handing the snapshot out. A dirty source database is rejected here
// rather than producing quietly wrong analytics.
func (l *Loader) LoadSnapshot(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot

	rows, err := l.DB.Query(ctx, `SELECT id, name, email, city, created_at FROM customers ORDER BY id`)
	if err != nil {
		return snap, fmt.Errorf("load customers: %w", err)
	}
	for rows.Next() {
		var c store.Customer
		var email, city *string
		if err := rows.Scan(&c.ID, &c.Name, &email, &city, &c.CreatedAt); err != nil {
			rows.Close()
			return snap, fmt.Errorf("scan customer: %w", err)
		}
		if email != nil {
			c.Email = *email
		}
		if city != nil {
			c.City = *city
		}
		snap.Customers = append(snap.Customers, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("load customers: %w", err)
	}

	rows, err = l.DB.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return snap, fmt.Errorf("load categories: %w", err)
	}
	for rows.Next() {
		var c store.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			rows.Close()
			return snap, fmt.Errorf("scan category: %w", err)
		}
		snap.Categories = append(snap.Categories, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("load categories: %w", err)
	}

	rows, err = l.DB.Query(ctx, `SELECT id, category_id, name, price::text, stock, attrs FROM products ORDER BY id`)
	if err != nil {
		return snap, fmt.Errorf("load products: %w", err)
	}
	for rows.Next() {
		var p store.Product
		var price string
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &price, &p.Stock, &p.Attrs); err != nil {
			rows.Close()
			return snap, fmt.Errorf("scan product: %w", err)
		}
		if err := scanMoney(price, &p.Price); err != nil {
			rows.Close()
			return snap, fmt.Errorf("product %d price: %w", p.ID, err)
		}
		snap.Products = append(snap.Products, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("load products: %w", err)
	}

	rows, err = l.DB.Query(ctx, `SELECT id, customer_id, order_date, status FROM orders ORDER BY id`)
	if err != nil {
		return snap, fmt.Errorf("load orders: %w", err)
	}
	for rows.Next() {
		var o store.Order
		var status string
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &status); err != nil {
			rows.Close()
			return snap, fmt.Errorf("scan order: %w", err)
		}
		o.Status = store.Status(status)
		snap.Orders = append(snap.Orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("load orders: %w", err)
	}

	rows, err = l.DB.Query(ctx, `SELECT id, order_id, product_id, qty, unit_price::text FROM order_items ORDER BY id`)
	if err != nil {
		return snap, fmt.Errorf("load order_items: %w", err)
	}
	for rows.Next() {
		var it store.OrderItem
		var price string
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Qty, &price); err != nil {
			rows.Close()
			return snap, fmt.Errorf("scan order_item: %w", err)
		}
		if err := scanMoney(price, &it.UnitPrice); err != nil {
			rows.Close()
			return snap, fmt.Errorf("order_item %d unit_price: %w", it.ID, err)
		}
		snap.OrderItems = append(snap.OrderItems, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("load order_items: %w", err)
	}

	rows, err = l.DB.Query(ctx, `SELECT id, order_id, paid_at, method, amount::text FROM payments ORDER BY id`)
	if err != nil {
		return snap, fmt.Errorf("load payments: %w", err)
	}
	for rows.Next() {
		var p store.Payment
		var method, amount string
		if err := rows.Scan(&p.ID, &p.OrderID, &p.PaidAt, &method, &amount); err != nil {
			rows.Close()
			return snap, fmt.Errorf("scan payment: %w", err)
		}
		p.Method = store.Method(method)
		if err := scanMoney(amount, &p.Amount); err != nil {
			rows.Close()
			return snap, fmt.Errorf("payment %d amount: %w", p.ID, err)
		}
		snap.Payments = append(snap.Payments, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("load payments: %w", err)
	}

	if err := snap.Validate(); err != nil {
		return snap, fmt.Errorf("validate snapshot: %w", err)
	}
	return snap, nil
}
