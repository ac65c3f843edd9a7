// Package mysql mirrors internal/postgres for a MySQL/MariaDB source, where
// the reference dataset originally lives.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"github.com/storewise/shop-analytics/internal/store"
)

// Open accepts either a driver-format DSN or a mysql:///mariadb:// URL and
// normalizes it. parseTime is forced on so DATETIME columns scan into
// time.Time directly.
func Open(dsn string) (*sql.DB, error) {
	driverDSN, err := toDriverDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", driverDSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

func toDriverDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "mysql://") && !strings.HasPrefix(dsn, "mariadb://") {
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	user, pass := "", ""
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	name := strings.TrimPrefix(u.Path, "/")
	if user == "" || u.Host == "" || name == "" {
		return "", fmt.Errorf("dsn missing user, host or database")
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC", user, pass, u.Host, name), nil
}

type Loader struct{ DB *sql.DB }

// LoadSnapshot reads the six tables in id order and validates references.
// Same contract as the postgres loader.
func (l *Loader) LoadSnapshot(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot

	err := l.scanAll(ctx, `SELECT id, name, email, city, created_at FROM customers ORDER BY id`,
		func(rows *sql.Rows) error {
			var c store.Customer
			var email, city sql.NullString
			if err := rows.Scan(&c.ID, &c.Name, &email, &city, &c.CreatedAt); err != nil {
				return err
			}
			c.Email, c.City = email.String, city.String
			snap.Customers = append(snap.Customers, c)
			return nil
		})
	if err != nil {
		return snap, fmt.Errorf("load customers: %w", err)
	}

	err = l.scanAll(ctx, `SELECT id, name FROM categories ORDER BY id`,
		func(rows *sql.Rows) error {
			var c store.Category
			if err := rows.Scan(&c.ID, &c.Name); err != nil {
				return err
			}
			snap.Categories = append(snap.Categories, c)
			return nil
		})
	if err != nil {
		return snap, fmt.Errorf("load categories: %w", err)
	}

	err = l.scanAll(ctx, `SELECT id, category_id, name, price, stock, attrs FROM products ORDER BY id`,
		func(rows *sql.Rows) error {
			var p store.Product
			var price []byte
			var attrs sql.NullString
			if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &price, &p.Stock, &attrs); err != nil {
				return err
			}
			d, err := decimal.NewFromString(string(price))
			if err != nil {
				return fmt.Errorf("product %d price: %w", p.ID, err)
			}
			p.Price = d
			if attrs.Valid && attrs.String != "" {
				if err := json.Unmarshal([]byte(attrs.String), &p.Attrs); err != nil {
					return fmt.Errorf("product %d attrs: %w", p.ID, err)
				}
			}
			snap.Products = append(snap.Products, p)
			return nil
		})
	if err != nil {
		return snap, fmt.Errorf("load products: %w", err)
	}

	err = l.scanAll(ctx, `SELECT id, customer_id, order_date, status FROM orders ORDER BY id`,
		func(rows *sql.Rows) error {
			var o store.Order
			var status string
			if err := rows.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &status); err != nil {
				return err
			}
			o.Status = store.Status(status)
			snap.Orders = append(snap.Orders, o)
			return nil
		})
	if err != nil {
		return snap, fmt.Errorf("load orders: %w", err)
	}

	err = l.scanAll(ctx, `SELECT id, order_id, product_id, qty, unit_price FROM order_items ORDER BY id`,
		func(rows *sql.Rows) error {
			var it store.OrderItem
			var price []byte
			if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Qty, &price); err != nil {
				return err
			}
			d, err := decimal.NewFromString(string(price))
			if err != nil {
				return fmt.Errorf("order_item %d unit_price: %w", it.ID, err)
			}
			it.UnitPrice = d
			snap.OrderItems = append(snap.OrderItems, it)
			return nil
		})
	if err != nil {
		return snap, fmt.Errorf("load order_items: %w", err)
	}

	err = l.scanAll(ctx, `SELECT id, order_id, paid_at, method, amount FROM payments ORDER BY id`,
		func(rows *sql.Rows) error {
			var p store.Payment
			var method string
			var amount []byte
			if err := rows.Scan(&p.ID, &p.OrderID, &p.PaidAt, &method, &amount); err != nil {
				return err
			}
			p.Method = store.Method(method)
			d, err := decimal.NewFromString(string(amount))
			if err != nil {
				return fmt.Errorf("payment %d amount: %w", p.ID, err)
			}
			p.Amount = d
			snap.Payments = append(snap.Payments, p)
			return nil
		})
	if err != nil {
		return snap, fmt.Errorf("load payments: %w", err)
	}

	if err := snap.Validate(); err != nil {
		return snap, fmt.Errorf("validate snapshot: %w", err)
	}
	return snap, nil
}

func (l *Loader) scanAll(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := l.DB.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
