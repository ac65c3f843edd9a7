package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"github.com/storewise/shop-analytics/internal/postgres"
	"github.com/storewise/shop-analytics/internal/store"
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id         BIGINT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT UNIQUE,
		city       TEXT,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id   BIGINT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGINT PRIMARY KEY,
		category_id BIGINT NOT NULL REFERENCES categories(id),
		name        TEXT NOT NULL,
		price       NUMERIC(10,2) NOT NULL,
		stock       INT NOT NULL CHECK (stock >= 0),
		attrs       JSONB
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id          BIGINT PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES customers(id),
		order_date  TIMESTAMPTZ NOT NULL,
		status      TEXT NOT NULL DEFAULT 'NEW'
			CHECK (status IN ('NEW','PAID','CANCELLED'))
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id         BIGINT PRIMARY KEY,
		order_id   BIGINT NOT NULL REFERENCES orders(id),
		product_id BIGINT NOT NULL REFERENCES products(id),
		qty        INT NOT NULL CHECK (qty > 0),
		unit_price NUMERIC(10,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id       BIGINT PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id),
		paid_at  TIMESTAMPTZ NOT NULL,
		method   TEXT NOT NULL CHECK (method IN ('CARD','ACH','CASH')),
		amount   NUMERIC(10,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_paid_at ON payments(paid_at)`,
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	_ = godotenv.Load()

	dsn := flag.String("dsn", os.Getenv("POSTGRES_DSN"), "Postgres DSN")
	reset := flag.Bool("reset", false, "drop existing tables first")
	flag.Parse()

	if *dsn == "" {
		log.Fatalf("Usage: seed --dsn postgres://... [--reset]")
	}

	ctx := context.Background()
	pool, err := postgres.Connect(ctx, *dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if *reset {
		_, err := pool.Exec(ctx, `DROP TABLE IF EXISTS payments, order_items, orders, products, categories, customers`)
		if err != nil {
			log.Fatalf("drop: %v", err)
		}
	}
	for _, stmt := range ddl {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalf("ddl: %v", err)
		}
	}

	snap := store.DemoSnapshot()
	total := len(snap.Customers) + len(snap.Categories) + len(snap.Products) +
		len(snap.Orders) + len(snap.OrderItems) + len(snap.Payments)
	bar := progressbar.Default(int64(total))

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range snap.Customers {
		var email, city *string
		if c.Email != "" {
			email = &c.Email
		}
		if c.City != "" {
			city = &c.City
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO customers(id, name, email, city, created_at)
			VALUES ($1,$2,$3,$4,$5) ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Name, email, city, c.CreatedAt); err != nil {
			log.Fatalf("customer %d: %v", c.ID, err)
		}
		_ = bar.Add(1)
	}
	for _, c := range snap.Categories {
		if _, err := tx.Exec(ctx, `
			INSERT INTO categories(id, name) VALUES ($1,$2)
			ON CONFLICT (id) DO NOTHING`, c.ID, c.Name); err != nil {
			log.Fatalf("category %d: %v", c.ID, err)
		}
		_ = bar.Add(1)
	}
	for _, p := range snap.Products {
		var attrs []byte
		if len(p.Attrs) > 0 {
			attrs, _ = json.Marshal(p.Attrs)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO products(id, category_id, name, price, stock, attrs)
			VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT (id) DO NOTHING`,
			p.ID, p.CategoryID, p.Name, p.Price.StringFixed(2), p.Stock, attrs); err != nil {
			log.Fatalf("product %d: %v", p.ID, err)
		}
		_ = bar.Add(1)
	}
	for _, o := range snap.Orders {
		if _, err := tx.Exec(ctx, `
			INSERT INTO orders(id, customer_id, order_date, status)
			VALUES ($1,$2,$3,$4) ON CONFLICT (id) DO NOTHING`,
			o.ID, o.CustomerID, o.OrderDate, string(o.Status)); err != nil {
			log.Fatalf("order %d: %v", o.ID, err)
		}
		_ = bar.Add(1)
	}
	for _, it := range snap.OrderItems {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(id, order_id, product_id, qty, unit_price)
			VALUES ($1,$2,$3,$4,$5) ON CONFLICT (id) DO NOTHING`,
			it.ID, it.OrderID, it.ProductID, it.Qty, it.UnitPrice.StringFixed(2)); err != nil {
			log.Fatalf("order_item %d: %v", it.ID, err)
		}
		_ = bar.Add(1)
	}
	for _, p := range snap.Payments {
		if _, err := tx.Exec(ctx, `
			INSERT INTO payments(id, order_id, paid_at, method, amount)
			VALUES ($1,$2,$3,$4,$5) ON CONFLICT (id) DO NOTHING`,
			p.ID, p.OrderID, p.PaidAt, string(p.Method), p.Amount.StringFixed(2)); err != nil {
			log.Fatalf("payment %d: %v", p.ID, err)
		}
		_ = bar.Add(1)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("commit: %v", err)
	}
	log.Printf("seeded %d rows", total)
}
