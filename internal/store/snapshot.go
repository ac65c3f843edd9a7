package store

import (
	"fmt"
	"strconv"
	"sync"
)

// Snapshot is a read-only view of the six entity collections. Loaders and the
// live store produce it; the analytics packages only ever read it.
type Snapshot struct {
	Customers  []Customer
	Categories []Category
	Products   []Product
	Orders     []Order
	OrderItems []OrderItem
	Payments   []Payment

	// Version changes whenever the underlying data changes. Report caches
	// key on it.
	Version string
}

// ReferenceError reports a foreign key that does not resolve. Joins treat a
// missing reference as "no match"; Validate is for callers that require
// referential completeness (the loaders do).
type ReferenceError struct {
	Entity string
	ID     int64
	Ref    string
	RefID  int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %d references missing %s %d", e.Entity, e.ID, e.Ref, e.RefID)
}

// Validate checks every reference and the status/method enums.
func (s *Snapshot) Validate() error {
	customers := make(map[int64]bool, len(s.Customers))
	for _, c := range s.Customers {
		customers[c.ID] = true
	}
	categories := make(map[int64]bool, len(s.Categories))
	for _, c := range s.Categories {
		categories[c.ID] = true
	}
	products := make(map[int64]bool, len(s.Products))
	for _, p := range s.Products {
		if !categories[p.CategoryID] {
			return &ReferenceError{Entity: "product", ID: p.ID, Ref: "category", RefID: p.CategoryID}
		}
		if p.Stock < 0 {
			return fmt.Errorf("product %d: negative stock %d", p.ID, p.Stock)
		}
		products[p.ID] = true
	}
	orders := make(map[int64]bool, len(s.Orders))
	for _, o := range s.Orders {
		if !customers[o.CustomerID] {
			return &ReferenceError{Entity: "order", ID: o.ID, Ref: "customer", RefID: o.CustomerID}
		}
		if !o.Status.Valid() {
			return fmt.Errorf("order %d: invalid status %q", o.ID, o.Status)
		}
		orders[o.ID] = true
	}
	for _, it := range s.OrderItems {
		if !orders[it.OrderID] {
			return &ReferenceError{Entity: "order_item", ID: it.ID, Ref: "order", RefID: it.OrderID}
		}
		if !products[it.ProductID] {
			return &ReferenceError{Entity: "order_item", ID: it.ID, Ref: "product", RefID: it.ProductID}
		}
		if it.Qty <= 0 {
			return fmt.Errorf("order_item %d: non-positive qty %d", it.ID, it.Qty)
		}
	}
	for _, p := range s.Payments {
		if !orders[p.OrderID] {
			return &ReferenceError{Entity: "payment", ID: p.ID, Ref: "order", RefID: p.OrderID}
		}
		if !p.Method.Valid() {
			return fmt.Errorf("payment %d: invalid method %q", p.ID, p.Method)
		}
	}
	return nil
}

// Live holds the current dataset and hands out immutable snapshots.
// Ingestion appends to it; report handlers read from it.
type Live struct {
	mu      sync.RWMutex
	data    Snapshot
	version int64
}

func NewLive(s Snapshot) *Live {
	l := &Live{data: s, version: 1}
	l.data.Version = l.versionString()
	return l
}

func (l *Live) versionString() string {
	return "v" + strconv.FormatInt(l.version, 10)
}

// Snapshot returns a copy; callers may hold it across requests without
// seeing later appends.
func (l *Live) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s := Snapshot{
		Customers:  append([]Customer(nil), l.data.Customers...),
		Categories: append([]Category(nil), l.data.Categories...),
		Products:   append([]Product(nil), l.data.Products...),
		Orders:     append([]Order(nil), l.data.Orders...),
		OrderItems: append([]OrderItem(nil), l.data.OrderItems...),
		Payments:   append([]Payment(nil), l.data.Payments...),
		Version:    l.versionString(),
	}
	return s
}

func (l *Live) Version() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.versionString()
}

// AppendPayment records a payment arriving from the event stream. The order
// must already exist.
func (l *Live) AppendPayment(p Payment) error {
	if !p.Method.Valid() {
		return fmt.Errorf("payment %d: invalid method %q", p.ID, p.Method)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	found := false
	for _, o := range l.data.Orders {
		if o.ID == p.OrderID {
			found = true
			break
		}
	}
	if !found {
		return &ReferenceError{Entity: "payment", ID: p.ID, Ref: "order", RefID: p.OrderID}
	}
	l.data.Payments = append(l.data.Payments, p)
	l.version++
	return nil
}
