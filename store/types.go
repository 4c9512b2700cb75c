// Package store is a small order-management model.
//
// It is documented by dynadoc's own tests and serves as the sample package
// for the command line tool.
package store

import (
	"time"
)

// DefaultCurrency is the ISO 4217 code used when an order names none.
const DefaultCurrency = "EUR"

// MaxItems bounds the number of lines in one order.
const MaxItems = 100

// Catalog lists products by SKU.
var Catalog map[string]*Product

// IDs is a list of record identifiers.
type IDs = []int64

// Entity carries the fields shared by persisted records.
type Entity struct {
	// ID is the primary key.
	ID        int64
	CreatedAt time.Time `doc:"Creation timestamp."`
}

// Product represents an individual item available for sale.
// Prices are kept in cents to avoid floating-point errors.
type Product struct {
	Entity
	SKU string `doc:"Stock keeping unit."`
	// Name is shown to customers.
	Name        string
	Description string `dynadoc:"findex=description"`
	PriceCents  int64  `doc:"Unit price in cents." dynadoc:"suppress"`
	Inventory   int
	costCents   int64
	Supplier    string `dynadoc:"conceal"`
}

// Customer represents the user placing orders.
type Customer struct {
	Entity
	Email    string
	FullName string
	Address  *string // optional postal address
	IsActive bool
}

// Order represents a transaction made by a customer.
type Order struct {
	Entity
	CustomerID int64
	Status     OrderStatus `doc:"Lifecycle state."`
	Items      []OrderItem
	OrderedAt  time.Time
}

// OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
type OrderItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice int64
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Page is one page of a listing.
type Page[T any] struct {
	Items []T
	// Next is the cursor of the following page; nil on the last page.
	Next *string
}
