package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStatus is returned when a status name is not recognized.
var ErrUnknownStatus = errors.New("unknown order status")

// ErrEmptyOrder is returned when an order has no items.
var ErrEmptyOrder = errors.New("order has no items")

// Total returns the order total in cents.
func (o *Order) Total() int64 {
	var total int64

	for _, item := range o.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}

	return total
}

// Validate checks that the order can be placed.
//
//dynadoc:raises ErrEmptyOrder when the order has no items.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}

	if len(o.Items) > MaxItems {
		return fmt.Errorf("order has %d items, at most %d allowed", len(o.Items), MaxItems)
	}

	return nil
}

// ParseStatus parses a status name, ignoring case.
//
//dynadoc:raises ErrUnknownStatus when name is not a status.
func ParseStatus(name string) (OrderStatus, error) {
	switch status := OrderStatus(strings.ToUpper(name)); status {
	case StatusPending, StatusPaid, StatusShipped, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, name)
	}
}

// Paginate splits items into pages of size. A size below one yields no pages.
func Paginate[T any](items []T, size int) []Page[T] {
	if size < 1 {
		return nil
	}

	var pages []Page[T]

	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		pages = append(pages, Page[T]{Items: items[start:end]})
	}

	return pages
}

// Visit calls fn for each item until it returns false.
func Visit(items []OrderItem, fn func(OrderItem) bool) {
	for _, item := range items {
		if !fn(item) {
			return
		}
	}
}
