package repository

import "time"

// Product represents a products row.
type Product struct {
	ID          string
	VendorID    string
	Title       string
	Price       float64
	Image       string
	Discount    float64
	Category    string
	Brand       string
	Inventory   int64
	Keywords    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
