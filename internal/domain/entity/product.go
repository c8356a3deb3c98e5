package entity

import "time"

// Product is a catalog item identified by a unique SKU.
// Identity fields are immutable after creation; stock is never stored here,
// it is derived from movements per store in StockLevel.
type Product struct {
	ID          string
	SKU         string // unique across the catalog
	Name        string
	Description string
	CreatedAt   time.Time
}
