package entity

import "time"

// StockLevel is the materialized current quantity for a (product, store)
// pair. It is a cache over the movement ledger: its quantity must always
// equal the signed sum of committed movements for the pair, and it can be
// rebuilt from the ledger at any time.
//
// Version increments exactly once per committed movement against the pair
// and is the optimistic-lock token for updates.
type StockLevel struct {
	ProductID string
	StoreID   string
	Quantity  int64
	Version   int64
	UpdatedAt time.Time
}
