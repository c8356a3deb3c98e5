package entity

import "time"

// Store is a physical location holding inventory. Always referenced by an
// explicit id, even when only one store exists, so scaling to many stores is
// just more rows.
type Store struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
}
