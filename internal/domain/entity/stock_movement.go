package entity

import "time"

// Movement types.
const (
	MovementTypeReceipt = "receipt" // stock in
	MovementTypeSale    = "sale"    // stock out
	MovementTypeRemoval = "removal" // manual removal (damaged, lost, etc.)
)

// StockMovement is one immutable entry in the append-only ledger. ID is
// assigned by the ledger at commit time and is strictly increasing, so id
// order and commit order coincide. Quantity is always positive; the sign of
// the level change comes from Type.
type StockMovement struct {
	ID          int64
	ProductID   string
	StoreID     string
	Type        string
	Quantity    int64
	Notes       string
	CommittedAt time.Time // UTC, assigned at commit
}

// ValidMovementType reports whether t is one of the known movement types.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeReceipt, MovementTypeSale, MovementTypeRemoval:
		return true
	}
	return false
}

// SignedQuantity returns the delta a movement applies to the stock level:
// positive for receipts, negative for sales and removals.
func SignedQuantity(movementType string, quantity int64) int64 {
	if movementType == MovementTypeReceipt {
		return quantity
	}
	return -quantity
}

// SignedQuantity returns the level delta of this movement.
func (m *StockMovement) SignedQuantity() int64 {
	return SignedQuantity(m.Type, m.Quantity)
}
