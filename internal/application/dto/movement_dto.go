package dto

import "time"

// SubmitMovementRequest payload for POST /api/movements.
// IdempotencyKey is optional; when supplied, a retried submission with the
// same key for the same (product, store) pair is rejected instead of
// double-applied.
type SubmitMovementRequest struct {
	ProductID      string `json:"product_id"`
	StoreID        string `json:"store_id"`
	Type           string `json:"type"` // receipt, sale, removal
	Quantity       int64  `json:"quantity"`
	Notes          string `json:"notes"`
	IdempotencyKey string `json:"idempotency_key"`
}

// SubmitMovementResponse outcome of a committed movement.
type SubmitMovementResponse struct {
	MovementID        int64     `json:"movement_id"`
	ResultingQuantity int64     `json:"resulting_quantity"`
	Version           int64     `json:"version"`
	CommittedAt       time.Time `json:"committed_at"`
}

// MovementResponse one ledger entry.
type MovementResponse struct {
	ID          int64     `json:"id"`
	ProductID   string    `json:"product_id"`
	StoreID     string    `json:"store_id"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Notes       string    `json:"notes"`
	CommittedAt time.Time `json:"committed_at"`
}

// MovementListResponse paged ledger listing in commit order.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LevelResponse current stock level for a (product, store) pair.
type LevelResponse struct {
	ProductID string    `json:"product_id"`
	StoreID   string    `json:"store_id"`
	Quantity  int64     `json:"quantity"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LevelListResponse levels of every product held at a store.
type LevelListResponse struct {
	Items []LevelResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
