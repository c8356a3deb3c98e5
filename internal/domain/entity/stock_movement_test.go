package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignedQuantity(t *testing.T) {
	assert.EqualValues(t, 10, SignedQuantity(MovementTypeReceipt, 10))
	assert.EqualValues(t, -10, SignedQuantity(MovementTypeSale, 10))
	assert.EqualValues(t, -10, SignedQuantity(MovementTypeRemoval, 10))

	m := StockMovement{Type: MovementTypeSale, Quantity: 4}
	assert.EqualValues(t, -4, m.SignedQuantity())
}

func TestValidMovementType(t *testing.T) {
	assert.True(t, ValidMovementType(MovementTypeReceipt))
	assert.True(t, ValidMovementType(MovementTypeSale))
	assert.True(t, ValidMovementType(MovementTypeRemoval))
	assert.False(t, ValidMovementType("transfer"))
	assert.False(t, ValidMovementType(""))
}
