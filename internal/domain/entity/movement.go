package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo cerrado de movimiento de inventario.
type MovementType string

const (
	MovementSALE          MovementType = "SALE"           // salida por venta
	MovementRESTOCK       MovementType = "RESTOCK"        // entrada manual
	MovementRECEIPT       MovementType = "RECEIPT"        // entrada por orden de compra
	MovementADJUSTMENTIn  MovementType = "ADJUSTMENT_IN"  // ajuste positivo (conteo físico)
	MovementADJUSTMENTOut MovementType = "ADJUSTMENT_OUT" // ajuste negativo (conteo físico)
)

// Valid reporta si el tipo pertenece al conjunto cerrado.
func (t MovementType) Valid() bool {
	switch t {
	case MovementSALE, MovementRESTOCK, MovementRECEIPT, MovementADJUSTMENTIn, MovementADJUSTMENTOut:
		return true
	}
	return false
}

// Movement registro inmutable del ledger de stock. Quantity lleva signo:
// negativo para salidas (SALE, ADJUSTMENT_OUT), positivo para entradas.
// Invariante: la suma acumulada de movimientos de un producto debe igualar
// su CurrentStock en todo momento (reconciliación de auditoría).
type Movement struct {
	ID          string
	ProductID   string
	Type        MovementType
	Quantity    int64 // con signo
	ReferenceID string // venta, orden de compra o conteo que lo originó
	SupplierID  *string
	CostPrice   *decimal.Decimal
	ActorID     string
	CreatedAt   time.Time
}
