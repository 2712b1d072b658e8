package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// POStatus estado del ciclo de vida de una orden de compra.
type POStatus string

const (
	POStatusDraft             POStatus = "DRAFT"
	POStatusOrdered           POStatus = "ORDERED"
	POStatusPartiallyReceived POStatus = "PARTIALLY_RECEIVED"
	POStatusReceived          POStatus = "RECEIVED"
	POStatusCancelled         POStatus = "CANCELLED"
)

// Terminal reporta si el estado no admite más transiciones.
func (s POStatus) Terminal() bool {
	return s == POStatusReceived || s == POStatusCancelled
}

// rank ordena los estados para garantizar transiciones solo hacia adelante.
func (s POStatus) rank() int {
	switch s {
	case POStatusDraft:
		return 0
	case POStatusOrdered:
		return 1
	case POStatusPartiallyReceived:
		return 2
	case POStatusReceived:
		return 3
	}
	return -1 // CANCELLED queda fuera de la escala: solo se llega por cancelación explícita
}

// PurchaseOrder orden de compra a un proveedor; los ítems se reciben incrementalmente.
type PurchaseOrder struct {
	ID           string
	SupplierID   string
	Status       POStatus
	CreatedByID  string
	ExpectedDate *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []PurchaseOrderItem
}

// PurchaseOrderItem línea de una orden. QuantityReceived acumula entre recepciones
// parciales; invariante: 0 <= QuantityReceived <= QuantityOrdered.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	ProductID        string
	QuantityOrdered  int64
	QuantityReceived int64
	UnitCost         decimal.Decimal
}

// Remaining unidades pendientes por recibir del ítem.
func (i *PurchaseOrderItem) Remaining() int64 {
	return i.QuantityOrdered - i.QuantityReceived
}

// StatusForItems calcula el estado como función pura de lo recibido vs lo ordenado.
// No contempla CANCELLED (es una transición explícita, no derivada).
func StatusForItems(items []PurchaseOrderItem) POStatus {
	var ordered, received int64
	allFull := true
	for i := range items {
		ordered += items[i].QuantityOrdered
		received += items[i].QuantityReceived
		if items[i].QuantityReceived < items[i].QuantityOrdered {
			allFull = false
		}
	}
	switch {
	case ordered > 0 && allFull:
		return POStatusReceived
	case received > 0:
		return POStatusPartiallyReceived
	default:
		return POStatusOrdered
	}
}

// AdvanceStatus aplica el estado derivado respetando la monotonía: nunca regresa
// a un estado anterior. Devuelve el estado resultante.
func (po *PurchaseOrder) AdvanceStatus() POStatus {
	next := StatusForItems(po.Items)
	if next.rank() > po.Status.rank() {
		po.Status = next
	}
	return po.Status
}
