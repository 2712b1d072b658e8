package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en el punto de venta.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Sale cabecera de una venta. La venta, sus ítems, los movimientos SALE y los
// decrementos de stock se crean como una sola unidad atómica, o ninguno.
type Sale struct {
	ID            string
	TotalAmount   decimal.Decimal
	PaymentMethod string
	ActorID       string
	ClientID      *string // id asignado por el cliente POS offline; nil en ventas directas
	DeviceID      *string
	CreatedAt     time.Time
	Items         []SaleItem
}

// SaleItem línea de venta. Quantity siempre > 0 (el signo vive en el Movement).
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}
