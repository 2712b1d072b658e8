package entity

import "time"

// AlertType tipo cerrado de alerta de inventario.
type AlertType string

const (
	AlertLowStock   AlertType = "LOW_STOCK"
	AlertOutOfStock AlertType = "OUT_OF_STOCK"
	AlertOverstock  AlertType = "OVERSTOCK"
	AlertExpiry     AlertType = "EXPIRY"
)

// Severidad derivada del riesgo de quiebre de stock.
const (
	SeverityHigh   = 3 // OUT_OF_STOCK
	SeverityMedium = 2 // LOW_STOCK
	SeverityLow    = 1 // OVERSTOCK / EXPIRY
)

// Alert alerta derivada del estado de stock. Invariante: a lo sumo una alerta
// sin resolver por (ProductID, Type); la creación es un upsert, nunca un insert ciego.
type Alert struct {
	ID         string
	ProductID  string
	Type       AlertType
	Message    string
	Severity   int
	IsResolved bool
	IsRead     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}
