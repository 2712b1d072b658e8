package dto

import "time"

// AlertResponse alerta expuesta por la API.
type AlertResponse struct {
	ID         string     `json:"id"`
	ProductID  string     `json:"product_id"`
	Type       string     `json:"type"`
	Message    string     `json:"message"`
	Severity   int        `json:"severity"`
	IsResolved bool       `json:"is_resolved"`
	IsRead     bool       `json:"is_read"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// AuditLineResponse resultado de reconciliación ledger-vs-stock para un producto.
type AuditLineResponse struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	CurrentStock int64  `json:"current_stock"`
	LedgerSum    int64  `json:"ledger_sum"`
	Consistent   bool   `json:"consistent"`
}

// AuditResponse reporte completo de auditoría del ledger.
type AuditResponse struct {
	CheckedAt    time.Time           `json:"checked_at"`
	Inconsistent int                 `json:"inconsistent"`
	Lines        []AuditLineResponse `json:"lines"`
}
