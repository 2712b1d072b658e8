package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// POItemRequest línea de una orden de compra nueva.
type POItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePORequest body para POST /api/purchase-orders.
type CreatePORequest struct {
	SupplierID   string          `json:"supplier_id"`
	Items        []POItemRequest `json:"items"`
	ExpectedDate *time.Time      `json:"expected_date,omitempty"`
}

// ReceiveItemRequest recepción parcial contra un ítem de la orden.
type ReceiveItemRequest struct {
	ItemID           string `json:"item_id"`
	QuantityReceived int64  `json:"quantity_received"`
}

// ReceivePORequest body para POST /api/purchase-orders/:id/receive.
type ReceivePORequest struct {
	Items []ReceiveItemRequest `json:"items"`
}

// POItemResponse línea de orden con el acumulado recibido.
type POItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	QuantityOrdered  int64           `json:"quantity_ordered"`
	QuantityReceived int64           `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
}

// POResponse orden de compra.
type POResponse struct {
	ID           string           `json:"id"`
	SupplierID   string           `json:"supplier_id"`
	Status       string           `json:"status"`
	ExpectedDate *time.Time       `json:"expected_date,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	Items        []POItemResponse `json:"items"`
}
