package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	InitialStock       int64           `json:"initial_stock"`
	ReorderPoint       int64           `json:"reorder_point"`
	LowStockThreshold  int64           `json:"low_stock_threshold"`
	MaxStock           *int64          `json:"max_stock,omitempty"`
	CostPrice          decimal.Decimal `json:"cost_price"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	SupplierID         *string         `json:"supplier_id,omitempty"`
	AutoReorderEnabled bool            `json:"auto_reorder_enabled"`
}

// UpdateProductRequest body para PUT /api/products/:id. No incluye stock:
// el stock solo se mueve por ventas, recepciones y conteos.
type UpdateProductRequest struct {
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	ReorderPoint       int64           `json:"reorder_point"`
	LowStockThreshold  int64           `json:"low_stock_threshold"`
	MaxStock           *int64          `json:"max_stock,omitempty"`
	CostPrice          decimal.Decimal `json:"cost_price"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	SupplierID         *string         `json:"supplier_id,omitempty"`
	AutoReorderEnabled bool            `json:"auto_reorder_enabled"`
}

// ProductResponse producto expuesto por la API.
type ProductResponse struct {
	ID                 string          `json:"id"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	CurrentStock       int64           `json:"current_stock"`
	ReorderPoint       int64           `json:"reorder_point"`
	LowStockThreshold  int64           `json:"low_stock_threshold"`
	MaxStock           *int64          `json:"max_stock,omitempty"`
	CostPrice          decimal.Decimal `json:"cost_price"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	SupplierID         *string         `json:"supplier_id,omitempty"`
	AutoReorderEnabled bool            `json:"auto_reorder_enabled"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// MovementResponse entrada del ledger expuesta en el historial por producto.
type MovementResponse struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"product_id"`
	Type        string           `json:"type"`
	Quantity    int64            `json:"quantity"`
	ReferenceID string           `json:"reference_id,omitempty"`
	SupplierID  *string          `json:"supplier_id,omitempty"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	ActorID     string           `json:"actor_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
