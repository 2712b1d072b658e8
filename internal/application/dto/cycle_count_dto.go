package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CycleCountLineRequest línea del conteo físico entrante.
type CycleCountLineRequest struct {
	ProductID       string `json:"product_id"`
	CountedQuantity int64  `json:"counted_quantity"`
}

// CreateCycleCountRequest body para POST /api/inventory/cycle-counts.
type CreateCycleCountRequest struct {
	Items  []CycleCountLineRequest `json:"items"`
	Reason string                  `json:"reason"`
}

// CycleCountItemResponse línea persistida con el delta calculado.
type CycleCountItemResponse struct {
	ProductID   string          `json:"product_id"`
	ExpectedQty int64           `json:"expected_qty"`
	CountedQty  int64           `json:"counted_qty"`
	Delta       int64           `json:"delta"`
	ValueDelta  decimal.Decimal `json:"value_delta"`
}

// CycleCountResponse resultado del conteo con los agregados de merma.
type CycleCountResponse struct {
	ID                  string                   `json:"id"`
	Reason              string                   `json:"reason"`
	TotalShrinkageQty   int64                    `json:"total_shrinkage_qty"`
	TotalShrinkageValue decimal.Decimal          `json:"total_shrinkage_value"`
	CreatedAt           time.Time                `json:"created_at"`
	Items               []CycleCountItemResponse `json:"items"`
}
