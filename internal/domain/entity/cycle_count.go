package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CycleCount cabecera de un conteo físico. Inmutable después de creado, salvo los
// totales agregados que se calculan durante la creación.
type CycleCount struct {
	ID                  string
	CreatedByID         string
	Reason              string
	TotalShrinkageQty   int64
	TotalShrinkageValue decimal.Decimal
	CreatedAt           time.Time
	Items               []CycleCountItem
}

// CycleCountItem línea del conteo: se persiste aunque el delta sea cero
// (completitud de auditoría). Delta = contado - esperado;
// ValueDelta = max(0, -Delta) * precio unitario (solo la merma tiene valor).
type CycleCountItem struct {
	ID           string
	CycleCountID string
	ProductID    string
	ExpectedQty  int64
	CountedQty   int64
	Delta        int64
	ValueDelta   decimal.Decimal
}

// Shrinkage unidades perdidas reveladas por la línea (0 si el delta es positivo).
func (i *CycleCountItem) Shrinkage() int64 {
	if i.Delta < 0 {
		return -i.Delta
	}
	return 0
}

// ShrinkageValue valor de la merma de la línea al precio unitario dado.
func ShrinkageValue(delta int64, unitPrice decimal.Decimal) decimal.Decimal {
	if delta >= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(-delta).Mul(unitPrice)
}
