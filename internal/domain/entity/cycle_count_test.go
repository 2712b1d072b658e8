package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/posventa-api/internal/domain/entity"
)

func TestShrinkage_SoloDeltasNegativos(t *testing.T) {
	faltante := entity.CycleCountItem{Delta: -4}
	sobrante := entity.CycleCountItem{Delta: 3}
	exacto := entity.CycleCountItem{Delta: 0}

	assert.Equal(t, int64(4), faltante.Shrinkage())
	assert.Equal(t, int64(0), sobrante.Shrinkage())
	assert.Equal(t, int64(0), exacto.Shrinkage())
}

func TestShrinkageValue(t *testing.T) {
	precio := decimal.NewFromFloat(2.50)

	assert.True(t, decimal.NewFromInt(10).Equal(entity.ShrinkageValue(-4, precio)))
	// Los sobrantes no valorizan merma.
	assert.True(t, decimal.Zero.Equal(entity.ShrinkageValue(3, precio)))
	assert.True(t, decimal.Zero.Equal(entity.ShrinkageValue(0, precio)))
}

func TestLowStockLimit_MayorDeLosDosUmbrales(t *testing.T) {
	p := entity.Product{ReorderPoint: 5, LowStockThreshold: 8}
	assert.Equal(t, int64(8), p.LowStockLimit())

	p = entity.Product{ReorderPoint: 12, LowStockThreshold: 8}
	assert.Equal(t, int64(12), p.LowStockLimit())
}

func TestMovementTypeValid(t *testing.T) {
	assert.True(t, entity.MovementSALE.Valid())
	assert.True(t, entity.MovementADJUSTMENTOut.Valid())
	assert.False(t, entity.MovementType("TRANSFER").Valid())
}
