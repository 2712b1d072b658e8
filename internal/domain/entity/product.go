package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto (SKU) de la tienda. CurrentStock es el contador
// mutable del agregado de stock: solo se modifica dentro de operaciones que además
// registran un Movement, nunca por fuera.
type Product struct {
	ID                 string
	SKU                string // código único
	Name               string
	Description        string
	CurrentStock       int64 // invariante: >= 0
	ReorderPoint       int64
	LowStockThreshold  int64
	MaxStock           *int64 // opcional; nil = sin techo (sin evaluación de sobrestock)
	CostPrice          decimal.Decimal
	UnitPrice          decimal.Decimal
	SupplierID         *string
	AutoReorderEnabled bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// LowStockLimit devuelve el umbral efectivo de stock bajo: el mayor entre
// ReorderPoint y LowStockThreshold (algunos catálogos solo definen uno de los dos).
func (p *Product) LowStockLimit() int64 {
	if p.LowStockThreshold > p.ReorderPoint {
		return p.LowStockThreshold
	}
	return p.ReorderPoint
}
