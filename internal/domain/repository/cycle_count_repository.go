package repository

import (
	"context"

	"github.com/jhoicas/posventa-api/internal/domain/entity"
)

// CycleCountRepository puerto de persistencia para conteos físicos.
type CycleCountRepository interface {
	// Create persiste cabecera e ítems del conteo en una sola operación.
	Create(ctx context.Context, count *entity.CycleCount) error
	GetByID(ctx context.Context, id string) (*entity.CycleCount, error)
}
