package repository

import (
	"context"

	"github.com/jhoicas/posventa-api/internal/domain/entity"
)

// SyncRepository puerto del registro de deduplicación del sync offline.
type SyncRepository interface {
	// Get devuelve el registro para (deviceID, clientID), o nil si nunca se aplicó.
	Get(ctx context.Context, deviceID, clientID string) (*entity.SyncRecord, error)
	// Create inserta el registro; si la clave ya existe debe devolver domain.ErrDuplicate
	// (el índice único es la última línea de defensa contra la doble aplicación).
	Create(ctx context.Context, record *entity.SyncRecord) error
}
