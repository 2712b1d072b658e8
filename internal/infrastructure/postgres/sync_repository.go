package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/posventa-api/internal/domain"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
)

var _ repository.SyncRepository = (*SyncRepo)(nil)

// SyncRepo registro de deduplicación del sync offline sobre PostgreSQL.
// La tabla sync_log tiene índice único sobre (device_id, client_id).
type SyncRepo struct {
	q Querier
}

// NewSyncRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSyncRepository(q Querier) *SyncRepo {
	return &SyncRepo{q: q}
}

// Get devuelve el registro para (deviceID, clientID), o nil si no existe.
func (r *SyncRepo) Get(ctx context.Context, deviceID, clientID string) (*entity.SyncRecord, error) {
	var rec entity.SyncRecord
	err := r.q.QueryRow(ctx, `
		SELECT id, device_id, client_id, sale_id, applied_at
		FROM sync_log WHERE device_id = $1 AND client_id = $2`, deviceID, clientID,
	).Scan(&rec.ID, &rec.DeviceID, &rec.ClientID, &rec.SaleID, &rec.AppliedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sync record: %w", err)
	}
	return &rec, nil
}

// Create inserta el registro; devuelve domain.ErrDuplicate si la clave ya existe
// (dos réplicas del mismo registro compitiendo: gana una, la otra es replay).
func (r *SyncRepo) Create(ctx context.Context, rec *entity.SyncRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sync_log (id, device_id, client_id, sale_id, applied_at)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.DeviceID, rec.ClientID, rec.SaleID, rec.AppliedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sync record: %w", err)
	}
	return nil
}
