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

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, product_id, type, message, severity, is_resolved, is_read, created_at, updated_at, resolved_at`

// AlertRepo implementación de AlertRepository sobre PostgreSQL. El índice único
// parcial ux_alerts_unresolved (product_id, type) WHERE NOT is_resolved respalda
// el invariante de a-lo-sumo-una-sin-resolver incluso ante escritores concurrentes.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// GetUnresolved devuelve la alerta sin resolver para (producto, tipo); nil si no hay.
func (r *AlertRepo) GetUnresolved(ctx context.Context, productID string, alertType entity.AlertType) (*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts
		WHERE product_id = $1 AND type = $2 AND NOT is_resolved`
	var a entity.Alert
	var typ string
	err := r.q.QueryRow(ctx, query, productID, string(alertType)).Scan(
		&a.ID, &a.ProductID, &typ, &a.Message, &a.Severity,
		&a.IsResolved, &a.IsRead, &a.CreatedAt, &a.UpdatedAt, &a.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unresolved alert: %w", err)
	}
	a.Type = entity.AlertType(typ)
	return &a, nil
}

// Create inserta una alerta nueva.
func (r *AlertRepo) Create(ctx context.Context, alert *entity.Alert) error {
	query := `
		INSERT INTO alerts (id, product_id, type, message, severity, is_resolved, is_read, created_at, updated_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		alert.ID, alert.ProductID, string(alert.Type), alert.Message, alert.Severity,
		alert.IsResolved, alert.IsRead, alert.CreatedAt, alert.UpdatedAt, alert.ResolvedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// Update actualiza mensaje, severidad y banderas de la alerta.
func (r *AlertRepo) Update(ctx context.Context, alert *entity.Alert) error {
	query := `
		UPDATE alerts SET message = $2, severity = $3, is_resolved = $4, is_read = $5,
			updated_at = $6, resolved_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		alert.ID, alert.Message, alert.Severity, alert.IsResolved, alert.IsRead,
		alert.UpdatedAt, alert.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve alertas paginadas, severidad primero y luego más recientes.
func (r *AlertRepo) List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts
		WHERE ($1 = false OR NOT is_resolved)
		ORDER BY severity DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, unresolvedOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		var typ string
		if err := rows.Scan(&a.ID, &a.ProductID, &typ, &a.Message, &a.Severity,
			&a.IsResolved, &a.IsRead, &a.CreatedAt, &a.UpdatedAt, &a.ResolvedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Type = entity.AlertType(typ)
		out = append(out, &a)
	}
	return out, rows.Err()
}

// MarkRead marca una alerta como leída.
func (r *AlertRepo) MarkRead(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE alerts SET is_read = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
