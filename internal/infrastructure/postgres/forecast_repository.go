package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
)

var _ repository.ForecastRepository = (*ForecastRepo)(nil)

// ForecastRepo persistencia de la serie de demanda pronosticada.
type ForecastRepo struct {
	q Querier
}

// NewForecastRepository construye el adaptador. Pasar pool o tx (Querier).
func NewForecastRepository(q Querier) *ForecastRepo {
	return &ForecastRepo{q: q}
}

// Get devuelve el pronóstico vigente del producto, o nil si nunca se calculó.
func (r *ForecastRepo) Get(ctx context.Context, productID string) (*entity.DemandForecast, error) {
	var f entity.DemandForecast
	err := r.q.QueryRow(ctx, `
		SELECT product_id, period, predicted, alpha, updated_at
		FROM demand_forecasts WHERE product_id = $1`, productID,
	).Scan(&f.ProductID, &f.Period, &f.Predicted, &f.Alpha, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get forecast: %w", err)
	}
	return &f, nil
}

// Upsert guarda el pronóstico del producto (una fila vigente por producto).
func (r *ForecastRepo) Upsert(ctx context.Context, f *entity.DemandForecast) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO demand_forecasts (product_id, period, predicted, alpha, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id) DO UPDATE SET
			period = EXCLUDED.period,
			predicted = EXCLUDED.predicted,
			alpha = EXCLUDED.alpha,
			updated_at = EXCLUDED.updated_at`,
		f.ProductID, f.Period, f.Predicted, f.Alpha, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert forecast: %w", err)
	}
	return nil
}

// DailySalesOutflow agrega unidades vendidas por día (movimientos SALE en valor
// absoluto) desde la fecha dada. Días sin ventas no aparecen en la serie.
func (r *ForecastRepo) DailySalesOutflow(ctx context.Context, productID string, since time.Time) ([]repository.DailyOutflow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT date_trunc('day', created_at) AS day, SUM(ABS(quantity)) AS units
		FROM movements
		WHERE product_id = $1 AND type = $2 AND created_at >= $3
		GROUP BY 1
		ORDER BY 1`,
		productID, entity.MovementSALE, since,
	)
	if err != nil {
		return nil, fmt.Errorf("daily sales outflow: %w", err)
	}
	defer rows.Close()

	var series []repository.DailyOutflow
	for rows.Next() {
		var d repository.DailyOutflow
		if err := rows.Scan(&d.Day, &d.Units); err != nil {
			return nil, fmt.Errorf("scan daily outflow: %w", err)
		}
		series = append(series, d)
	}
	return series, rows.Err()
}
