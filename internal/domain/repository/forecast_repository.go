package repository

import (
	"context"
	"time"

	"github.com/jhoicas/posventa-api/internal/domain/entity"
)

// DailyOutflow salida total por ventas de un día (serie de entrada del pronóstico).
type DailyOutflow struct {
	Day   time.Time
	Units int64
}

// ForecastRepository puerto de la serie de demanda pronosticada (lectura para alertas,
// escritura solo desde el recálculo).
type ForecastRepository interface {
	Get(ctx context.Context, productID string) (*entity.DemandForecast, error)
	Upsert(ctx context.Context, forecast *entity.DemandForecast) error
	// DailySalesOutflow agrega las unidades vendidas por día para un producto
	// desde la fecha dada (movimientos SALE, en valor absoluto).
	DailySalesOutflow(ctx context.Context, productID string, since time.Time) ([]DailyOutflow, error)
}
