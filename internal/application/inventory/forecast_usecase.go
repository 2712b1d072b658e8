package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
	"github.com/jhoicas/posventa-api/pkg/logger"
)

// ForecastUseCase recalcula la serie de demanda pronosticada por producto con
// suavizado exponencial de un parámetro sobre la salida diaria por ventas.
// La serie la consume de solo lectura el evaluador de alertas (regla de sobrestock).
type ForecastUseCase struct {
	productRepo  repository.ProductRepository
	forecastRepo repository.ForecastRepository
	alpha        float64
	historyDays  int
	log          *logger.Logger
}

// NewForecastUseCase construye el caso de uso. alpha en (0,1]; historyDays ventana
// de historial a considerar.
func NewForecastUseCase(productRepo repository.ProductRepository, forecastRepo repository.ForecastRepository, alpha float64, historyDays int, log *logger.Logger) *ForecastUseCase {
	if alpha <= 0 || alpha > 1 {
		alpha = 0.3
	}
	if historyDays <= 0 {
		historyDays = 90
	}
	return &ForecastUseCase{
		productRepo:  productRepo,
		forecastRepo: forecastRepo,
		alpha:        alpha,
		historyDays:  historyDays,
		log:          log,
	}
}

// Smooth aplica suavizado exponencial simple: s_t = alpha*x_t + (1-alpha)*s_{t-1},
// con s_0 = primera observación. Devuelve el último valor suavizado (demanda diaria).
func Smooth(series []int64, alpha float64) float64 {
	if len(series) == 0 {
		return 0
	}
	s := float64(series[0])
	for _, x := range series[1:] {
		s = alpha*float64(x) + (1-alpha)*s
	}
	return s
}

// RecomputeAll recalcula el pronóstico mensual de todos los productos. Devuelve
// cuántos productos se actualizaron; los errores por producto se loguean y no
// detienen el barrido.
func (uc *ForecastUseCase) RecomputeAll(ctx context.Context) (int, error) {
	updated := 0
	offset := 0
	const page = 200
	now := time.Now()
	since := now.AddDate(0, 0, -uc.historyDays)
	period := now.Format("2006-01")

	for {
		products, err := uc.productRepo.List(ctx, page, offset)
		if err != nil {
			return updated, err
		}
		if len(products) == 0 {
			return updated, nil
		}
		for _, p := range products {
			outflow, err := uc.forecastRepo.DailySalesOutflow(ctx, p.ID, since)
			if err != nil {
				uc.log.Warn().Err(err).Str("product_id", p.ID).Msg("historial de ventas ilegible")
				continue
			}
			series := make([]int64, 0, len(outflow))
			for _, day := range outflow {
				series = append(series, day.Units)
			}
			daily := Smooth(series, uc.alpha)
			forecast := &entity.DemandForecast{
				ProductID: p.ID,
				Period:    period,
				Predicted: daily * 30, // proyección del período mensual
				Alpha:     uc.alpha,
				UpdatedAt: now,
			}
			if err := uc.forecastRepo.Upsert(ctx, forecast); err != nil {
				uc.log.Warn().Err(err).Str("product_id", p.ID).Msg("upsert de pronóstico fallido")
				continue
			}
			updated++
		}
		offset += page
	}
}
