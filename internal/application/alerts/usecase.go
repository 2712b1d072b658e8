package alerts

import (
	"context"

	"github.com/jhoicas/posventa-api/internal/application/dto"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
)

// AlertUseCase lecturas y marcado de alertas para la UI.
type AlertUseCase struct {
	alertRepo repository.AlertRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(alertRepo repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{alertRepo: alertRepo}
}

// List devuelve alertas paginadas, opcionalmente solo las sin resolver.
func (uc *AlertUseCase) List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]dto.AlertResponse, error) {
	items, err := uc.alertRepo.List(ctx, unresolvedOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertResponse, 0, len(items))
	for _, a := range items {
		out = append(out, dto.AlertResponse{
			ID:         a.ID,
			ProductID:  a.ProductID,
			Type:       string(a.Type),
			Message:    a.Message,
			Severity:   a.Severity,
			IsResolved: a.IsResolved,
			IsRead:     a.IsRead,
			CreatedAt:  a.CreatedAt,
			ResolvedAt: a.ResolvedAt,
		})
	}
	return out, nil
}

// MarkRead marca una alerta como leída.
func (uc *AlertUseCase) MarkRead(ctx context.Context, id string) error {
	return uc.alertRepo.MarkRead(ctx, id)
}
