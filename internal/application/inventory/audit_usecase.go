package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/posventa-api/internal/application/dto"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
)

// AuditUseCase verifica el invariante del ledger: la suma con signo de los
// movimientos de cada producto debe igualar su current_stock.
type AuditUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *AuditUseCase {
	return &AuditUseCase{productRepo: productRepo, movementRepo: movementRepo}
}

// Reconcile recorre el catálogo comparando ledger contra stock. La lectura no es
// una instantánea transaccional: una venta en vuelo puede marcar un falso
// descuadre momentáneo, por eso el reporte es informativo y no bloquea nada.
func (uc *AuditUseCase) Reconcile(ctx context.Context) (*dto.AuditResponse, error) {
	resp := &dto.AuditResponse{CheckedAt: time.Now()}
	offset := 0
	const page = 200
	for {
		products, err := uc.productRepo.List(ctx, page, offset)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			return resp, nil
		}
		for _, p := range products {
			sum, err := uc.movementRepo.SumByProduct(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			line := dto.AuditLineResponse{
				ProductID:    p.ID,
				SKU:          p.SKU,
				CurrentStock: p.CurrentStock,
				LedgerSum:    sum,
				Consistent:   sum == p.CurrentStock,
			}
			if !line.Consistent {
				resp.Inconsistent++
			}
			resp.Lines = append(resp.Lines, line)
		}
		offset += page
	}
}
