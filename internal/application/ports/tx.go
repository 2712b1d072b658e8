package ports

import (
	"context"

	"github.com/jhoicas/posventa-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD. Se entrega completo al
// callback porque una venta sincronizada toca productos, ledger, ventas y dedup
// dentro de la misma tx.
type TxRepos struct {
	Products       repository.ProductRepository
	Movements      repository.MovementRepository
	Sales          repository.SaleRepository
	PurchaseOrders repository.PurchaseOrderRepository
	CycleCounts    repository.CycleCountRepository
	Sync           repository.SyncRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad: Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
