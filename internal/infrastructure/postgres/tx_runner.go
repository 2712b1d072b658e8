package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/posventa-api/internal/application/ports"
	"github.com/jhoicas/posventa-api/internal/domain"
)

// Ensure TxRunner implements ports.TxRunner.
var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o
// Rollback. Las fallas de Begin/Commit se reportan como TransactionError
// (reintentables por el caller); los errores de fn pasan intactos.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return &domain.TransactionError{Op: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.TxRepos{
		Products:       NewProductRepository(tx),
		Movements:      NewMovementRepository(tx),
		Sales:          NewSaleRepository(tx),
		PurchaseOrders: NewPurchaseOrderRepository(tx),
		CycleCounts:    NewCycleCountRepository(tx),
		Sync:           NewSyncRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return &domain.TransactionError{Op: "commit", Err: err}
	}
	return nil
}
