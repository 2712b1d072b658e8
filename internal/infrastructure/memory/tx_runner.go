package memory

import (
	"context"

	"github.com/jhoicas/posventa-api/internal/application/ports"
)

// TxRunner transacciones sobre el Store: toma el lock de escritura durante toda la
// transacción (serializa como lo haría el bloqueo de filas en PostgreSQL), guarda un
// snapshot y lo restaura si fn falla. Los repos internos no toman el lock de nuevo.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el ejecutor de transacciones en memoria.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

func (t *TxRunner) Run(ctx context.Context, fn func(r ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	snap := t.store.snapshot()
	repos := ports.TxRepos{
		Products:       &productRepo{base{s: t.store, inTx: true}},
		Movements:      &movementRepo{base{s: t.store, inTx: true}},
		Sales:          &saleRepo{base{s: t.store, inTx: true}},
		PurchaseOrders: &orderRepo{base{s: t.store, inTx: true}},
		CycleCounts:    &cycleCountRepo{base{s: t.store, inTx: true}},
		Sync:           &syncRepo{base{s: t.store, inTx: true}},
	}
	if err := fn(repos); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}
