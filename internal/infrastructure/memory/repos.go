package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/posventa-api/internal/domain"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
)

// Los repos comparten el Store. Fuera de transacción cada método toma el lock;
// dentro (inTx) el lock ya lo tiene el TxRunner y volver a tomarlo bloquearía.
type base struct {
	s    *Store
	inTx bool
}

func (b *base) lock() func() {
	if b.inTx {
		return func() {}
	}
	b.s.mu.Lock()
	return b.s.mu.Unlock
}

func (b *base) rlock() func() {
	if b.inTx {
		return func() {}
	}
	b.s.mu.RLock()
	return b.s.mu.RUnlock
}

// ───────────────────────── productos ─────────────────────────

type productRepo struct{ base }

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.lock()()
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.rlock()()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *productRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	defer r.rlock()()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: el TxRunner ya serializa las
// transacciones con un lock global.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.lock()()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// El stock solo se mueve con AdjustStock.
	next := *p
	next.CurrentStock = cur.CurrentStock
	r.s.products[p.ID] = next
	return nil
}

func (r *productRepo) AdjustStock(_ context.Context, productID string, delta int64) error {
	defer r.lock()()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.CurrentStock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.CurrentStock += delta
	p.UpdatedAt = time.Now().UTC()
	r.s.products[productID] = p
	return nil
}

func (r *productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	defer r.rlock()()
	all := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SKU < all[j].SKU })
	return page(all, limit, offset), nil
}

func (r *productRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	defer r.rlock()()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.CurrentStock <= p.LowStockLimit() {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrentStock < out[j].CurrentStock })
	return out, nil
}

// ───────────────────────── ledger ─────────────────────────

type movementRepo struct{ base }

var _ repository.MovementRepository = (*movementRepo)(nil)

func (r *movementRepo) Create(_ context.Context, m *entity.Movement) error {
	defer r.lock()()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *movementRepo) ListByProduct(_ context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	defer r.rlock()()
	var out []*entity.Movement
	for i := range r.s.movements {
		m := r.s.movements[i]
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (r *movementRepo) SumByProduct(_ context.Context, productID string) (int64, error) {
	defer r.rlock()()
	var sum int64
	for i := range r.s.movements {
		if r.s.movements[i].ProductID == productID {
			sum += r.s.movements[i].Quantity
		}
	}
	return sum, nil
}

// ───────────────────────── ventas ─────────────────────────

type saleRepo struct{ base }

var _ repository.SaleRepository = (*saleRepo)(nil)

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	defer r.lock()()
	cp := *sale
	cp.Items = append([]entity.SaleItem(nil), sale.Items...)
	r.s.sales[sale.ID] = cp
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	defer r.rlock()()
	if s, ok := r.s.sales[id]; ok {
		s.Items = append([]entity.SaleItem(nil), s.Items...)
		return &s, nil
	}
	return nil, nil
}

// ───────────────────────── órdenes de compra ─────────────────────────

type orderRepo struct{ base }

var _ repository.PurchaseOrderRepository = (*orderRepo)(nil)

func (r *orderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	defer r.lock()()
	cp := *po
	cp.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
	r.s.orders[po.ID] = cp
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	defer r.rlock()()
	if po, ok := r.s.orders[id]; ok {
		po.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
		return &po, nil
	}
	return nil, nil
}

func (r *orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepo) UpdateStatus(_ context.Context, poID string, status entity.POStatus) error {
	defer r.lock()()
	po, ok := r.s.orders[poID]
	if !ok {
		return domain.ErrNotFound
	}
	po.Status = status
	po.UpdatedAt = time.Now().UTC()
	r.s.orders[poID] = po
	return nil
}

func (r *orderRepo) UpdateItemReceived(_ context.Context, itemID string, quantityReceived int64) error {
	defer r.lock()()
	for poID, po := range r.s.orders {
		for i := range po.Items {
			if po.Items[i].ID == itemID {
				po.Items[i].QuantityReceived = quantityReceived
				r.s.orders[poID] = po
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *orderRepo) List(_ context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	defer r.rlock()()
	all := make([]*entity.PurchaseOrder, 0, len(r.s.orders))
	for _, po := range r.s.orders {
		cp := po
		cp.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

// ───────────────────────── conteos físicos ─────────────────────────

type cycleCountRepo struct{ base }

var _ repository.CycleCountRepository = (*cycleCountRepo)(nil)

func (r *cycleCountRepo) Create(_ context.Context, count *entity.CycleCount) error {
	defer r.lock()()
	cp := *count
	cp.Items = append([]entity.CycleCountItem(nil), count.Items...)
	r.s.cycleCounts[count.ID] = cp
	return nil
}

func (r *cycleCountRepo) GetByID(_ context.Context, id string) (*entity.CycleCount, error) {
	defer r.rlock()()
	if c, ok := r.s.cycleCounts[id]; ok {
		c.Items = append([]entity.CycleCountItem(nil), c.Items...)
		return &c, nil
	}
	return nil, nil
}

// ───────────────────────── sync offline ─────────────────────────

type syncRepo struct{ base }

var _ repository.SyncRepository = (*syncRepo)(nil)

func (r *syncRepo) Get(_ context.Context, deviceID, clientID string) (*entity.SyncRecord, error) {
	defer r.rlock()()
	if rec, ok := r.s.syncLog[syncKey(deviceID, clientID)]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (r *syncRepo) Create(_ context.Context, rec *entity.SyncRecord) error {
	defer r.lock()()
	key := syncKey(rec.DeviceID, rec.ClientID)
	if _, ok := r.s.syncLog[key]; ok {
		return domain.ErrDuplicate
	}
	r.s.syncLog[key] = *rec
	return nil
}

// ───────────────────────── alertas ─────────────────────────

type alertRepo struct{ base }

var _ repository.AlertRepository = (*alertRepo)(nil)

func (r *alertRepo) GetUnresolved(_ context.Context, productID string, alertType entity.AlertType) (*entity.Alert, error) {
	defer r.rlock()()
	for _, id := range r.s.alertOrder {
		a := r.s.alerts[id]
		if a.ProductID == productID && a.Type == alertType && !a.IsResolved {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *alertRepo) Create(_ context.Context, alert *entity.Alert) error {
	defer r.lock()()
	for _, id := range r.s.alertOrder {
		a := r.s.alerts[id]
		if a.ProductID == alert.ProductID && a.Type == alert.Type && !a.IsResolved {
			return domain.ErrDuplicate
		}
	}
	r.s.alerts[alert.ID] = *alert
	r.s.alertOrder = append(r.s.alertOrder, alert.ID)
	return nil
}

func (r *alertRepo) Update(_ context.Context, alert *entity.Alert) error {
	defer r.lock()()
	if _, ok := r.s.alerts[alert.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.alerts[alert.ID] = *alert
	return nil
}

func (r *alertRepo) List(_ context.Context, unresolvedOnly bool, limit, offset int) ([]*entity.Alert, error) {
	defer r.rlock()()
	var out []*entity.Alert
	for _, id := range r.s.alertOrder {
		a := r.s.alerts[id]
		if unresolvedOnly && a.IsResolved {
			continue
		}
		cp := a
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return page(out, limit, offset), nil
}

func (r *alertRepo) MarkRead(_ context.Context, id string) error {
	defer r.lock()()
	a, ok := r.s.alerts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.IsRead = true
	a.UpdatedAt = time.Now().UTC()
	r.s.alerts[id] = a
	return nil
}

// ───────────────────────── pronósticos ─────────────────────────

type forecastRepo struct{ base }

var _ repository.ForecastRepository = (*forecastRepo)(nil)

func (r *forecastRepo) Get(_ context.Context, productID string) (*entity.DemandForecast, error) {
	defer r.rlock()()
	if f, ok := r.s.forecasts[productID]; ok {
		return &f, nil
	}
	return nil, nil
}

func (r *forecastRepo) Upsert(_ context.Context, f *entity.DemandForecast) error {
	defer r.lock()()
	r.s.forecasts[f.ProductID] = *f
	return nil
}

func (r *forecastRepo) DailySalesOutflow(_ context.Context, productID string, since time.Time) ([]repository.DailyOutflow, error) {
	defer r.rlock()()
	byDay := make(map[time.Time]int64)
	for i := range r.s.movements {
		m := r.s.movements[i]
		if m.ProductID != productID || m.Type != entity.MovementSALE || m.CreatedAt.Before(since) {
			continue
		}
		day := m.CreatedAt.UTC().Truncate(24 * time.Hour)
		q := m.Quantity
		if q < 0 {
			q = -q
		}
		byDay[day] += q
	}
	out := make([]repository.DailyOutflow, 0, len(byDay))
	for day, units := range byDay {
		out = append(out, repository.DailyOutflow{Day: day, Units: units})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

// ───────────────────────── usuarios ─────────────────────────

type userRepo struct{ base }

var _ repository.UserRepository = (*userRepo)(nil)

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	defer r.lock()()
	if _, ok := r.s.usersByEmail[u.Email]; ok {
		return domain.ErrDuplicate
	}
	r.s.users[u.ID] = *u
	r.s.usersByEmail[u.Email] = u.ID
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.rlock()()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.rlock()()
	id, ok := r.s.usersByEmail[email]
	if !ok {
		return nil, nil
	}
	u := r.s.users[id]
	return &u, nil
}

func page[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
