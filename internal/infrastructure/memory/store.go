// Package memory implementa los puertos de persistencia sobre mapas en memoria.
// Se usa en pruebas y en modo demo sin base de datos; el comportamiento observable
// (errores de dominio, guardas de stock, deduplicación) replica al adaptador de
// PostgreSQL.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.RWMutex

	products     map[string]entity.Product
	movements    []entity.Movement
	sales        map[string]entity.Sale
	orders       map[string]entity.PurchaseOrder
	alerts       map[string]entity.Alert
	alertOrder   []string // ids en orden de inserción, para listados estables
	cycleCounts  map[string]entity.CycleCount
	syncLog      map[string]entity.SyncRecord // clave device_id + "\x00" + client_id
	forecasts    map[string]entity.DemandForecast
	users        map[string]entity.User
	usersByEmail map[string]string
}

// NewStore crea un estado vacío.
func NewStore() *Store {
	return &Store{
		products:     make(map[string]entity.Product),
		sales:        make(map[string]entity.Sale),
		orders:       make(map[string]entity.PurchaseOrder),
		alerts:       make(map[string]entity.Alert),
		cycleCounts:  make(map[string]entity.CycleCount),
		syncLog:      make(map[string]entity.SyncRecord),
		forecasts:    make(map[string]entity.DemandForecast),
		users:        make(map[string]entity.User),
		usersByEmail: make(map[string]string),
	}
}

func syncKey(deviceID, clientID string) string {
	return deviceID + "\x00" + clientID
}

// snapshot copia profunda del estado mutado por transacciones. Las alertas,
// pronósticos y usuarios no participan de transacciones y quedan fuera.
type snapshot struct {
	products    map[string]entity.Product
	movements   []entity.Movement
	sales       map[string]entity.Sale
	orders      map[string]entity.PurchaseOrder
	cycleCounts map[string]entity.CycleCount
	syncLog     map[string]entity.SyncRecord
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products:    make(map[string]entity.Product, len(s.products)),
		movements:   make([]entity.Movement, len(s.movements)),
		sales:       make(map[string]entity.Sale, len(s.sales)),
		orders:      make(map[string]entity.PurchaseOrder, len(s.orders)),
		cycleCounts: make(map[string]entity.CycleCount, len(s.cycleCounts)),
		syncLog:     make(map[string]entity.SyncRecord, len(s.syncLog)),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	copy(snap.movements, s.movements)
	for k, v := range s.sales {
		v.Items = append([]entity.SaleItem(nil), v.Items...)
		snap.sales[k] = v
	}
	for k, v := range s.orders {
		v.Items = append([]entity.PurchaseOrderItem(nil), v.Items...)
		snap.orders[k] = v
	}
	for k, v := range s.cycleCounts {
		v.Items = append([]entity.CycleCountItem(nil), v.Items...)
		snap.cycleCounts[k] = v
	}
	for k, v := range s.syncLog {
		snap.syncLog[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.movements = snap.movements
	s.sales = snap.sales
	s.orders = snap.orders
	s.cycleCounts = snap.cycleCounts
	s.syncLog = snap.syncLog
}

// SeedProduct inserta un producto directamente (fixtures de prueba).
func (s *Store) SeedProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
		p.UpdatedAt = p.CreatedAt
	}
	s.products[p.ID] = p
}

// SeedUser inserta un usuario directamente (fixtures de prueba).
func (s *Store) SeedUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	s.usersByEmail[u.Email] = u.ID
}

// Repos devuelve el juego completo de repositorios sobre este Store.
type Repos struct {
	Products       repository.ProductRepository
	Movements      repository.MovementRepository
	Sales          repository.SaleRepository
	PurchaseOrders repository.PurchaseOrderRepository
	CycleCounts    repository.CycleCountRepository
	Sync           repository.SyncRepository
	Alerts         repository.AlertRepository
	Forecasts      repository.ForecastRepository
	Users          repository.UserRepository
}

// NewRepos construye los adaptadores de todos los puertos sobre el Store dado.
func NewRepos(s *Store) Repos {
	return Repos{
		Products:       &productRepo{base{s: s}},
		Movements:      &movementRepo{base{s: s}},
		Sales:          &saleRepo{base{s: s}},
		PurchaseOrders: &orderRepo{base{s: s}},
		CycleCounts:    &cycleCountRepo{base{s: s}},
		Sync:           &syncRepo{base{s: s}},
		Alerts:         &alertRepo{base{s: s}},
		Forecasts:      &forecastRepo{base{s: s}},
		Users:          &userRepo{base{s: s}},
	}
}
