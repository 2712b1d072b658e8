package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/jhoicas/posventa-api/internal/domain"
)

// Contadores del motor de inventario.
var (
	SalesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "posventa_sales_processed_total",
		Help: "Ventas confirmadas.",
	})
	SalesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posventa_sales_failed_total",
		Help: "Ventas rechazadas, por causa.",
	}, []string{"reason"})
	SyncRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posventa_sync_records_total",
		Help: "Registros de sync offline procesados, por resultado (applied, replay, invalid, failed).",
	}, []string{"result"})
	ReceiptsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "posventa_po_receipts_total",
		Help: "Recepciones de órdenes de compra confirmadas.",
	})
	CycleCountsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "posventa_cycle_counts_total",
		Help: "Conteos físicos confirmados.",
	})
	AlertsRaised = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posventa_alerts_raised_total",
		Help: "Alertas creadas, por tipo.",
	}, []string{"type"})
	AlertsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posventa_alerts_resolved_total",
		Help: "Alertas resueltas, por tipo.",
	}, []string{"type"})
)

// FailureReason etiqueta de causa para contadores, a partir del error de dominio.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrTransaction):
		return "transaction"
	default:
		return "internal"
	}
}

// Server servidor HTTP lateral con /metrics y /health, separado de la API
// para no exponer Prometheus en el puerto público.
type Server struct {
	srv *http.Server
}

// NewServer construye el servidor de métricas.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	return &Server{srv: &http.Server{Addr: addr, Handler: mux}}
}

// Start bloquea sirviendo hasta Shutdown.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown apaga el servidor respetando el contexto.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
