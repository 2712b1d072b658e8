package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/posventa-api/internal/application/dto"
	"github.com/jhoicas/posventa-api/internal/application/ports"
	"github.com/jhoicas/posventa-api/internal/domain"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
	"github.com/jhoicas/posventa-api/pkg/logger"
	"github.com/jhoicas/posventa-api/pkg/metrics"
)

// SyncUseCase reconcilia ventas encoladas por clientes offline. Cada registro se
// procesa de forma independiente (aislamiento por registro, no atomicidad de batch):
// la falla de uno no impide los demás. El dedup por (device_id, client_id) se inserta
// en la misma transacción de la venta, así un reintento tras respuesta perdida
// encuentra la fila confirmada y no vuelve a decrementar stock.
type SyncUseCase struct {
	txRunner ports.TxRunner
	saleUC   *SaleUseCase
	syncRepo repository.SyncRepository
	log      *logger.Logger
}

// NewSyncUseCase construye el reconciliador.
func NewSyncUseCase(txRunner ports.TxRunner, saleUC *SaleUseCase, syncRepo repository.SyncRepository, log *logger.Logger) *SyncUseCase {
	return &SyncUseCase{txRunner: txRunner, saleUC: saleUC, syncRepo: syncRepo, log: log}
}

// Sync procesa el batch y devuelve un resultado por registro. El endpoint siempre
// responde 200; el cliente limpia de su cola local solo los client_id con success.
func (uc *SyncUseCase) Sync(ctx context.Context, actorID string, in dto.SyncRequest) (*dto.SyncResponse, error) {
	if in.DeviceID == "" {
		return nil, &domain.ValidationError{Field: "device_id", Reason: "requerido"}
	}
	resp := &dto.SyncResponse{Results: make([]dto.SyncRecordResult, 0, len(in.Sales))}
	for _, record := range in.Sales {
		resp.Results = append(resp.Results, uc.syncOne(ctx, actorID, in.DeviceID, record))
	}
	return resp, nil
}

func (uc *SyncUseCase) syncOne(ctx context.Context, actorID, deviceID string, record dto.QueuedSaleRequest) dto.SyncRecordResult {
	if record.ClientID == "" {
		metrics.SyncRecords.WithLabelValues("invalid").Inc()
		return dto.SyncRecordResult{
			Success: false,
			Error:   &dto.ErrorResponse{Code: "VALIDATION", Message: "client_id requerido"},
		}
	}

	// Replay: el registro ya fue aplicado en una entrega anterior cuya respuesta
	// se perdió. Se confirma el éxito sin tocar stock.
	if applied, err := uc.syncRepo.Get(ctx, deviceID, record.ClientID); err == nil && applied != nil {
		metrics.SyncRecords.WithLabelValues("replay").Inc()
		return dto.SyncRecordResult{ClientID: record.ClientID, Success: true, Replay: true}
	}

	if err := validateSaleInput(dto.CreateSaleRequest{Items: record.Items, PaymentMethod: record.PaymentMethod}); err != nil {
		metrics.SyncRecords.WithLabelValues("invalid").Inc()
		return failureResult(record.ClientID, err)
	}

	now := time.Now()
	clientID := record.ClientID
	devID := deviceID
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		PaymentMethod: record.PaymentMethod,
		ActorID:       actorID,
		ClientID:      &clientID,
		DeviceID:      &devID,
		CreatedAt:     now,
	}

	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		// La fila de dedup viaja en la misma tx que la venta: o se confirman
		// juntas o ninguna. La venta se inserta primero porque sync_log.sale_id
		// la referencia por FK; el índice único igual cierra la carrera entre
		// dos entregas concurrentes del mismo registro.
		if err := uc.saleUC.applySaleInTx(ctx, r, sale, record.Items, now); err != nil {
			return err
		}
		return r.Sync.Create(ctx, &entity.SyncRecord{
			ID:        uuid.New().String(),
			DeviceID:  deviceID,
			ClientID:  record.ClientID,
			SaleID:    sale.ID,
			AppliedAt: now,
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Perdimos la carrera contra la otra entrega: ya está aplicado.
			metrics.SyncRecords.WithLabelValues("replay").Inc()
			return dto.SyncRecordResult{ClientID: record.ClientID, Success: true, Replay: true}
		}
		uc.log.Warn().Err(err).
			Str("device_id", deviceID).
			Str("client_id", record.ClientID).
			Msg("registro de sync rechazado")
		metrics.SyncRecords.WithLabelValues("failed").Inc()
		return failureResult(record.ClientID, err)
	}

	metrics.SyncRecords.WithLabelValues("applied").Inc()
	uc.saleUC.afterCommit(ctx, sale)
	return dto.SyncRecordResult{ClientID: record.ClientID, Success: true, Result: saleToResponse(sale)}
}

// failureResult traduce el error de dominio al código por registro de la respuesta.
func failureResult(clientID string, err error) dto.SyncRecordResult {
	code := "INTERNAL"
	var insufficientErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficientErr):
		code = "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInvalidInput):
		code = "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		code = "NOT_FOUND"
	case errors.Is(err, domain.ErrTransaction):
		code = "TRANSACTION"
	}
	return dto.SyncRecordResult{
		ClientID: clientID,
		Success:  false,
		Error:    &dto.ErrorResponse{Code: code, Message: err.Error()},
	}
}
