package dto

// QueuedSaleRequest venta encolada en el cliente offline. ClientID lo asigna el
// cliente y sirve para limpiar su cola local; junto con DeviceID es además la
// clave de deduplicación del servidor.
type QueuedSaleRequest struct {
	ClientID      string            `json:"client_id"`
	Items         []SaleItemRequest `json:"items"`
	PaymentMethod string            `json:"payment_method"`
}

// SyncRequest body para POST /api/sync.
type SyncRequest struct {
	DeviceID string              `json:"device_id"`
	Sales    []QueuedSaleRequest `json:"sales"`
}

// SyncRecordResult resultado por registro. El cliente solo elimina de su cola los
// registros con Success=true; Replay marca los deduplicados de un reintento.
type SyncRecordResult struct {
	ClientID string         `json:"client_id"`
	Success  bool           `json:"success"`
	Replay   bool           `json:"replay,omitempty"`
	Result   *SaleResponse  `json:"result,omitempty"`
	Error    *ErrorResponse `json:"error,omitempty"`
}

// SyncResponse respuesta del batch: siempre 200, con bandera por elemento.
type SyncResponse struct {
	Results []SyncRecordResult `json:"results"`
}
