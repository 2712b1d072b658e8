package entity

import "time"

// SyncRecord registro de deduplicación del sync offline. La clave (DeviceID, ClientID)
// tiene índice único: un reintento tras una respuesta perdida encuentra la fila
// ya confirmada y no vuelve a aplicar la venta.
type SyncRecord struct {
	ID        string
	DeviceID  string
	ClientID  string
	SaleID    string
	AppliedAt time.Time
}
