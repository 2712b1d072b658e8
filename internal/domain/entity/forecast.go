package entity

import "time"

// DemandForecast serie de demanda pronosticada por producto (suavizado exponencial
// de un parámetro sobre la salida diaria por ventas). El evaluador de alertas la
// consume de solo lectura para la regla de sobrestock.
type DemandForecast struct {
	ProductID string
	Period    string  // YYYY-MM del período proyectado
	Predicted float64 // unidades estimadas de demanda del período
	Alpha     float64 // parámetro de suavizado usado
	UpdatedAt time.Time
}
