package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los tipos estructurados de abajo
// hacen Unwrap() hacia estos centinelas para que errors.Is siga funcionando en handlers.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOverReceipt       = errors.New("cantidad recibida excede lo pendiente")
	ErrTransaction       = errors.New("error de transacción")
)

// ValidationError campo inválido o faltante en la entrada.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NotFoundError recurso referenciado que no existe; hace fallar la unidad atómica completa.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError rechazo de regla de negocio: la venta pide más de lo disponible.
// Lleva el primer producto ofensor para mensajería (solicitado vs disponible).
type InsufficientStockError struct {
	ProductID string
	SKU       string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (%s): solicitado %d, disponible %d",
		e.SKU, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// OverReceiptError la recepción excede lo pendiente por recibir de un ítem de la orden.
type OverReceiptError struct {
	ItemID    string
	Requested int64
	Remaining int64
}

func (e *OverReceiptError) Error() string {
	return fmt.Sprintf("recepción excede lo pendiente en ítem %s: recibido %d, pendiente %d",
		e.ItemID, e.Requested, e.Remaining)
}

func (e *OverReceiptError) Unwrap() error { return ErrOverReceipt }

// TransactionError falla de almacenamiento o conflicto de serialización; reintentable por el caller.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transacción %s: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error { return ErrTransaction }
