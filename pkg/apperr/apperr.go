// Package apperr names the failure kinds the services return so the HTTP
// layer can map them with errors.Is instead of matching message strings.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("invalid input")
	ErrOutOfStock        = errors.New("menu item is out of stock")
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
	ErrEmptyCart         = errors.New("cannot create an order with an empty cart")
	ErrOrderProcessed    = errors.New("order already processed")
	ErrOrderCompleted    = errors.New("order is already completed")
	ErrForbidden         = errors.New("forbidden")
)
