package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrExtraction   = errors.New("error de extracción de factura")
	ErrNoInvoices   = errors.New("no se extrajo ninguna factura válida")
	ErrUnauthorized = errors.New("no autorizado")
)
