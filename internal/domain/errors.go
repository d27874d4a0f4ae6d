package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los adaptadores los envuelven con %w; los handlers los traducen con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrForbidden    = errors.New("acceso denegado")
	ErrInvalidState = errors.New("transición no permitida desde el estado actual")
	ErrValidation   = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
)
