package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrMissingInput = errors.New("entrada requerida ausente")
)
