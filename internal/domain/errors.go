package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a status con errors.Is; todo lo demás es un error interno.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInvalidInput = errors.New("entrada inválida")
)

// Variantes de ErrConflict con mensaje propio.
var (
	ErrDuplicate = fmt.Errorf("%w: recurso duplicado", ErrConflict)
	ErrInUse     = fmt.Errorf("%w: recurso referenciado", ErrConflict)
	ErrCycle     = fmt.Errorf("%w: la jerarquía formaría un ciclo", ErrConflict)
)
