package entity

import "time"

// Emplacement es un nodo del árbol de ubicaciones físicas.
// Level es derivado (nivel del padre + 1, o 1 en la raíz); nunca viene del cliente.
type Emplacement struct {
	ID          string
	Code        string // único, siempre en mayúsculas
	Name        string
	ParentID    *string // nil si es raíz
	Level       int
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsRoot indica si el nodo no tiene padre.
func (e *Emplacement) IsRoot() bool {
	return e.ParentID == nil
}
