package inventory

import "github.com/jhoicas/ddb-stock/internal/domain/entity"

// RootLevel es el nivel de un Emplacement sin padre.
const RootLevel = 1

// LevelUnder calcula el nivel de un nodo colgado de parent (nil = raíz).
func LevelUnder(parent *entity.Emplacement) int {
	if parent == nil {
		return RootLevel
	}
	return parent.Level + 1
}
