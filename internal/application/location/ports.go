package location

import (
	"context"

	"github.com/jhoicas/ddb-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un repositorio atado a esa tx.
// Un cambio de padre reescribe el nivel de todo el subárbol; debe ser atómico.
type TxRunner interface {
	RunHierarchy(ctx context.Context, fn func(repo repository.EmplacementRepository) error) error
}
