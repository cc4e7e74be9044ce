package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/ddb-stock/internal/application/location"
	"github.com/jhoicas/ddb-stock/internal/domain/repository"
)

var _ location.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *gorm.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

// RunHierarchy ejecuta fn con un repo de emplacements atado a la transacción; rollback si fn falla.
func (r *TxRunner) RunHierarchy(ctx context.Context, fn func(repo repository.EmplacementRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewEmplacementRepository(tx))
	})
}
