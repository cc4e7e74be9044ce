package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ddb-stock/internal/domain"
	"github.com/jhoicas/ddb-stock/internal/domain/repository"
)

func TestListArticlesQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   repository.ArticleFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "sin filtros",
			filter:   repository.ArticleFilter{},
			wantSQL:  "SELECT id, code_article, produit_id, emplacement_id, quantite, date_peremption, commentaire, created_at, updated_at FROM articles ORDER BY id LIMIT 100 OFFSET 0",
			wantArgs: nil,
		},
		{
			name:     "producto y emplacement",
			filter:   repository.ArticleFilter{ProduitID: "p1", EmplacementID: "e1"},
			wantSQL:  "SELECT id, code_article, produit_id, emplacement_id, quantite, date_peremption, commentaire, created_at, updated_at FROM articles WHERE produit_id = $1 AND emplacement_id = $2 ORDER BY id LIMIT 100 OFFSET 0",
			wantArgs: []any{"p1", "e1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := listArticlesQuery(tt.filter, 100, 0).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
				return
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestExpiringArticlesQuery(t *testing.T) {
	until := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	sql, args, err := expiringArticlesQuery(until).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE date_peremption IS NOT NULL AND date_peremption <= $1")
	assert.Contains(t, sql, "ORDER BY date_peremption, id")
	assert.Equal(t, []any{until}, args)
}

func TestMapWriteError(t *testing.T) {
	dup := fmt.Errorf("wrap: %w", &pgconn.PgError{Code: codeUniqueViolation})
	fk := &pgconn.PgError{Code: codeForeignKeyViolation}
	other := errors.New("conexión perdida")

	assert.ErrorIs(t, mapWriteError("insert article", dup), domain.ErrDuplicate)
	assert.ErrorIs(t, mapWriteError("insert article", dup), domain.ErrConflict)
	assert.ErrorIs(t, mapWriteError("insert article", fk), domain.ErrNotFound)
	assert.ErrorIs(t, mapWriteError("insert article", other), other)
	assert.NotErrorIs(t, mapWriteError("insert article", other), domain.ErrConflict)
}

func TestMapDeleteError(t *testing.T) {
	fk := &pgconn.PgError{Code: codeForeignKeyViolation}
	assert.ErrorIs(t, mapDeleteError("delete emplacement", fk), domain.ErrInUse)
	assert.False(t, isUniqueViolation(errors.New("23505 en texto no cuenta")))
}

func TestDatabaseURLWithIPv4_DSNNoURL(t *testing.T) {
	dsn := "host=localhost user=postgres dbname=ddb_stock"
	assert.Equal(t, dsn, databaseURLWithIPv4(dsn))
	assert.Equal(t, "postgres://u:p@127.0.0.1:5432/x", databaseURLWithIPv4("postgres://u:p@127.0.0.1:5432/x"))
}
