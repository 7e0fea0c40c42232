// internal/repository/pg/catalog.go
package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/r2r72/fake-api/internal/service/catalog"
)

const selectServices = `SELECT id, name, description
	 FROM catalog.services
	 ORDER BY position, id`

// Querier is the subset of *pgxpool.Pool the repository uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// CatalogRepository reads catalog records. It never writes.
type CatalogRepository struct {
	db Querier
}

func NewCatalogRepository(db Querier) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Load(ctx context.Context) ([]catalog.Service, error) {
	rows, err := r.db.Query(ctx, selectServices)
	if err != nil {
		return nil, fmt.Errorf("query services: %w", err)
	}
	services, err := pgx.CollectRows(rows, pgx.RowToStructByName[catalog.Service])
	if err != nil {
		return nil, fmt.Errorf("scan services: %w", err)
	}
	return services, nil
}

// CatalogSource connects on Load, reads the catalog and disconnects
// before returning.
type CatalogSource struct {
	url string
}

func NewCatalogSource(url string) *CatalogSource {
	return &CatalogSource{url: url}
}

func (s *CatalogSource) Load(ctx context.Context) ([]catalog.Service, error) {
	db, err := NewDB(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("connect to catalog db: %w", err)
	}
	defer db.Close()

	return NewCatalogRepository(db).Load(ctx)
}
