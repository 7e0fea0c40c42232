// Package catalog defines where catalog records come from.
package catalog

import "context"

// Source loads catalog records. It is called once at startup.
// Implemented by file.CatalogFile and pg.CatalogRepository.
type Source interface {
	Load(ctx context.Context) ([]Service, error)
}

// SeedSource serves the built-in records.
type SeedSource struct{}

func (SeedSource) Load(context.Context) ([]Service, error) {
	return Seed(), nil
}
