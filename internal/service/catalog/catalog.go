// Package catalog provides the read-only service catalog.
package catalog

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type records struct {
	Services []Service `validate:"unique=ID,dive"`
}

// Catalog is an ordered, immutable set of services.
// It is safe for concurrent use because nothing mutates it after New.
type Catalog struct {
	services []Service
}

// New validates records and builds a Catalog from a copy of them.
// Ids must be positive and unique, names non-empty.
func New(services []Service) (*Catalog, error) {
	if err := validate.Struct(records{Services: services}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	return &Catalog{services: append([]Service(nil), services...)}, nil
}

// Open loads records from src and builds a Catalog.
func Open(ctx context.Context, src Source) (*Catalog, error) {
	services, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return New(services)
}

// List returns every service in catalog order.
func (c *Catalog) List() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// Get returns the first service with the given id.
func (c *Catalog) Get(id int) (Service, error) {
	for _, svc := range c.services {
		if svc.ID == id {
			return svc, nil
		}
	}
	return Service{}, ErrNotFound
}

func (c *Catalog) Len() int {
	return len(c.services)
}
