// Package catalog defines catalog errors.
package catalog

import "errors"

var (
	ErrNotFound       = errors.New("service not found")
	ErrInvalidCatalog = errors.New("invalid catalog")
)
