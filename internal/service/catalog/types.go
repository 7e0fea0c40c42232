// Package catalog defines the read-only service catalog.
package catalog

// Service is a single catalog record.
type Service struct {
	ID          int    `json:"id" yaml:"id" db:"id" validate:"gt=0"`
	Name        string `json:"name" yaml:"name" db:"name" validate:"required"`
	Description string `json:"description" yaml:"description" db:"description"`
}

// Seed returns the built-in catalog records.
func Seed() []Service {
	return []Service{
		{ID: 1, Name: "Compute Engine", Description: "Virtual machines"},
		{ID: 2, Name: "Cloud Storage", Description: "Object storage service"},
		{ID: 3, Name: "Kubernetes Engine", Description: "Managed Kubernetes clusters"},
	}
}
