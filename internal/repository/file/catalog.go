// Package file reads the catalog from a YAML document on disk.
package file

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/r2r72/fake-api/internal/service/catalog"
)

// Document is the on-disk layout:
//
//	services:
//	  - id: 1
//	    name: Compute Engine
//	    description: Virtual machines
type Document struct {
	Services []catalog.Service `yaml:"services"`
}

type CatalogFile struct {
	path string
}

func NewCatalogFile(path string) *CatalogFile {
	return &CatalogFile{path: path}
}

func (f *CatalogFile) Load(_ context.Context) ([]catalog.Service, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return Parse(data)
}

// Parse decodes a catalog document. Unknown fields are rejected.
func Parse(data []byte) ([]catalog.Service, error) {
	var doc Document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return doc.Services, nil
}
