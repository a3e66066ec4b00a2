package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lumo/storefront/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileRepository serves a catalog loaded from a YAML or JSON seed file.
// The file is read once; the snapshot is immutable afterwards.
type FileRepository struct {
	items []domain.CatalogItem
}

// NewFileRepository reads and resolves the seed file at path
func NewFileRepository(path string, opts MapperOptions) (*FileRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	records, err := ParseRecords(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	return &FileRepository{items: ToCatalogItems(records, opts)}, nil
}

// ParseRecords decodes a YAML (or JSON, which is valid YAML) list of projects.
// The document may be a bare list or a mapping with a "projects" key.
func ParseRecords(data []byte) ([]ProjectRecord, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if m, ok := doc.(map[string]interface{}); ok {
		doc = m["projects"]
	}

	list, ok := doc.([]interface{})
	if !ok {
		if doc == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("expected a list of projects, got %T", doc)
	}

	// Round-trip through JSON so both formats share ProjectRecord's decoding
	jsonData, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}

	var records []ProjectRecord
	if err := json.Unmarshal(jsonData, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListProjects returns a copy of the catalog snapshot
func (r *FileRepository) ListProjects(ctx context.Context) ([]domain.CatalogItem, error) {
	items := make([]domain.CatalogItem, len(r.items))
	copy(items, r.items)
	return items, nil
}

// GetProject returns one project by id
func (r *FileRepository) GetProject(ctx context.Context, id string) (*domain.CatalogItem, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, domain.ErrProjectNotFound
}
