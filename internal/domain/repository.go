package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are opaque bytes so memory and Redis backends behave the same.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogRepository is a read-only source of catalog snapshots
type CatalogRepository interface {
	ListProjects(ctx context.Context) ([]CatalogItem, error)
	GetProject(ctx context.Context, id string) (*CatalogItem, error)
}
