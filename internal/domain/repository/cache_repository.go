package repository

import (
	"context"
	"time"

	"github.com/catalog-browse-service/internal/domain"
)

// CacheRepository caches loaded catalog data between sessions.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetRecords returns cached records for a catalog, or nil on miss.
	GetRecords(ctx context.Context, catalogID string) ([]domain.CatalogRecord, error)

	// SetRecords caches a catalog's records.
	SetRecords(ctx context.Context, catalogID string, records []domain.CatalogRecord, ttl time.Duration) error

	// InvalidateCatalog drops all cached entries for a catalog.
	InvalidateCatalog(ctx context.Context, catalogID string) error
}
