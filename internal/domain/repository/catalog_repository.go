package repository

import (
	"context"

	"github.com/catalog-browse-service/internal/domain"
)

// CatalogSource produces the static dataset backing one browse screen.
// Both Load methods follow the bounded-result contract: any structural
// failure (absent dataset, malformed entries) yields an empty result and
// ok=false. Callers treat "no data" and "load failed" identically.
type CatalogSource interface {
	// LoadConfig returns the browse configuration for a catalog: its
	// category tree, facet vocabulary and display defaults.
	LoadConfig(ctx context.Context, catalogID string) (*domain.CatalogConfig, bool)

	// LoadRecords returns the catalog's records in source order.
	LoadRecords(ctx context.Context, catalogID string) ([]domain.CatalogRecord, bool)

	// ListCatalogs returns the ids of all known catalogs.
	ListCatalogs(ctx context.Context) []string
}
