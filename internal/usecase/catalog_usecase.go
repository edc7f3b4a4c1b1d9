package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/domain"
	"github.com/catalog-browse-service/internal/domain/repository"
	"github.com/catalog-browse-service/internal/pkg/metrics"
	"github.com/catalog-browse-service/internal/usecase/dto"
)

// CatalogUseCase serves catalog configurations and record sets, with a
// cache-aside layer in front of the source. The source's bounded-result
// contract is preserved: a failed load surfaces as an empty, ok=false
// result, indistinguishable from a genuinely empty catalog.
type CatalogUseCase struct {
	source     repository.CatalogSource
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger
	cacheTTL   time.Duration
}

func NewCatalogUseCase(
	source repository.CatalogSource,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *CatalogUseCase {
	return &CatalogUseCase{
		source:     source,
		cacheRepo:  cacheRepo,
		streamRepo: streamRepo,
		logger:     logger,
		cacheTTL:   cacheTTL,
	}
}

// GetConfig loads a catalog's browse configuration.
func (uc *CatalogUseCase) GetConfig(ctx context.Context, catalogID string) (*domain.CatalogConfig, bool) {
	return uc.source.LoadConfig(ctx, catalogID)
}

// GetRecords returns a catalog's records, cache first. Cache failures are
// logged and degrade to a source load; they never fail the request.
func (uc *CatalogUseCase) GetRecords(ctx context.Context, catalogID string) ([]domain.CatalogRecord, bool) {
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetRecords(ctx, catalogID)
		if err != nil {
			uc.logger.Warn("Record cache read failed, falling back to source",
				zap.String("catalog_id", catalogID),
				zap.Error(err))
		} else if cached != nil {
			return cached, true
		}
	}

	start := time.Now()
	records, ok := uc.source.LoadRecords(ctx, catalogID)
	metrics.ObserveLoad(catalogID, "source", time.Since(start))
	if !ok {
		return nil, false
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetRecords(ctx, catalogID, records, uc.cacheTTL); err != nil {
			uc.logger.Warn("Record cache write failed",
				zap.String("catalog_id", catalogID),
				zap.Error(err))
		}
	}

	return records, true
}

// ListRecords returns the merged all-categories listing of a catalog. When
// the catalog is configured for rating order the result is sorted by rating
// descending (missing rating counts as 0, ties keep source order). The
// cached slice is never mutated; sorting works on a copy.
func (uc *CatalogUseCase) ListRecords(ctx context.Context, catalogID string) ([]domain.CatalogRecord, bool) {
	cfg, ok := uc.GetConfig(ctx, catalogID)
	if !ok {
		return nil, false
	}

	records, ok := uc.GetRecords(ctx, catalogID)
	if !ok {
		return nil, false
	}

	if cfg.SortByRating {
		sorted := make([]domain.CatalogRecord, len(records))
		copy(sorted, records)
		domain.SortByRating(sorted)
		return sorted, true
	}

	return records, true
}

// ListCatalogs returns the localized catalog directory.
func (uc *CatalogUseCase) ListCatalogs(ctx context.Context, lang domain.LanguageCode) []dto.CatalogSummary {
	ids := uc.source.ListCatalogs(ctx)

	summaries := make([]dto.CatalogSummary, 0, len(ids))
	for _, id := range ids {
		cfg, ok := uc.source.LoadConfig(ctx, id)
		if !ok {
			// Broken catalogs are skipped, not fatal for the directory.
			continue
		}
		summaries = append(summaries, dto.CatalogSummary{
			ID:    cfg.ID,
			Label: domain.ResolveLabel(cfg.Labels, lang),
		})
	}
	return summaries
}

// NotifyUpdated publishes a catalog update event for the invalidation
// worker and drops the local cache entry right away.
func (uc *CatalogUseCase) NotifyUpdated(ctx context.Context, catalogID, reason string) error {
	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.InvalidateCatalog(ctx, catalogID); err != nil {
			uc.logger.Warn("Failed to invalidate catalog cache",
				zap.String("catalog_id", catalogID),
				zap.Error(err))
		}
	}

	if uc.streamRepo == nil {
		return nil
	}

	event := domain.CatalogUpdateEvent{
		CatalogID: catalogID,
		Reason:    reason,
		UpdatedAt: time.Now(),
	}
	if err := uc.streamRepo.PublishCatalogUpdate(ctx, event); err != nil {
		uc.logger.Error("Failed to publish catalog update",
			zap.String("catalog_id", catalogID),
			zap.Error(err))
		return err
	}

	return nil
}
