package postgres

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/domain"
	"github.com/catalog-browse-service/internal/domain/repository"
)

// catalogSource serves catalogs from PostgreSQL. Configs and records are
// stored as JSONB documents; record order is the ingestion position. The
// bounded-result contract is the same as the file source: every failure,
// including a query timeout, collapses to (empty, false).
type catalogSource struct {
	db      *DB
	logger  *zap.Logger
	timeout time.Duration
}

// NewCatalogSource creates a PostgreSQL-backed CatalogSource. timeout caps
// each load so a slow database degrades to the empty state instead of
// hanging the screen.
func NewCatalogSource(db *DB, logger *zap.Logger, timeout time.Duration) repository.CatalogSource {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &catalogSource{
		db:      db,
		logger:  logger,
		timeout: timeout,
	}
}

func (s *catalogSource) LoadConfig(ctx context.Context, catalogID string) (*domain.CatalogConfig, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var raw []byte
	err := s.db.GetContext(ctx, &raw,
		`SELECT config FROM catalog_configs WHERE catalog_id = $1`, catalogID)
	if err != nil {
		s.logger.Warn("Failed to load catalog config",
			zap.String("catalog_id", catalogID),
			zap.Error(err))
		return nil, false
	}

	var cfg domain.CatalogConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		s.logger.Warn("Catalog config malformed",
			zap.String("catalog_id", catalogID),
			zap.Error(err))
		return nil, false
	}
	if cfg.ID == "" {
		cfg.ID = catalogID
	}

	if err := domain.ValidateConfig(&cfg); err != nil {
		s.logger.Warn("Catalog config invalid",
			zap.String("catalog_id", catalogID),
			zap.Error(err))
		return nil, false
	}

	return &cfg, true
}

func (s *catalogSource) LoadRecords(ctx context.Context, catalogID string) ([]domain.CatalogRecord, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var rows [][]byte
	err := s.db.SelectContext(ctx, &rows,
		`SELECT record FROM catalog_records WHERE catalog_id = $1 ORDER BY position`, catalogID)
	if err != nil {
		s.logger.Warn("Failed to load catalog records",
			zap.String("catalog_id", catalogID),
			zap.Error(err))
		return nil, false
	}

	records := make([]domain.CatalogRecord, 0, len(rows))
	for i, raw := range rows {
		var r domain.CatalogRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			s.logger.Warn("Catalog record malformed",
				zap.String("catalog_id", catalogID),
				zap.Int("position", i),
				zap.Error(err))
			return nil, false
		}
		records = append(records, r)
	}

	if err := domain.ValidateRecords(records); err != nil {
		s.logger.Warn("Catalog dataset invalid",
			zap.String("catalog_id", catalogID),
			zap.Error(err))
		return nil, false
	}

	return records, true
}

func (s *catalogSource) ListCatalogs(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var ids []string
	err := s.db.SelectContext(ctx, &ids,
		`SELECT catalog_id FROM catalog_configs ORDER BY catalog_id`)
	if err != nil {
		s.logger.Warn("Failed to list catalogs", zap.Error(err))
		return nil
	}
	return ids
}
