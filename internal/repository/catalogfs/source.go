package catalogfs

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/domain"
	"github.com/catalog-browse-service/internal/domain/repository"
)

// Layout: one directory per catalog under the root, holding config.json
// (category tree + facet vocabulary) and records.json (the dataset array).
const (
	configFile  = "config.json"
	recordsFile = "records.json"
)

type source struct {
	fsys   fs.FS
	logger *zap.Logger
}

// New returns a CatalogSource reading JSON catalogs from dir.
func New(dir string, logger *zap.Logger) repository.CatalogSource {
	return NewFromFS(os.DirFS(dir), logger)
}

// NewFromFS is the fs.FS variant, used by tests with fstest.MapFS.
func NewFromFS(fsys fs.FS, logger *zap.Logger) repository.CatalogSource {
	return &source{fsys: fsys, logger: logger}
}

// LoadConfig reads and validates a catalog's browse configuration. Any
// structural failure is absorbed into (nil, false); the caller renders an
// empty state either way.
func (s *source) LoadConfig(ctx context.Context, catalogID string) (*domain.CatalogConfig, bool) {
	data, err := fs.ReadFile(s.fsys, catalogID+"/"+configFile)
	if err != nil {
		s.logger.Warn("Catalog config not readable",
			zap.String("catalog_id", catalogID),
			zap.Error(err))
		return nil, false
	}

	var cfg domain.CatalogConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
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

// LoadRecords reads a catalog dataset. The dataset must be a JSON array and
// every entry must carry a unique id and a non-empty English name; anything
// else fails the whole load.
func (s *source) LoadRecords(ctx context.Context, catalogID string) ([]domain.CatalogRecord, bool) {
	data, err := fs.ReadFile(s.fsys, catalogID+"/"+recordsFile)
	if err != nil {
		s.logger.Warn("Catalog dataset not readable",
			zap.String("catalog_id", catalogID),
			zap.Error(err))
		return nil, false
	}

	var records []domain.CatalogRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("Catalog dataset is not a record array",
			zap.String("catalog_id", catalogID),
			zap.Error(err))
		return nil, false
	}

	if err := domain.ValidateRecords(records); err != nil {
		s.logger.Warn("Catalog dataset invalid",
			zap.String("catalog_id", catalogID),
			zap.Error(err))
		return nil, false
	}

	return records, true
}

// ListCatalogs returns every directory under the root that carries a config
// file, sorted for deterministic output.
func (s *source) ListCatalogs(ctx context.Context) []string {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		s.logger.Warn("Catalog root not readable", zap.Error(err))
		return nil
	}

	var ids []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := fs.Stat(s.fsys, e.Name()+"/"+configFile); err == nil {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids
}
