package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/domain"
	"github.com/catalog-browse-service/internal/domain/repository"
	"github.com/catalog-browse-service/internal/pkg/metrics"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		metrics.ObserveCache("catalog", "miss")
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	metrics.ObserveCache("catalog", "hit")
	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	metrics.ObserveCache("catalog", "set")
	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	metrics.ObserveCache("catalog", "del")
	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

func recordsKey(catalogID string) string {
	return fmt.Sprintf("catalog:%s:records", catalogID)
}

// GetRecords returns cached records for a catalog, nil on miss.
func (r *cacheRepository) GetRecords(ctx context.Context, catalogID string) ([]domain.CatalogRecord, error) {
	data, err := r.Get(ctx, recordsKey(catalogID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var records []domain.CatalogRecord
	if err := json.Unmarshal(data, &records); err != nil {
		r.logger.Error("Failed to unmarshal records from cache",
			zap.String("catalog_id", catalogID),
			zap.Error(err))
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}

	return records, nil
}

// SetRecords caches a catalog's records.
func (r *cacheRepository) SetRecords(ctx context.Context, catalogID string, records []domain.CatalogRecord, ttl time.Duration) error {
	data, err := json.Marshal(records)
	if err != nil {
		r.logger.Error("Failed to marshal records",
			zap.String("catalog_id", catalogID),
			zap.Error(err))
		return fmt.Errorf("marshal records: %w", err)
	}

	return r.Set(ctx, recordsKey(catalogID), data, ttl)
}

// InvalidateCatalog drops every cached entry for a catalog.
func (r *cacheRepository) InvalidateCatalog(ctx context.Context, catalogID string) error {
	pattern := fmt.Sprintf("catalog:%s:*", catalogID)

	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := r.Delete(ctx, iter.Val()); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("Failed to scan cache keys",
			zap.String("pattern", pattern),
			zap.Error(err))
		return fmt.Errorf("cache scan error: %w", err)
	}

	return nil
}
