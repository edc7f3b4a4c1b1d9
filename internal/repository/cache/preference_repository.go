package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/domain"
	"github.com/catalog-browse-service/internal/domain/repository"
)

const languageKey = "preferences:language"

// preferenceRepository persists the process-wide language selection in
// Redis. The value survives restarts; an unset or unreachable store reads
// as the default language.
type preferenceRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewPreferenceRepository(redis *Redis) repository.PreferenceRepository {
	return &preferenceRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *preferenceRepository) GetLanguage(ctx context.Context) (domain.LanguageCode, error) {
	val, err := r.client.Get(ctx, languageKey).Result()
	if err == redis.Nil {
		return domain.DefaultLanguage, nil
	}
	if err != nil {
		r.logger.Error("Failed to read language preference", zap.Error(err))
		return domain.DefaultLanguage, fmt.Errorf("preference get error: %w", err)
	}

	return domain.NormalizeLanguage(val), nil
}

func (r *preferenceRepository) SetLanguage(ctx context.Context, lang domain.LanguageCode) error {
	// No TTL: the selection persists until changed.
	if err := r.client.Set(ctx, languageKey, string(lang), 0).Err(); err != nil {
		r.logger.Error("Failed to store language preference", zap.Error(err))
		return fmt.Errorf("preference set error: %w", err)
	}

	r.logger.Debug("Language preference stored", zap.String("language", string(lang)))
	return nil
}
