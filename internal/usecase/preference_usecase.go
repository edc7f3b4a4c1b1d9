package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/domain"
	"github.com/catalog-browse-service/internal/domain/repository"
	"github.com/catalog-browse-service/internal/pkg/errors"
)

// PreferenceUseCase exposes the process-wide language selection. The engine
// only consumes the value; the Redis-backed store owns persistence.
type PreferenceUseCase struct {
	prefRepo repository.PreferenceRepository
	logger   *zap.Logger
}

func NewPreferenceUseCase(prefRepo repository.PreferenceRepository, logger *zap.Logger) *PreferenceUseCase {
	return &PreferenceUseCase{
		prefRepo: prefRepo,
		logger:   logger,
	}
}

// GetLanguage returns the current selection. Store errors degrade to the
// default language rather than failing the screen.
func (uc *PreferenceUseCase) GetLanguage(ctx context.Context) domain.LanguageCode {
	lang, err := uc.prefRepo.GetLanguage(ctx)
	if err != nil {
		uc.logger.Warn("Language preference unavailable, using default", zap.Error(err))
		return domain.DefaultLanguage
	}
	return lang
}

// SetLanguage updates the selection. Only codes from the closed supported
// set are accepted.
func (uc *PreferenceUseCase) SetLanguage(ctx context.Context, raw string) (domain.LanguageCode, error) {
	lang := domain.LanguageCode(raw)
	if !domain.IsSupportedLanguage(lang) {
		return "", errors.ErrInvalidLanguage
	}

	if err := uc.prefRepo.SetLanguage(ctx, lang); err != nil {
		return "", err
	}
	return lang, nil
}
