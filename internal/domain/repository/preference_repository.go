package repository

import (
	"context"

	"github.com/catalog-browse-service/internal/domain"
)

// PreferenceRepository is the external key-value store holding the
// process-wide language selection. The engine only consumes the current
// value; persistence across restarts belongs to the store.
type PreferenceRepository interface {
	// GetLanguage returns the selected language, or the default when unset.
	GetLanguage(ctx context.Context) (domain.LanguageCode, error)

	// SetLanguage persists the selected language.
	SetLanguage(ctx context.Context, lang domain.LanguageCode) error
}
