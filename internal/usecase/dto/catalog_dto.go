package dto

// CatalogSummary is one entry of the catalog listing.
type CatalogSummary struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SetLanguageRequest updates the process-wide language preference.
type SetLanguageRequest struct {
	Language string `json:"language" validate:"required"`
}

// LanguageResponse reports the current language preference.
type LanguageResponse struct {
	Language string `json:"language"`
}

// RefreshCatalogRequest publishes a catalog update event.
type RefreshCatalogRequest struct {
	Reason string `json:"reason,omitempty"`
}
