package errors

import "net/http"

var (
	ErrCatalogNotFound = New(
		"CATALOG_NOT_FOUND",
		"Catalog not found",
		http.StatusNotFound,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Browse session not found or expired",
		http.StatusNotFound,
	)

	ErrRecordNotFound = New(
		"RECORD_NOT_FOUND",
		"Record not found in the current view",
		http.StatusNotFound,
	)

	ErrInvalidEvent = New(
		"INVALID_EVENT",
		"Unknown browse event type",
		http.StatusBadRequest,
	)

	ErrInvalidLanguage = New(
		"INVALID_LANGUAGE",
		"Unsupported language code",
		http.StatusBadRequest,
	)

	ErrCatalogStillLoading = New(
		"CATALOG_LOADING",
		"Catalog is still loading",
		http.StatusConflict,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
