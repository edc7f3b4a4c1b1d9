package domain

import "time"

// CatalogUpdateStream is the Redis stream carrying catalog change events.
const CatalogUpdateStream = "catalog:updates"

// StreamMessage is a raw message read from a stream.
type StreamMessage struct {
	ID   string
	Data string
}

// CatalogUpdateEvent signals that a catalog's backing data changed and any
// cached listings for it must be invalidated.
type CatalogUpdateEvent struct {
	CatalogID string    `json:"catalog_id"`
	Reason    string    `json:"reason,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
