package repository

import (
	"context"

	"github.com/catalog-browse-service/internal/domain"
)

// StreamRepository carries catalog update events between the API and the
// invalidation worker.
type StreamRepository interface {
	// PublishCatalogUpdate appends an update event to the catalog stream.
	PublishCatalogUpdate(ctx context.Context, event domain.CatalogUpdateEvent) error

	// CreateConsumerGroup creates the consumer group for a stream if it
	// does not exist yet.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeStream reads messages via a consumer group until ctx is done.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage acknowledges a processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error
}
