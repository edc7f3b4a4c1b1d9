package catalog

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/domain"
	"github.com/catalog-browse-service/internal/domain/repository"
	"github.com/catalog-browse-service/internal/worker"
)

// InvalidationWorker consumes catalog update events and drops the cached
// record sets they refer to, then re-validates the catalog against its
// source so a broken update is noticed before a user hits it.
type InvalidationWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	cacheRepo  repository.CacheRepository
	source     repository.CatalogSource
	maxRetries int
	consumerID string
}

func NewInvalidationWorker(
	streamRepo repository.StreamRepository,
	cacheRepo repository.CacheRepository,
	source repository.CatalogSource,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *InvalidationWorker {
	return &InvalidationWorker{
		BaseWorker: worker.NewBaseWorker("catalog-invalidation", consumerGroup, logger),
		streamRepo: streamRepo,
		cacheRepo:  cacheRepo,
		source:     source,
		maxRetries: maxRetries,
		consumerID: "invalidator-" + uuid.New().String()[:8],
	}
}

// Start consumes the catalog update stream until ctx is done.
func (w *InvalidationWorker) Start(ctx context.Context) error {
	log := w.Logger()

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.CatalogUpdateStream, w.ConsumerGroup()); err != nil {
		return err
	}

	messages, err := w.streamRepo.ConsumeStream(ctx, domain.CatalogUpdateStream, w.ConsumerGroup(), w.consumerID)
	if err != nil {
		return err
	}

	log.Info("Invalidation worker started",
		zap.String("consumer", w.consumerID),
		zap.String("group", w.ConsumerGroup()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.StopChan():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

func (w *InvalidationWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	log := w.Logger()

	var event domain.CatalogUpdateEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		log.Warn("Malformed catalog update event, dropping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.cacheRepo.InvalidateCatalog(ctx, event.CatalogID); err == nil {
			break
		}
		log.Warn("Cache invalidation failed",
			zap.String("catalog_id", event.CatalogID),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	if err != nil {
		// Leave the message unacked for redelivery.
		log.Error("Giving up on cache invalidation",
			zap.String("catalog_id", event.CatalogID),
			zap.Error(err))
		return
	}

	// Re-validate the updated dataset. A failed load only warns: the API
	// already renders broken catalogs as empty.
	if _, ok := w.source.LoadRecords(ctx, event.CatalogID); !ok {
		log.Warn("Updated catalog failed validation",
			zap.String("catalog_id", event.CatalogID),
			zap.String("reason", event.Reason))
	}

	w.ack(ctx, msg.ID)
	log.Info("Catalog cache invalidated",
		zap.String("catalog_id", event.CatalogID),
		zap.String("reason", event.Reason))
}

func (w *InvalidationWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.CatalogUpdateStream, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message", zap.String("message_id", messageID), zap.Error(err))
	}
}
