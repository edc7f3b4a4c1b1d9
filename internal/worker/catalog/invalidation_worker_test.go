package catalog_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/domain"
	workercatalog "github.com/catalog-browse-service/internal/worker/catalog"
)

type mockStreamRepository struct {
	mock.Mock
}

func (m *mockStreamRepository) PublishCatalogUpdate(ctx context.Context, event domain.CatalogUpdateEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *mockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *mockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

type mockCacheRepository struct {
	mock.Mock
}

func (m *mockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockCacheRepository) GetRecords(ctx context.Context, catalogID string) ([]domain.CatalogRecord, error) {
	args := m.Called(ctx, catalogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogRecord), args.Error(1)
}

func (m *mockCacheRepository) SetRecords(ctx context.Context, catalogID string, records []domain.CatalogRecord, ttl time.Duration) error {
	args := m.Called(ctx, catalogID, records, ttl)
	return args.Error(0)
}

func (m *mockCacheRepository) InvalidateCatalog(ctx context.Context, catalogID string) error {
	args := m.Called(ctx, catalogID)
	return args.Error(0)
}

type mockCatalogSource struct {
	mock.Mock
}

func (m *mockCatalogSource) LoadConfig(ctx context.Context, catalogID string) (*domain.CatalogConfig, bool) {
	args := m.Called(ctx, catalogID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.CatalogConfig), args.Bool(1)
}

func (m *mockCatalogSource) LoadRecords(ctx context.Context, catalogID string) ([]domain.CatalogRecord, bool) {
	args := m.Called(ctx, catalogID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]domain.CatalogRecord), args.Bool(1)
}

func (m *mockCatalogSource) ListCatalogs(ctx context.Context) []string {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func updateMessage(t *testing.T, id, catalogID string) domain.StreamMessage {
	t.Helper()
	data, err := json.Marshal(domain.CatalogUpdateEvent{CatalogID: catalogID, Reason: "test"})
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

// runWorker drives Start over a closed stream of messages so it returns once
// every message has been handled.
func runWorker(t *testing.T, stream *mockStreamRepository, cache *mockCacheRepository, source *mockCatalogSource, msgs ...domain.StreamMessage) {
	t.Helper()

	ch := make(chan domain.StreamMessage, len(msgs))
	for _, m := range msgs {
		ch <- m
	}
	close(ch)

	stream.On("CreateConsumerGroup", mock.Anything, domain.CatalogUpdateStream, "test-group").Return(nil)
	stream.On("ConsumeStream", mock.Anything, domain.CatalogUpdateStream, "test-group", mock.Anything).
		Return((<-chan domain.StreamMessage)(ch), nil)

	w := workercatalog.NewInvalidationWorker(stream, cache, source, "test-group", 3, zap.NewNop())
	require.NoError(t, w.Start(context.Background()))
}

func TestInvalidationWorker_InvalidatesAndAcks(t *testing.T) {
	stream := &mockStreamRepository{}
	cache := &mockCacheRepository{}
	source := &mockCatalogSource{}

	cache.On("InvalidateCatalog", mock.Anything, "beaches").Return(nil)
	source.On("LoadRecords", mock.Anything, "beaches").Return([]domain.CatalogRecord{{ID: "marina"}}, true)
	stream.On("AckMessage", mock.Anything, domain.CatalogUpdateStream, "test-group", "1-0").Return(nil)

	runWorker(t, stream, cache, source, updateMessage(t, "1-0", "beaches"))

	cache.AssertExpectations(t)
	stream.AssertExpectations(t)
}

func TestInvalidationWorker_MalformedEventIsDropped(t *testing.T) {
	stream := &mockStreamRepository{}
	cache := &mockCacheRepository{}
	source := &mockCatalogSource{}

	stream.On("AckMessage", mock.Anything, domain.CatalogUpdateStream, "test-group", "1-0").Return(nil)

	runWorker(t, stream, cache, source, domain.StreamMessage{ID: "1-0", Data: "{{{"})

	cache.AssertNotCalled(t, "InvalidateCatalog", mock.Anything, mock.Anything)
	stream.AssertExpectations(t)
}

func TestInvalidationWorker_RetriesThenLeavesUnacked(t *testing.T) {
	stream := &mockStreamRepository{}
	cache := &mockCacheRepository{}
	source := &mockCatalogSource{}

	cache.On("InvalidateCatalog", mock.Anything, "beaches").Return(assert.AnError).Times(3)

	runWorker(t, stream, cache, source, updateMessage(t, "1-0", "beaches"))

	cache.AssertExpectations(t)
	stream.AssertNotCalled(t, "AckMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	source.AssertNotCalled(t, "LoadRecords", mock.Anything, mock.Anything)
}

func TestInvalidationWorker_BrokenUpdateStillAcked(t *testing.T) {
	stream := &mockStreamRepository{}
	cache := &mockCacheRepository{}
	source := &mockCatalogSource{}

	cache.On("InvalidateCatalog", mock.Anything, "beaches").Return(nil)
	source.On("LoadRecords", mock.Anything, "beaches").Return(nil, false)
	stream.On("AckMessage", mock.Anything, domain.CatalogUpdateStream, "test-group", "1-0").Return(nil)

	runWorker(t, stream, cache, source, updateMessage(t, "1-0", "beaches"))

	stream.AssertExpectations(t)
}
