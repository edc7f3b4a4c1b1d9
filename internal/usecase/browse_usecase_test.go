package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/domain"
	"github.com/catalog-browse-service/internal/pkg/errors"
	"github.com/catalog-browse-service/internal/usecase"
	"github.com/catalog-browse-service/internal/usecase/dto"
)

// MockPreferenceRepository is a mock of PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) GetLanguage(ctx context.Context) (domain.LanguageCode, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.LanguageCode), args.Error(1)
}

func (m *MockPreferenceRepository) SetLanguage(ctx context.Context, lang domain.LanguageCode) error {
	args := m.Called(ctx, lang)
	return args.Error(0)
}

// recordingNavigator captures outward navigation calls.
type recordingNavigator struct {
	mu    sync.Mutex
	calls []domain.NavigationDirective
}

func (n *recordingNavigator) Navigate(screen string, params map[string]interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, domain.NavigationDirective{Screen: screen, Params: params})
}

func (n *recordingNavigator) last() (domain.NavigationDirective, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.calls) == 0 {
		return domain.NavigationDirective{}, false
	}
	return n.calls[len(n.calls)-1], true
}

func stayConfig() *domain.CatalogConfig {
	return &domain.CatalogConfig{
		ID:     "stay",
		Labels: map[domain.LanguageCode]string{"en": "Places to Stay"},
		Categories: []domain.Category{
			{
				ID:               "Hotels",
				Labels:           map[domain.LanguageCode]string{"en": "Hotels", "ta": "ஹோட்டல்கள்"},
				HasSubCategories: true,
				SubCategories: []domain.SubCategory{
					{ID: "Budget Hotels", Labels: map[domain.LanguageCode]string{"en": "Budget Hotels"}},
					{ID: "Luxury Hotels", Labels: map[domain.LanguageCode]string{"en": "Luxury Hotels"}},
				},
			},
			{
				ID:     "Hostel",
				Labels: map[domain.LanguageCode]string{"en": "Hostel"},
			},
		},
		Facets: []domain.FacetConfig{
			{Key: "crowdLevel", MatchMode: domain.MatchContains},
			{Key: "priceRange", MatchMode: domain.MatchExact},
		},
	}
}

func stayRecords() []domain.CatalogRecord {
	budget := "Budget Hotels"
	luxury := "Luxury Hotels"
	return []domain.CatalogRecord{
		{
			ID:              "budget-inn",
			Category:        "Hotels",
			SubCategory:     &budget,
			LocalizedName:   map[domain.LanguageCode]string{"en": "Budget Inn"},
			FacetAttributes: map[string]string{"priceRange": "$", "crowdLevel": "Usually Low"},
		},
		{
			ID:              "grand-palace",
			Category:        "Hotels",
			SubCategory:     &luxury,
			LocalizedName:   map[domain.LanguageCode]string{"en": "Grand Palace", "ta": "கிராண்ட் பேலஸ்"},
			FacetAttributes: map[string]string{"priceRange": "$$$", "crowdLevel": "High in season"},
			Images:          []string{"https://example.com/palace.jpg"},
		},
		{
			ID:              "backpacker-stop",
			Category:        "Hostel",
			LocalizedName:   map[domain.LanguageCode]string{"en": "Backpacker Stop"},
			FacetAttributes: map[string]string{"priceRange": "$"},
		},
	}
}

type browseFixture struct {
	uc        *usecase.BrowseUseCase
	source    *MockCatalogSource
	pref      *MockPreferenceRepository
	navigator *recordingNavigator
}

func newBrowseFixture(t *testing.T) *browseFixture {
	t.Helper()

	source := &MockCatalogSource{}
	source.On("LoadConfig", mock.Anything, "stay").Return(stayConfig(), true)
	source.On("LoadConfig", mock.Anything, "missing").Return(nil, false)
	source.On("LoadRecords", mock.Anything, "stay").Return(stayRecords(), true)

	pref := &MockPreferenceRepository{}
	pref.On("GetLanguage", mock.Anything).Return(domain.LangEnglish, nil).Maybe()

	navigator := &recordingNavigator{}
	logger := zap.NewNop()
	catalogUC := usecase.NewCatalogUseCase(source, nil, nil, logger, time.Minute)

	return &browseFixture{
		uc:        usecase.NewBrowseUseCase(catalogUC, pref, navigator, logger, 30*time.Minute),
		source:    source,
		pref:      pref,
		navigator: navigator,
	}
}

// mountLoaded mounts a session and waits for the deferred record load.
func mountLoaded(t *testing.T, f *browseFixture) string {
	t.Helper()
	ctx := context.Background()

	view, err := f.uc.CreateSession(ctx, dto.CreateSessionRequest{CatalogID: "stay"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		v, err := f.uc.GetSession(ctx, view.SessionID)
		return err == nil && !v.Loading
	}, time.Second, 5*time.Millisecond)

	return view.SessionID
}

func event(t *testing.T, f *browseFixture, sessionID string, req dto.BrowseEventRequest) *dto.SessionView {
	t.Helper()
	view, err := f.uc.HandleEvent(context.Background(), sessionID, req)
	require.NoError(t, err)
	return view
}

func TestBrowseUseCase_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("mounts at the category grid", func(t *testing.T) {
		f := newBrowseFixture(t)

		view, err := f.uc.CreateSession(ctx, dto.CreateSessionRequest{CatalogID: "stay"})
		require.NoError(t, err)

		assert.NotEmpty(t, view.SessionID)
		assert.Equal(t, domain.ViewCategory, view.ViewState)
		require.Len(t, view.Categories, 2)
		assert.Equal(t, "Hotels", view.Categories[0].ID)
		assert.True(t, view.Categories[0].HasSubCategories)
		assert.False(t, view.Categories[1].HasSubCategories)
	})

	t.Run("unknown catalog", func(t *testing.T) {
		f := newBrowseFixture(t)

		_, err := f.uc.CreateSession(ctx, dto.CreateSessionRequest{CatalogID: "missing"})
		assert.ErrorIs(t, err, errors.ErrCatalogNotFound)
	})

	t.Run("session language override wins over the preference", func(t *testing.T) {
		f := newBrowseFixture(t)

		view, err := f.uc.CreateSession(ctx, dto.CreateSessionRequest{CatalogID: "stay", Language: "TA"})
		require.NoError(t, err)

		assert.Equal(t, "ta", view.Language)
		assert.Equal(t, "ஹோட்டல்கள்", view.Categories[0].Label)
	})
}

// The full nested flow: category grid, sub-category grid, list, then back out
// level by level. Each back signal undoes exactly one step.
func TestBrowseUseCase_NestedFlow(t *testing.T) {
	f := newBrowseFixture(t)
	id := mountLoaded(t, f)

	view := event(t, f, id, dto.BrowseEventRequest{Type: dto.EventSelectCategory, CategoryID: "Hotels"})
	assert.Equal(t, domain.ViewSubCategory, view.ViewState)
	require.Len(t, view.SubCategories, 2)
	assert.Equal(t, "Budget Hotels", view.SubCategories[0].ID)

	view = event(t, f, id, dto.BrowseEventRequest{Type: dto.EventSelectSubCategory, SubCategoryID: "Luxury Hotels"})
	assert.Equal(t, domain.ViewList, view.ViewState)
	require.Len(t, view.Records, 1)
	assert.Equal(t, "grand-palace", view.Records[0].ID)
	assert.Equal(t, "https://example.com/palace.jpg", view.Records[0].Image)

	view = event(t, f, id, dto.BrowseEventRequest{Type: dto.EventBack})
	assert.Equal(t, domain.ViewSubCategory, view.ViewState)
	assert.Empty(t, view.SelectedSubCategory)
	assert.Equal(t, "Hotels", view.SelectedCategory)
	assert.Nil(t, view.Navigation)

	view = event(t, f, id, dto.BrowseEventRequest{Type: dto.EventBack})
	assert.Equal(t, domain.ViewCategory, view.ViewState)
	assert.Empty(t, view.SelectedCategory)

	// Back on the category grid leaves the screen.
	view = event(t, f, id, dto.BrowseEventRequest{Type: dto.EventBack})
	require.NotNil(t, view.Navigation)
	assert.Equal(t, domain.ScreenLeave, view.Navigation.Screen)

	last, ok := f.navigator.last()
	require.True(t, ok)
	assert.Equal(t, domain.ScreenLeave, last.Screen)
}

func TestBrowseUseCase_DirectFlowWithFacets(t *testing.T) {
	f := newBrowseFixture(t)
	id := mountLoaded(t, f)

	view := event(t, f, id, dto.BrowseEventRequest{Type: dto.EventSelectCategory, CategoryID: "Hostel"})
	assert.Equal(t, domain.ViewList, view.ViewState)
	require.Len(t, view.Records, 1)
	assert.Equal(t, "backpacker-stop", view.Records[0].ID)

	view = event(t, f, id, dto.BrowseEventRequest{Type: dto.EventSetFacet, FacetKey: "priceRange", FacetValue: "$$$"})
	assert.Equal(t, domain.ViewList, view.ViewState)
	assert.Empty(t, view.Records)
	assert.Equal(t, map[string]string{"priceRange": "$$$"}, view.SelectedFacets)

	view = event(t, f, id, dto.BrowseEventRequest{Type: dto.EventClearFacet, FacetKey: "priceRange"})
	require.Len(t, view.Records, 1)

	view = event(t, f, id, dto.BrowseEventRequest{Type: dto.EventShowAll})
	assert.Equal(t, domain.ViewCategory, view.ViewState)
	assert.Empty(t, view.SelectedCategory)
	assert.Empty(t, view.SelectedFacets)
}

func TestBrowseUseCase_ContainsFacet(t *testing.T) {
	f := newBrowseFixture(t)
	id := mountLoaded(t, f)

	event(t, f, id, dto.BrowseEventRequest{Type: dto.EventSelectCategory, CategoryID: "Hotels"})
	event(t, f, id, dto.BrowseEventRequest{Type: dto.EventSelectSubCategory, SubCategoryID: "Luxury Hotels"})

	view := event(t, f, id, dto.BrowseEventRequest{Type: dto.EventSetFacet, FacetKey: "crowdLevel", FacetValue: "High"})
	require.Len(t, view.Records, 1)
	assert.Equal(t, "grand-palace", view.Records[0].ID)
}

func TestBrowseUseCase_HandleEvent_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown event type", func(t *testing.T) {
		f := newBrowseFixture(t)
		id := mountLoaded(t, f)

		_, err := f.uc.HandleEvent(ctx, id, dto.BrowseEventRequest{Type: "teleport"})
		assert.ErrorIs(t, err, errors.ErrInvalidEvent)
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newBrowseFixture(t)

		_, err := f.uc.HandleEvent(ctx, "nope", dto.BrowseEventRequest{Type: dto.EventBack})
		assert.ErrorIs(t, err, errors.ErrSessionNotFound)
	})

	t.Run("guard violation is a silent no-op", func(t *testing.T) {
		f := newBrowseFixture(t)
		id := mountLoaded(t, f)

		view, err := f.uc.HandleEvent(ctx, id, dto.BrowseEventRequest{Type: dto.EventSelectSubCategory, SubCategoryID: "Luxury Hotels"})
		require.NoError(t, err)
		assert.Equal(t, domain.ViewCategory, view.ViewState)
		assert.Empty(t, view.SelectedSubCategory)
	})
}

func TestBrowseUseCase_SelectRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("hands the localized projection to the detail screen", func(t *testing.T) {
		f := newBrowseFixture(t)
		id := mountLoaded(t, f)

		event(t, f, id, dto.BrowseEventRequest{Type: dto.EventSelectCategory, CategoryID: "Hotels"})
		event(t, f, id, dto.BrowseEventRequest{Type: dto.EventSelectSubCategory, SubCategoryID: "Luxury Hotels"})

		selection, err := f.uc.SelectRecord(ctx, id, "grand-palace")
		require.NoError(t, err)

		assert.Equal(t, "grand-palace", selection.Record.ID)
		assert.Equal(t, "Grand Palace", selection.Record.Name)
		assert.Equal(t, domain.ScreenRecordDetail, selection.Navigation.Screen)
		assert.Equal(t, "grand-palace", selection.Navigation.Params["record_id"])

		last, ok := f.navigator.last()
		require.True(t, ok)
		assert.Equal(t, domain.ScreenRecordDetail, last.Screen)
	})

	t.Run("record filtered out of the current list", func(t *testing.T) {
		f := newBrowseFixture(t)
		id := mountLoaded(t, f)

		event(t, f, id, dto.BrowseEventRequest{Type: dto.EventSelectCategory, CategoryID: "Hostel"})

		_, err := f.uc.SelectRecord(ctx, id, "grand-palace")
		assert.ErrorIs(t, err, errors.ErrRecordNotFound)
	})

	t.Run("outside the list view", func(t *testing.T) {
		f := newBrowseFixture(t)
		id := mountLoaded(t, f)

		_, err := f.uc.SelectRecord(ctx, id, "grand-palace")
		assert.ErrorIs(t, err, errors.ErrRecordNotFound)
	})

	t.Run("catalog still loading", func(t *testing.T) {
		source := &MockCatalogSource{}
		source.On("LoadConfig", mock.Anything, "stay").Return(stayConfig(), true)

		release := make(chan struct{})
		source.On("LoadRecords", mock.Anything, "stay").
			Run(func(mock.Arguments) { <-release }).
			Return(stayRecords(), true)
		defer close(release)

		pref := &MockPreferenceRepository{}
		pref.On("GetLanguage", mock.Anything).Return(domain.LangEnglish, nil).Maybe()

		logger := zap.NewNop()
		catalogUC := usecase.NewCatalogUseCase(source, nil, nil, logger, time.Minute)
		uc := usecase.NewBrowseUseCase(catalogUC, pref, &recordingNavigator{}, logger, 30*time.Minute)

		view, err := uc.CreateSession(ctx, dto.CreateSessionRequest{CatalogID: "stay"})
		require.NoError(t, err)
		require.True(t, view.Loading)

		_, err = uc.HandleEvent(ctx, view.SessionID, dto.BrowseEventRequest{Type: dto.EventSelectCategory, CategoryID: "Hostel"})
		require.NoError(t, err)

		_, err = uc.SelectRecord(ctx, view.SessionID, "backpacker-stop")
		assert.ErrorIs(t, err, errors.ErrCatalogStillLoading)
	})
}

func TestBrowseUseCase_DestroySession(t *testing.T) {
	ctx := context.Background()

	t.Run("unmounts and forgets the session", func(t *testing.T) {
		f := newBrowseFixture(t)
		id := mountLoaded(t, f)

		require.NoError(t, f.uc.DestroySession(ctx, id))

		_, err := f.uc.GetSession(ctx, id)
		assert.ErrorIs(t, err, errors.ErrSessionNotFound)
		assert.ErrorIs(t, f.uc.DestroySession(ctx, id), errors.ErrSessionNotFound)
	})

	t.Run("cancels an outstanding load", func(t *testing.T) {
		source := &MockCatalogSource{}
		source.On("LoadConfig", mock.Anything, "stay").Return(stayConfig(), true)

		release := make(chan struct{})
		source.On("LoadRecords", mock.Anything, "stay").
			Run(func(mock.Arguments) { <-release }).
			Return(stayRecords(), true)

		pref := &MockPreferenceRepository{}
		pref.On("GetLanguage", mock.Anything).Return(domain.LangEnglish, nil).Maybe()

		logger := zap.NewNop()
		catalogUC := usecase.NewCatalogUseCase(source, nil, nil, logger, time.Minute)
		uc := usecase.NewBrowseUseCase(catalogUC, pref, &recordingNavigator{}, logger, 30*time.Minute)

		view, err := uc.CreateSession(ctx, dto.CreateSessionRequest{CatalogID: "stay"})
		require.NoError(t, err)
		require.True(t, view.Loading)

		require.NoError(t, uc.DestroySession(ctx, view.SessionID))
		close(release)

		// The late result must be discarded, not resurrect the session.
		assert.Never(t, func() bool {
			_, err := uc.GetSession(ctx, view.SessionID)
			return err == nil
		}, 100*time.Millisecond, 10*time.Millisecond)
	})
}

func TestBrowseUseCase_LanguageResolution(t *testing.T) {
	ctx := context.Background()

	t.Run("preference drives the view language", func(t *testing.T) {
		f := newBrowseFixture(t)
		f.pref.ExpectedCalls = nil
		f.pref.On("GetLanguage", mock.Anything).Return(domain.LangTamil, nil)

		id := mountLoaded(t, f)
		view, err := f.uc.GetSession(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, "ta", view.Language)
		assert.Equal(t, "ஹோட்டல்கள்", view.Categories[0].Label)
	})

	t.Run("preference store failure falls back to the default", func(t *testing.T) {
		f := newBrowseFixture(t)
		f.pref.ExpectedCalls = nil
		f.pref.On("GetLanguage", mock.Anything).Return(domain.LanguageCode(""), assert.AnError)

		id := mountLoaded(t, f)
		view, err := f.uc.GetSession(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, string(domain.DefaultLanguage), view.Language)
	})
}
