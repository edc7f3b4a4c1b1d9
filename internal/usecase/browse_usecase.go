package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/domain"
	"github.com/catalog-browse-service/internal/domain/repository"
	"github.com/catalog-browse-service/internal/pkg/errors"
	"github.com/catalog-browse-service/internal/pkg/metrics"
	"github.com/catalog-browse-service/internal/usecase/dto"
)

// browseSession is one mounted browse screen. Every field behind mu is
// mutated only under it, which serializes back signals and other events in
// arrival order. liveCtx is the mount-liveness token: it is created when
// the session is mounted and cancelled on unmount, and the async catalog
// load checks it before writing its result.
type browseSession struct {
	id        string
	catalogID string
	language  domain.LanguageCode // session override, "" = use preference
	config    *domain.CatalogConfig

	mu         sync.Mutex
	state      domain.BrowseState
	records    []domain.CatalogRecord
	loading    bool
	lastActive time.Time

	liveCtx context.Context
	cancel  context.CancelFunc
}

// BrowseUseCase owns all mounted sessions and drives the view state
// machine. It delegates record loading to the catalog usecase, language
// selection to the preference store and outward navigation to the
// navigation collaborator.
type BrowseUseCase struct {
	catalogUC  *CatalogUseCase
	prefRepo   repository.PreferenceRepository
	navigator  domain.Navigator
	logger     *zap.Logger
	sessionTTL time.Duration

	mu       sync.RWMutex
	sessions map[string]*browseSession
}

func NewBrowseUseCase(
	catalogUC *CatalogUseCase,
	prefRepo repository.PreferenceRepository,
	navigator domain.Navigator,
	logger *zap.Logger,
	sessionTTL time.Duration,
) *BrowseUseCase {
	return &BrowseUseCase{
		catalogUC:  catalogUC,
		prefRepo:   prefRepo,
		navigator:  navigator,
		logger:     logger,
		sessionTTL: sessionTTL,
		sessions:   make(map[string]*browseSession),
	}
}

// CreateSession mounts a browse screen. The catalog configuration is loaded
// synchronously (a screen without its category tree cannot render), the
// record set asynchronously; the view reports loading until it lands.
func (uc *BrowseUseCase) CreateSession(ctx context.Context, req dto.CreateSessionRequest) (*dto.SessionView, error) {
	cfg, ok := uc.catalogUC.GetConfig(ctx, req.CatalogID)
	if !ok {
		return nil, errors.ErrCatalogNotFound
	}

	var override domain.LanguageCode
	if req.Language != "" {
		override = domain.NormalizeLanguage(req.Language)
	}

	// The liveness token deliberately hangs off Background, not the
	// request context: the session outlives the mount request.
	liveCtx, cancel := context.WithCancel(context.Background())

	session := &browseSession{
		id:         uuid.New().String(),
		catalogID:  req.CatalogID,
		language:   override,
		config:     cfg,
		state:      domain.NewBrowseState(),
		loading:    true,
		lastActive: time.Now(),
		liveCtx:    liveCtx,
		cancel:     cancel,
	}

	uc.mu.Lock()
	uc.sessions[session.id] = session
	uc.mu.Unlock()
	metrics.ActiveSessions.Inc()

	go uc.loadRecords(session)

	uc.logger.Info("Browse session mounted",
		zap.String("session_id", session.id),
		zap.String("catalog_id", session.catalogID))

	session.mu.Lock()
	defer session.mu.Unlock()
	return uc.buildView(ctx, session, nil), nil
}

// loadRecords performs the deferred catalog load. If the session was
// unmounted while the load was outstanding the result is discarded with no
// observable side effect.
func (uc *BrowseUseCase) loadRecords(session *browseSession) {
	records, ok := uc.catalogUC.GetRecords(session.liveCtx, session.catalogID)
	if !ok {
		// Load failure and "no data" are the same empty state.
		records = nil
	}

	if session.liveCtx.Err() != nil {
		uc.logger.Debug("Discarding load result for unmounted session",
			zap.String("session_id", session.id))
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.records = records
	session.loading = false
}

// GetSession returns the current renderable snapshot.
func (uc *BrowseUseCase) GetSession(ctx context.Context, sessionID string) (*dto.SessionView, error) {
	session, err := uc.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.lastActive = time.Now()
	return uc.buildView(ctx, session, nil), nil
}

// HandleEvent applies exactly one state machine transition. Events on one
// session are processed strictly in arrival order under the session lock,
// so a rapid second back signal cannot skip a level. Guard violations are
// ignored no-ops: the filter state is never left half-updated.
func (uc *BrowseUseCase) HandleEvent(ctx context.Context, sessionID string, req dto.BrowseEventRequest) (*dto.SessionView, error) {
	session, err := uc.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.lastActive = time.Now()

	var directive *domain.NavigationDirective
	applied := false

	switch req.Type {
	case dto.EventSelectCategory:
		applied = session.state.SelectCategory(session.config.FindCategory(req.CategoryID))
	case dto.EventSelectSubCategory:
		applied = session.state.SelectSubCategory(req.SubCategoryID)
	case dto.EventSetFacet:
		applied = session.state.SetFacet(req.FacetKey, req.FacetValue)
	case dto.EventClearFacet:
		applied = session.state.ClearFacet(req.FacetKey)
	case dto.EventBack:
		if session.state.Back() {
			// Already at CategoryView: not an error, the screen itself
			// is left. The navigation collaborator owns what that means.
			directive = &domain.NavigationDirective{Screen: domain.ScreenLeave}
			uc.navigator.Navigate(domain.ScreenLeave, nil)
		}
		applied = true
	case dto.EventShowAll:
		applied = session.state.ShowAll()
	default:
		return nil, errors.ErrInvalidEvent
	}

	if applied {
		metrics.ObserveTransition(session.catalogID, req.Type, string(session.state.View))
	} else {
		uc.logger.Debug("Ignored browse event",
			zap.String("session_id", session.id),
			zap.String("event", req.Type),
			zap.String("view", string(session.state.View)))
	}

	return uc.buildView(ctx, session, directive), nil
}

// SelectRecord hands a record off to the detail screen. The projection is
// localized here, exactly once; the record must be visible in the current
// filtered list.
func (uc *BrowseUseCase) SelectRecord(ctx context.Context, sessionID, recordID string) (*dto.RecordSelection, error) {
	session, err := uc.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.lastActive = time.Now()

	if session.loading {
		return nil, errors.ErrCatalogStillLoading
	}
	if session.state.View != domain.ViewList {
		return nil, errors.ErrRecordNotFound
	}

	visible := domain.ApplyFilter(session.records, session.state.Filter, session.config.FacetMatchModes())
	for i := range visible {
		if visible[i].ID != recordID {
			continue
		}

		lang := uc.language(ctx, session)
		projection := domain.Project(&visible[i], lang, session.config.DescriptionPlaceholder)
		directive := domain.NavigationDirective{
			Screen: domain.ScreenRecordDetail,
			Params: map[string]interface{}{
				"catalog_id": session.catalogID,
				"record_id":  recordID,
			},
		}
		uc.navigator.Navigate(directive.Screen, directive.Params)

		return &dto.RecordSelection{
			Record:     projection,
			Navigation: directive,
		}, nil
	}

	return nil, errors.ErrRecordNotFound
}

// DestroySession unmounts a screen. The liveness token is cancelled first
// so an outstanding load cannot write into a dead session.
func (uc *BrowseUseCase) DestroySession(ctx context.Context, sessionID string) error {
	uc.mu.Lock()
	session, ok := uc.sessions[sessionID]
	if ok {
		delete(uc.sessions, sessionID)
	}
	uc.mu.Unlock()

	if !ok {
		return errors.ErrSessionNotFound
	}

	session.cancel()
	metrics.ActiveSessions.Dec()
	uc.logger.Info("Browse session unmounted", zap.String("session_id", sessionID))
	return nil
}

// StartJanitor expires idle sessions until ctx is done. Expiry is the same
// as an unmount.
func (uc *BrowseUseCase) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				uc.expireIdle()
			}
		}
	}()
}

func (uc *BrowseUseCase) expireIdle() {
	cutoff := time.Now().Add(-uc.sessionTTL)

	uc.mu.Lock()
	var expired []*browseSession
	for id, session := range uc.sessions {
		session.mu.Lock()
		idle := session.lastActive.Before(cutoff)
		session.mu.Unlock()
		if idle {
			delete(uc.sessions, id)
			expired = append(expired, session)
		}
	}
	uc.mu.Unlock()

	for _, session := range expired {
		session.cancel()
		metrics.ActiveSessions.Dec()
		uc.logger.Info("Browse session expired", zap.String("session_id", session.id))
	}
}

func (uc *BrowseUseCase) lookup(sessionID string) (*browseSession, error) {
	uc.mu.RLock()
	session, ok := uc.sessions[sessionID]
	uc.mu.RUnlock()
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	return session, nil
}

// language resolves the effective language: session override first, then
// the process-wide preference, then the default.
func (uc *BrowseUseCase) language(ctx context.Context, session *browseSession) domain.LanguageCode {
	if session.language != "" {
		return session.language
	}
	lang, err := uc.prefRepo.GetLanguage(ctx)
	if err != nil {
		return domain.DefaultLanguage
	}
	return lang
}

// buildView renders the session snapshot for its current view state.
// Callers must hold session.mu.
func (uc *BrowseUseCase) buildView(ctx context.Context, session *browseSession, directive *domain.NavigationDirective) *dto.SessionView {
	lang := uc.language(ctx, session)

	view := &dto.SessionView{
		SessionID:  session.id,
		CatalogID:  session.catalogID,
		Language:   string(lang),
		ViewState:  session.state.View,
		Loading:    session.loading,
		Navigation: directive,
	}

	if c := session.state.Filter.SelectedCategory; c != nil {
		view.SelectedCategory = c.ID
	}
	if s := session.state.Filter.SelectedSubCategory; s != nil {
		view.SelectedSubCategory = s.ID
	}
	if len(session.state.Filter.SelectedFacets) > 0 {
		facets := make(map[string]string, len(session.state.Filter.SelectedFacets))
		for k, v := range session.state.Filter.SelectedFacets {
			facets[k] = v
		}
		view.SelectedFacets = facets
	}

	switch session.state.View {
	case domain.ViewCategory:
		view.Categories = make([]dto.CategoryItem, 0, len(session.config.Categories))
		for i := range session.config.Categories {
			c := &session.config.Categories[i]
			view.Categories = append(view.Categories, dto.CategoryItem{
				ID:               c.ID,
				Label:            domain.ResolveLabel(c.Labels, lang),
				HasSubCategories: c.HasSubCategories,
			})
		}
	case domain.ViewSubCategory:
		c := session.state.Filter.SelectedCategory
		view.SubCategories = make([]dto.SubCategoryItem, 0, len(c.SubCategories))
		for i := range c.SubCategories {
			s := &c.SubCategories[i]
			view.SubCategories = append(view.SubCategories, dto.SubCategoryItem{
				ID:    s.ID,
				Label: domain.ResolveLabel(s.Labels, lang),
			})
		}
	case domain.ViewList:
		if session.loading {
			break
		}
		visible := domain.ApplyFilter(session.records, session.state.Filter, session.config.FacetMatchModes())
		view.Records = make([]dto.RecordItem, 0, len(visible))
		for i := range visible {
			r := &visible[i]
			item := dto.RecordItem{
				ID:          r.ID,
				Name:        domain.ResolveName(r, lang),
				Category:    r.Category,
				SubCategory: r.SubCategoryID(),
				Rating:      r.Rating,
			}
			if len(r.Images) > 0 {
				item.Image = r.Images[0]
			}
			view.Records = append(view.Records, item)
		}
	}

	return view
}
