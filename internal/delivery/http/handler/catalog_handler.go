package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/domain"
	"github.com/catalog-browse-service/internal/pkg/errors"
	"github.com/catalog-browse-service/internal/pkg/utils"
	"github.com/catalog-browse-service/internal/usecase"
	"github.com/catalog-browse-service/internal/usecase/dto"
)

// CatalogHandler exposes the catalog directory and the merged record
// listings, independent of any browse session.
type CatalogHandler struct {
	catalogUC *usecase.CatalogUseCase
	prefUC    *usecase.PreferenceUseCase
	logger    *zap.Logger
}

func NewCatalogHandler(catalogUC *usecase.CatalogUseCase, prefUC *usecase.PreferenceUseCase, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: catalogUC,
		prefUC:    prefUC,
		logger:    logger,
	}
}

// language resolves the display language: explicit query param first, then
// the stored preference.
func (h *CatalogHandler) language(c *fiber.Ctx) domain.LanguageCode {
	if raw := c.Query("language"); raw != "" {
		return domain.NormalizeLanguage(raw)
	}
	return h.prefUC.GetLanguage(c.Context())
}

// List returns the localized catalog directory
// @Summary List catalogs
// @Tags catalogs
// @Produce json
// @Param language query string false "language code"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/catalogs [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	summaries := h.catalogUC.ListCatalogs(c.Context(), h.language(c))

	return utils.SendSuccess(c, fiber.Map{
		"catalogs": summaries,
	}, &utils.Meta{
		Total: len(summaries),
	})
}

// GetCategories returns a catalog's localized category tree
// @Summary Catalog categories
// @Tags catalogs
// @Produce json
// @Param id path string true "catalog id"
// @Param language query string false "language code"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/catalogs/{id}/categories [get]
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	cfg, ok := h.catalogUC.GetConfig(c.Context(), c.Params("id"))
	if !ok {
		return utils.SendError(c, errors.ErrCatalogNotFound)
	}

	lang := h.language(c)
	categories := make([]fiber.Map, 0, len(cfg.Categories))
	for i := range cfg.Categories {
		cat := &cfg.Categories[i]
		subs := make([]dto.SubCategoryItem, 0, len(cat.SubCategories))
		for j := range cat.SubCategories {
			s := &cat.SubCategories[j]
			subs = append(subs, dto.SubCategoryItem{
				ID:    s.ID,
				Label: domain.ResolveLabel(s.Labels, lang),
			})
		}
		categories = append(categories, fiber.Map{
			"id":                 cat.ID,
			"label":              domain.ResolveLabel(cat.Labels, lang),
			"has_sub_categories": cat.HasSubCategories,
			"sub_categories":     subs,
		})
	}

	return utils.SendSuccess(c, fiber.Map{
		"categories": categories,
	}, &utils.Meta{
		Total: len(categories),
	})
}

// GetRecords returns the merged all-categories listing of a catalog
// @Summary Catalog records
// @Tags catalogs
// @Produce json
// @Param id path string true "catalog id"
// @Param language query string false "language code"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/catalogs/{id}/records [get]
func (h *CatalogHandler) GetRecords(c *fiber.Ctx) error {
	catalogID := c.Params("id")
	records, ok := h.catalogUC.ListRecords(c.Context(), catalogID)
	if !ok {
		// Load failure renders as the empty state, same as no data.
		records = nil
	}

	lang := h.language(c)
	items := make([]dto.RecordItem, 0, len(records))
	for i := range records {
		r := &records[i]
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
		items = append(items, item)
	}

	return utils.SendSuccess(c, fiber.Map{
		"records": items,
	}, &utils.Meta{
		Total: len(items),
	})
}

// Refresh publishes a catalog update event for the invalidation worker
// @Summary Refresh a catalog
// @Tags catalogs
// @Accept json
// @Produce json
// @Param id path string true "catalog id"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/catalogs/{id}/refresh [post]
func (h *CatalogHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshCatalogRequest
	// Body is optional for refresh
	_ = c.BodyParser(&req)

	if err := h.catalogUC.NotifyUpdated(c.Context(), c.Params("id"), req.Reason); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"refreshed": true}, nil)
}
