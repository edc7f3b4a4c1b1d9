package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/pkg/utils"
	"github.com/catalog-browse-service/internal/pkg/validator"
	"github.com/catalog-browse-service/internal/usecase"
	"github.com/catalog-browse-service/internal/usecase/dto"
)

// PreferenceHandler exposes the process-wide language selection.
type PreferenceHandler struct {
	prefUC *usecase.PreferenceUseCase
	logger *zap.Logger
}

func NewPreferenceHandler(prefUC *usecase.PreferenceUseCase, logger *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		prefUC: prefUC,
		logger: logger,
	}
}

// GetLanguage returns the current language selection
// @Summary Current language
// @Tags preferences
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/preferences/language [get]
func (h *PreferenceHandler) GetLanguage(c *fiber.Ctx) error {
	lang := h.prefUC.GetLanguage(c.Context())

	return utils.SendSuccess(c, dto.LanguageResponse{
		Language: string(lang),
	}, nil)
}

// SetLanguage updates the language selection
// @Summary Change language
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body dto.SetLanguageRequest true "language"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/preferences/language [put]
func (h *PreferenceHandler) SetLanguage(c *fiber.Ctx) error {
	var req dto.SetLanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	lang, err := h.prefUC.SetLanguage(c.Context(), req.Language)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.LanguageResponse{
		Language: string(lang),
	}, nil)
}
