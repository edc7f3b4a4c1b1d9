package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/pkg/utils"
	"github.com/catalog-browse-service/internal/pkg/validator"
	"github.com/catalog-browse-service/internal/usecase"
	"github.com/catalog-browse-service/internal/usecase/dto"
)

// SessionHandler exposes browse sessions: mount, snapshot, events, record
// selection and unmount.
type SessionHandler struct {
	browseUC *usecase.BrowseUseCase
	logger   *zap.Logger
}

func NewSessionHandler(browseUC *usecase.BrowseUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		browseUC: browseUC,
		logger:   logger,
	}
}

// Create mounts a browse screen for a catalog
// @Summary Mount a browse session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "catalog to browse"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	view, err := h.browseUC.CreateSession(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, view, nil)
}

// Get returns the current view snapshot of a session
// @Summary Session snapshot
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	view, err := h.browseUC.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, view, nil)
}

// HandleEvent applies one browse event to a session
// @Summary Deliver a browse event
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "session id"
// @Param request body dto.BrowseEventRequest true "event"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/sessions/{id}/events [post]
func (h *SessionHandler) HandleEvent(c *fiber.Ctx) error {
	var req dto.BrowseEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	view, err := h.browseUC.HandleEvent(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, view, nil)
}

// SelectRecord hands a record off to the detail screen
// @Summary Select a record from the list view
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Param recordID path string true "record id"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/sessions/{id}/records/{recordID}/select [post]
func (h *SessionHandler) SelectRecord(c *fiber.Ctx) error {
	selection, err := h.browseUC.SelectRecord(c.Context(), c.Params("id"), c.Params("recordID"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, selection, nil)
}

// Destroy unmounts a session
// @Summary Unmount a browse session
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) Destroy(c *fiber.Ctx) error {
	if err := h.browseUC.DestroySession(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
