package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/brandwave/api/internal/catalog"
	"github.com/brandwave/api/internal/model"
	"github.com/brandwave/api/internal/service"
	"github.com/brandwave/api/pkg/response"
)

// StyleHandler manages stored per-(platform, style) prompt overrides.
type StyleHandler struct {
	store *service.StyleStore
}

func NewStyleHandler(store *service.StyleStore) *StyleHandler {
	return &StyleHandler{store: store}
}

// Get handles GET /api/styles/:platform/:styleId
func (h *StyleHandler) Get(c *fiber.Ctx) error {
	platform := model.Platform(c.Params("platform"))
	if _, ok := catalog.SpecFor(platform); !ok {
		return response.ValidationError(c, fmt.Sprintf("Unsupported platform: %s", platform), nil)
	}

	override, err := h.store.Get(c.Context(), platform, c.Params("styleId"))
	if err != nil {
		return response.ServiceError(c, "Failed to load style override")
	}
	if override == nil {
		return response.NotFound(c, "Style override not found")
	}

	return response.OK(c, override)
}

// Put handles PUT /api/styles/:platform/:styleId
func (h *StyleHandler) Put(c *fiber.Ctx) error {
	platform := model.Platform(c.Params("platform"))
	if _, ok := catalog.SpecFor(platform); !ok {
		return response.ValidationError(c, fmt.Sprintf("Unsupported platform: %s", platform), nil)
	}

	var req model.StyleOverrideRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if req.SystemPrompt == "" && req.PreferredModelID == "" {
		return response.ValidationError(c, "At least one of systemPrompt or preferredModelId is required", nil)
	}
	if req.PreferredModelID != "" {
		if _, ok := catalog.ModelByID(req.PreferredModelID); !ok {
			return response.ValidationError(c, fmt.Sprintf("Unknown model: %s", req.PreferredModelID), nil)
		}
	}

	override := &model.StyleOverride{
		SystemPrompt:     req.SystemPrompt,
		PreferredModelID: req.PreferredModelID,
	}
	if err := h.store.Set(c.Context(), platform, c.Params("styleId"), override); err != nil {
		return response.ServiceError(c, "Failed to save style override")
	}

	return response.OK(c, override)
}

// Delete handles DELETE /api/styles/:platform/:styleId
func (h *StyleHandler) Delete(c *fiber.Ctx) error {
	platform := model.Platform(c.Params("platform"))
	if _, ok := catalog.SpecFor(platform); !ok {
		return response.ValidationError(c, fmt.Sprintf("Unsupported platform: %s", platform), nil)
	}

	if err := h.store.Delete(c.Context(), platform, c.Params("styleId")); err != nil {
		return response.ServiceError(c, "Failed to delete style override")
	}

	return response.NoContent(c)
}
