package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brandwave/api/internal/catalog"
	"github.com/brandwave/api/internal/model"
	"github.com/brandwave/api/pkg/response"
)

type ModelsHandler struct{}

func NewModelsHandler() *ModelsHandler {
	return &ModelsHandler{}
}

// List handles GET /api/models. An optional ?type= query narrows the
// catalog to one content kind.
func (h *ModelsHandler) List(c *fiber.Ctx) error {
	kind := model.ContentKind(c.Query("type"))
	if kind != "" {
		switch kind {
		case model.ContentKindText, model.ContentKindImage, model.ContentKindVideo:
		default:
			return response.ValidationError(c, "Unknown content type", nil)
		}
		return response.OK(c, fiber.Map{
			"models": catalog.ModelsFor(kind),
		})
	}

	return response.OK(c, fiber.Map{
		"text":  catalog.ModelsFor(model.ContentKindText),
		"image": catalog.ModelsFor(model.ContentKindImage),
		"video": catalog.ModelsFor(model.ContentKindVideo),
	})
}
