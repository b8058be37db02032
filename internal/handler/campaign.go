package handler

import (
	"bufio"
	"context"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/brandwave/api/internal/catalog"
	"github.com/brandwave/api/internal/model"
	"github.com/brandwave/api/internal/service"
	"github.com/brandwave/api/internal/stream"
	"github.com/brandwave/api/pkg/response"
)

type CampaignHandler struct {
	generator *service.GenerationService
	validator *validator.Validate
}

func NewCampaignHandler(generator *service.GenerationService, v *validator.Validate) *CampaignHandler {
	return &CampaignHandler{
		generator: generator,
		validator: v,
	}
}

// Generate handles POST /api/campaigns/generate. The response is a
// server-sent-events stream of progress, content, and complete events.
// Validation failures are rejected before anything is streamed.
func (h *CampaignHandler) Generate(c *fiber.Ctx) error {
	var cfg model.CampaignConfig
	if err := c.BodyParser(&cfg); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := validateCampaign(h.validator, &cfg); err != nil {
		return err.respond(c)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// Detached from the request context: a client disconnect must not
		// abort the run. Events that can no longer be delivered are dropped
		// by the SSE writer.
		pub := stream.NewSSEWriter(w)
		if _, err := h.generator.Run(context.Background(), &cfg, pub); err != nil {
			log.Printf("Campaign run failed: %v", err)
		}
	}))

	return nil
}

// campaignError carries a pre-stream validation failure back to the
// transport layer.
type campaignError struct {
	message string
	details interface{}
}

func (e *campaignError) respond(c *fiber.Ctx) error {
	return response.ValidationError(c, e.message, e.details)
}

// validateCampaign enforces required fields and known platforms. Shared by
// the streaming and queued triggers.
func validateCampaign(v *validator.Validate, cfg *model.CampaignConfig) *campaignError {
	if err := v.Struct(cfg); err != nil {
		return &campaignError{message: "Validation failed", details: formatValidationErrors(err)}
	}
	for _, p := range cfg.Platforms {
		if _, ok := catalog.SpecFor(p); !ok {
			return &campaignError{message: fmt.Sprintf("Unsupported platform: %s", p)}
		}
	}
	return nil
}

// formatValidationErrors formats validator errors for response
func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}
