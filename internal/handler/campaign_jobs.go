package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/brandwave/api/internal/model"
	"github.com/brandwave/api/internal/service"
	"github.com/brandwave/api/pkg/response"
)

// CampaignJobHandler exposes the queued variant of campaign generation:
// start a job, poll status, fetch the result, cancel. Live updates go out
// over the WebSocket hub instead of SSE.
type CampaignJobHandler struct {
	jobService *service.CampaignJobService
	validator  *validator.Validate
}

func NewCampaignJobHandler(jobService *service.CampaignJobService, v *validator.Validate) *CampaignJobHandler {
	return &CampaignJobHandler{
		jobService: jobService,
		validator:  v,
	}
}

// Start handles POST /api/campaigns/jobs
func (h *CampaignJobHandler) Start(c *fiber.Ctx) error {
	var cfg model.CampaignConfig
	if err := c.BodyParser(&cfg); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := validateCampaign(h.validator, &cfg); err != nil {
		return err.respond(c)
	}

	result, err := h.jobService.Start(c.Context(), &cfg)
	if err != nil {
		return response.ServiceError(c, "Failed to start campaign job")
	}

	return response.Accepted(c, result)
}

// Status handles GET /api/campaigns/jobs/:jobId
func (h *CampaignJobHandler) Status(c *fiber.Ctx) error {
	jobID := c.Params("jobId")

	status, err := h.jobService.GetStatus(c.Context(), jobID)
	if err != nil {
		return response.NotFound(c, "Job not found")
	}

	return response.OK(c, status)
}

// Result handles GET /api/campaigns/jobs/:jobId/result
func (h *CampaignJobHandler) Result(c *fiber.Ctx) error {
	jobID := c.Params("jobId")

	result, err := h.jobService.GetResult(c.Context(), jobID)
	if err != nil {
		return response.NotFound(c, "Job not found or not completed")
	}

	return response.OK(c, result)
}

// Cancel handles DELETE /api/campaigns/jobs/:jobId
func (h *CampaignJobHandler) Cancel(c *fiber.Ctx) error {
	jobID := c.Params("jobId")

	result, err := h.jobService.Cancel(c.Context(), jobID)
	if err != nil {
		return response.NotFound(c, "Job not found or already completed")
	}

	return response.OK(c, result)
}
