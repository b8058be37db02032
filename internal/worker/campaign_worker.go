package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"github.com/brandwave/api/internal/model"
	"github.com/brandwave/api/internal/service"
	"github.com/brandwave/api/internal/websocket"
)

// CampaignWorker processes queued campaign generation jobs. Progress and
// content events are mirrored into the Redis job record and broadcast to
// WebSocket subscribers as the pipeline produces them.
type CampaignWorker struct {
	jobService *service.CampaignJobService
	generator  *service.GenerationService
	hub        *websocket.Hub
}

// NewCampaignWorker creates a new campaign worker
func NewCampaignWorker(jobService *service.CampaignJobService, generator *service.GenerationService, hub *websocket.Hub) *CampaignWorker {
	return &CampaignWorker{
		jobService: jobService,
		generator:  generator,
		hub:        hub,
	}
}

// ProcessTask handles campaign task processing
func (w *CampaignWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var taskPayload struct {
		JobID   string          `json:"jobId"`
		Payload json.RawMessage `json:"payload"`
	}

	if err := json.Unmarshal(t.Payload(), &taskPayload); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	jobID := taskPayload.JobID
	log.Printf("Starting campaign job: %s", jobID)

	var payload model.CampaignJobPayload
	if err := json.Unmarshal(taskPayload.Payload, &payload); err != nil {
		w.failJob(ctx, jobID, "Invalid payload")
		return fmt.Errorf("failed to unmarshal campaign payload: %w", err)
	}

	pub := &jobPublisher{worker: w, jobID: jobID}
	if _, err := w.generator.Run(ctx, &payload.Config, pub); err != nil {
		w.failJob(ctx, jobID, fmt.Sprintf("Campaign generation failed: %v", err))
		return err
	}

	log.Printf("Campaign job %s completed", jobID)
	return nil
}

func (w *CampaignWorker) failJob(ctx context.Context, jobID, errMsg string) {
	if err := w.jobService.FailJob(ctx, jobID, errMsg); err != nil {
		log.Printf("Failed to mark job as failed: %v", err)
	}
	w.hub.BroadcastError(jobID, "CAMPAIGN_FAILED", errMsg)
}

// jobPublisher adapts the pipeline event stream to the job record and the
// WebSocket hub. Best-effort on both sides: persistence errors are logged,
// never propagated into the run.
type jobPublisher struct {
	worker *CampaignWorker
	jobID  string
}

func (p *jobPublisher) Progress(percentage int, message string) {
	if err := p.worker.jobService.UpdateJobProgress(context.Background(), p.jobID, percentage, message); err != nil {
		log.Printf("Failed to update progress: %v", err)
	}
	p.worker.hub.BroadcastProgress(p.jobID, percentage, model.JobStatusRunning, message)
}

func (p *jobPublisher) Content(item model.GeneratedContentItem, percentage int) {
	p.worker.hub.BroadcastContent(p.jobID, percentage, &item)
}

func (p *jobPublisher) Complete(items []model.GeneratedContentItem) {
	result := &model.CampaignJobResultResponse{
		JobID: p.jobID,
		Items: items,
	}
	if err := p.worker.jobService.CompleteJob(context.Background(), p.jobID, result); err != nil {
		log.Printf("Failed to save result: %v", err)
	}
	p.worker.hub.BroadcastComplete(p.jobID, result)
}
