package model

import "time"

// Job represents a queued campaign generation job
type Job struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"currentStep,omitempty"`
	Error       *string    `json:"error,omitempty"`
	Payload     []byte     `json:"payload,omitempty"` // JSON-encoded CampaignJobPayload
	Result      []byte     `json:"result,omitempty"`  // JSON-encoded CampaignJobResultResponse
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

const JobTypeCampaign = "campaign"

// CampaignJobPayload contains the data for a queued campaign job
type CampaignJobPayload struct {
	Config CampaignConfig `json:"config"`
}

// CampaignJobStartResponse is returned when a campaign job is enqueued
type CampaignJobStartResponse struct {
	JobID     string    `json:"jobId"`
	Status    JobStatus `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// CampaignJobStatusResponse reports the state of a queued campaign job
type CampaignJobStatusResponse struct {
	JobID       string     `json:"jobId"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"currentStep,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CampaignJobResultResponse carries the items of a completed campaign job
type CampaignJobResultResponse struct {
	JobID string                 `json:"jobId"`
	Items []GeneratedContentItem `json:"items"`
}

// CampaignJobCancelResponse is returned when a job is canceled
type CampaignJobCancelResponse struct {
	Success bool      `json:"success"`
	JobID   string    `json:"jobId"`
	Status  JobStatus `json:"status"`
}
