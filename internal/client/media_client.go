package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/brandwave/api/internal/catalog"
	"github.com/brandwave/api/internal/config"
	"github.com/brandwave/api/internal/model"
)

// MediaGenerator defines the interface for image and video generation
type MediaGenerator interface {
	GenerateImage(ctx context.Context, m catalog.ModelDescriptor, prompt string, format model.ContentFormat) (string, error)
	GenerateVideo(ctx context.Context, m catalog.ModelDescriptor, prompt string, format model.ContentFormat) (string, error)
	IsConfigured() bool
}

// PlaceholderImageURL is the deterministic stand-in used when the media
// provider is unconfigured or a job never reaches a terminal state.
const PlaceholderImageURL = "https://placehold.co/1024x1024/e2e8f0/64748b/png?text=Generated+Image"

// FalClient implements MediaGenerator against the fal.ai queue API. A
// submission either carries the artifact directly or returns a request id
// that must be resolved by polling.
type FalClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// mediaJobResponse covers both response shapes of the queue API: direct
// results and queued submissions.
type mediaJobResponse struct {
	RequestID string          `json:"request_id,omitempty"`
	Status    string          `json:"status,omitempty"`
	Images    []mediaArtifact `json:"images,omitempty"`
	Video     *mediaArtifact  `json:"video,omitempty"`
}

type mediaArtifact struct {
	URL string `json:"url"`
}

func (r *mediaJobResponse) artifactURL(kind model.ContentKind) string {
	switch kind {
	case model.ContentKindImage:
		if len(r.Images) > 0 {
			return r.Images[0].URL
		}
	case model.ContentKindVideo:
		if r.Video != nil {
			return r.Video.URL
		}
	}
	return ""
}

// NewFalClient creates a new fal.ai media client
func NewFalClient(cfg *config.FalConfig) *FalClient {
	return &FalClient{
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// GenerateImage submits an image generation request and resolves queued
// jobs with the image poll budget. Unconfigured clients and exhausted jobs
// degrade to the deterministic placeholder, never an error.
func (c *FalClient) GenerateImage(ctx context.Context, m catalog.ModelDescriptor, prompt string, format model.ContentFormat) (string, error) {
	if !c.IsConfigured() {
		return PlaceholderImageURL, nil
	}

	payload := map[string]interface{}{
		"prompt":     prompt,
		"image_size": imageSize(format),
	}

	url, err := c.generate(ctx, m, model.ContentKindImage, payload, ImagePollPolicy)
	if err != nil {
		return "", err
	}
	if url == "" {
		return PlaceholderImageURL, nil
	}
	return url, nil
}

// GenerateVideo mirrors GenerateImage with the larger video poll budget.
// An empty return string signals "skip": the stage produces no item.
func (c *FalClient) GenerateVideo(ctx context.Context, m catalog.ModelDescriptor, prompt string, format model.ContentFormat) (string, error) {
	if !c.IsConfigured() {
		return "", nil
	}

	payload := map[string]interface{}{
		"prompt":       prompt,
		"aspect_ratio": aspectRatio(format),
	}
	if m.DefaultDuration > 0 {
		payload["duration"] = m.DefaultDuration
	}

	return c.generate(ctx, m, model.ContentKindVideo, payload, VideoPollPolicy)
}

// generate handles the two backend response shapes: direct artifact, or a
// request id resolved via pollJob.
func (c *FalClient) generate(ctx context.Context, m catalog.ModelDescriptor, kind model.ContentKind, payload map[string]interface{}, policy PollPolicy) (string, error) {
	var sub mediaJobResponse
	if err := c.post(ctx, m.Endpoint, payload, &sub); err != nil {
		return "", err
	}

	if url := sub.artifactURL(kind); url != "" {
		return url, nil
	}
	if sub.RequestID == "" {
		return "", nil
	}

	statusPath := fmt.Sprintf("%s/requests/%s", m.Endpoint, sub.RequestID)
	attempt := 0
	return pollJob(ctx, policy, func(ctx context.Context) (jobStatus, error) {
		attempt++
		var st mediaJobResponse
		if err := c.get(ctx, statusPath, &st); err != nil {
			return jobStatus{}, err
		}
		log.Printf("[Fal API] Poll %s #%d (request=%s) — status: %s", kind, attempt, sub.RequestID, st.Status)
		return jobStatus{Status: st.Status, URL: st.artifactURL(kind)}, nil
	})
}

// post sends a POST request with JSON body
func (c *FalClient) post(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.doRequest(req, result)
}

// get sends a GET request and parses JSON response
func (c *FalClient) get(ctx context.Context, endpoint string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.doRequest(req, result)
}

// doRequest executes an HTTP request and parses the response
func (c *FalClient) doRequest(req *http.Request, result interface{}) error {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+c.apiKey)

	log.Printf("[Fal API] → %s %s", req.Method, req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[Fal API] ✗ %s %s — request failed: %v", req.Method, req.URL.String(), err)
		return &ProviderError{Provider: "fal", Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[Fal API] ← %d %s %s — %s", resp.StatusCode, req.Method, req.URL.String(), string(respBody))
		return &ProviderError{Provider: "fal", Status: resp.StatusCode, Message: string(respBody)}
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// IsConfigured returns true if the client has valid configuration
func (c *FalClient) IsConfigured() bool {
	return c.apiKey != ""
}

// story is vertical, post is horizontal
func imageSize(format model.ContentFormat) string {
	if format == model.FormatStory {
		return "portrait_16_9"
	}
	return "landscape_16_9"
}

func aspectRatio(format model.ContentFormat) string {
	if format == model.FormatStory {
		return "9:16"
	}
	return "16:9"
}
