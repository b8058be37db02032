package model

import "time"

// GenerationVariation is one provider's output for one content type.
// Failures are represented as a variation carrying a failure-marker
// artifact, never as an error bubbling to the caller.
type GenerationVariation struct {
	ModelID     string    `json:"modelId"`
	ModelName   string    `json:"modelName"`
	Provider    string    `json:"provider"`
	Content     string    `json:"content"` // text body, image URL, or video URL
	GeneratedAt time.Time `json:"generatedAt"`
}

// GeneratedContentItem is the unit of output per (platform, content type).
// Created once per pipeline stage and never removed from the run's list.
type GeneratedContentItem struct {
	ID            string                `json:"id"`
	Platform      Platform              `json:"platform"`
	Kind          ContentKind           `json:"kind"`
	Status        ItemStatus            `json:"status"`
	Content       string                `json:"content,omitempty"`
	Caption       string                `json:"caption,omitempty"`
	MediaURL      string                `json:"mediaUrl,omitempty"`
	Variations    []GenerationVariation `json:"variations,omitempty"`
	SelectedIndex int                   `json:"selectedIndex"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// ProgressEvent is one frame on the output stream. Exactly one of Message,
// Item, or Items is populated depending on Type.
type ProgressEvent struct {
	Type       string                 `json:"type"`
	Percentage int                    `json:"percentage"`
	Message    string                 `json:"message,omitempty"`
	Item       *GeneratedContentItem  `json:"item,omitempty"`
	Items      []GeneratedContentItem `json:"items,omitempty"`
}
