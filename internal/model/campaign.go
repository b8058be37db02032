package model

// CampaignConfig is the input for one generation run. It is owned by the
// caller and read-only to the orchestrator.
type CampaignConfig struct {
	BrandName        string                     `json:"brandName" validate:"required"`
	BrandDescription string                     `json:"brandDescription,omitempty"`
	TargetAudience   string                     `json:"targetAudience,omitempty"`
	Tone             string                     `json:"tone,omitempty"`
	Goal             string                     `json:"goal,omitempty"`
	CallToAction     string                     `json:"callToAction,omitempty"`
	Platforms        []Platform                 `json:"platforms" validate:"required,min=1"`
	Formats          map[Platform]ContentFormat `json:"formats,omitempty"`
	StyleIDs         map[Platform]string        `json:"styleIds,omitempty"`
	MultiModel       bool                       `json:"multiModel,omitempty"`
	Models           []string                   `json:"models,omitempty"`
	Voice            *VoiceProfile              `json:"voice,omitempty"`
}

// FormatFor returns the per-platform content format, defaulting to post.
func (c *CampaignConfig) FormatFor(p Platform) ContentFormat {
	if f, ok := c.Formats[p]; ok && f != "" {
		return f
	}
	return FormatPost
}

// VoiceProfile is a structured tone-of-voice definition applied on top of
// the brand context when building prompts.
type VoiceProfile struct {
	Personality  []string `json:"personality,omitempty"`
	Do           []string `json:"do,omitempty"`
	Dont         []string `json:"dont,omitempty"`
	KeyPhrases   []string `json:"keyPhrases,omitempty"`
	AvoidPhrases []string `json:"avoidPhrases,omitempty"`
	WritingStyle []string `json:"writingStyle,omitempty"`
}

// StyleOverride is a stored per-(platform, style) prompt customization.
// Absence means "use the default prompt builder and model selection".
type StyleOverride struct {
	SystemPrompt     string `json:"systemPrompt,omitempty"`
	PreferredModelID string `json:"preferredModelId,omitempty"`
}

// StyleOverrideRequest is the body for PUT /api/styles/:platform/:styleId
type StyleOverrideRequest struct {
	SystemPrompt     string `json:"systemPrompt,omitempty"`
	PreferredModelID string `json:"preferredModelId,omitempty"`
}

// PlatformSpec describes the static capabilities of one platform. The
// outputs list determines which pipeline stages run.
type PlatformSpec struct {
	MaxTextLength int           `json:"maxTextLength"`
	Outputs       []ContentKind `json:"outputs"`
}

// Supports reports whether the platform produces the given content kind.
func (s PlatformSpec) Supports(kind ContentKind) bool {
	for _, k := range s.Outputs {
		if k == kind {
			return true
		}
	}
	return false
}
