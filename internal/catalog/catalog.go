package catalog

import "github.com/brandwave/api/internal/model"

// Speed classes for model selection hints
type Speed string

const (
	SpeedFast     Speed = "fast"
	SpeedStandard Speed = "standard"
	SpeedSlow     Speed = "slow"
)

// ModelDescriptor is one immutable catalog entry. Media models carry the
// provider endpoint path and, for video, a default clip duration in seconds.
type ModelDescriptor struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Provider        string `json:"provider"`
	Speed           Speed  `json:"speed"`
	Endpoint        string `json:"endpoint,omitempty"`
	DefaultDuration int    `json:"defaultDuration,omitempty"`
}

var textModels = []ModelDescriptor{
	{ID: "meta-llama/llama-3.3-70b-instruct", Name: "Llama 3.3 70B", Provider: "meta", Speed: SpeedFast},
	{ID: "openai/gpt-4o-mini", Name: "GPT-4o Mini", Provider: "openai", Speed: SpeedFast},
	{ID: "anthropic/claude-3.5-haiku", Name: "Claude 3.5 Haiku", Provider: "anthropic", Speed: SpeedFast},
	{ID: "google/gemini-2.0-flash-001", Name: "Gemini 2.0 Flash", Provider: "google", Speed: SpeedFast},
}

var imageModels = []ModelDescriptor{
	{ID: "fal-ai/flux/schnell", Name: "FLUX Schnell", Provider: "fal", Speed: SpeedFast, Endpoint: "/fal-ai/flux/schnell"},
	{ID: "fal-ai/flux-pro/v1.1", Name: "FLUX Pro 1.1", Provider: "fal", Speed: SpeedStandard, Endpoint: "/fal-ai/flux-pro/v1.1"},
	{ID: "fal-ai/recraft-v3", Name: "Recraft V3", Provider: "fal", Speed: SpeedStandard, Endpoint: "/fal-ai/recraft-v3"},
}

var videoModels = []ModelDescriptor{
	{ID: "fal-ai/kling-video/v1.6/standard", Name: "Kling 1.6", Provider: "fal", Speed: SpeedSlow, Endpoint: "/fal-ai/kling-video/v1.6/standard/text-to-video", DefaultDuration: 5},
	{ID: "fal-ai/minimax-video-01", Name: "MiniMax Video 01", Provider: "fal", Speed: SpeedSlow, Endpoint: "/fal-ai/minimax-video-01", DefaultDuration: 6},
	{ID: "fal-ai/ltx-video", Name: "LTX Video", Provider: "fal", Speed: SpeedStandard, Endpoint: "/fal-ai/ltx-video", DefaultDuration: 5},
}

// ModelsFor returns the catalog entries for one content kind, in selection
// order. The returned slice must not be mutated.
func ModelsFor(kind model.ContentKind) []ModelDescriptor {
	switch kind {
	case model.ContentKindText:
		return textModels
	case model.ContentKindImage:
		return imageModels
	case model.ContentKindVideo:
		return videoModels
	}
	return nil
}

// DefaultModelFor returns the preferred model for one content kind.
func DefaultModelFor(kind model.ContentKind) ModelDescriptor {
	return ModelsFor(kind)[0]
}

// ModelByID looks up a catalog entry across all content kinds.
func ModelByID(id string) (ModelDescriptor, bool) {
	for _, kind := range model.ValidContentKinds {
		for _, m := range ModelsFor(kind) {
			if m.ID == id {
				return m, true
			}
		}
	}
	return ModelDescriptor{}, false
}

// ModelsMatching resolves explicit model ids against one content kind's
// catalog, preserving the requested order. Ids unknown to that kind are
// dropped.
func ModelsMatching(kind model.ContentKind, ids []string) []ModelDescriptor {
	var out []ModelDescriptor
	for _, id := range ids {
		for _, m := range ModelsFor(kind) {
			if m.ID == id {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

var platformSpecs = map[model.Platform]model.PlatformSpec{
	model.PlatformTwitter: {
		MaxTextLength: 280,
		Outputs:       []model.ContentKind{model.ContentKindText, model.ContentKindImage, model.ContentKindVideo},
	},
	model.PlatformInstagram: {
		MaxTextLength: 2200,
		Outputs:       []model.ContentKind{model.ContentKindText, model.ContentKindImage, model.ContentKindVideo},
	},
	model.PlatformLinkedIn: {
		MaxTextLength: 3000,
		Outputs:       []model.ContentKind{model.ContentKindText, model.ContentKindImage},
	},
	model.PlatformFacebook: {
		MaxTextLength: 5000,
		Outputs:       []model.ContentKind{model.ContentKindText, model.ContentKindImage, model.ContentKindVideo},
	},
	model.PlatformTikTok: {
		MaxTextLength: 2200,
		Outputs:       []model.ContentKind{model.ContentKindText, model.ContentKindVideo},
	},
}

// SpecFor returns the static capability spec for a platform. Unknown
// platforms are a construction-time error surfaced by the caller, not a
// silent no-op.
func SpecFor(p model.Platform) (model.PlatformSpec, bool) {
	spec, ok := platformSpecs[p]
	return spec, ok
}
