package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brandwave/api/internal/catalog"
	"github.com/brandwave/api/internal/client"
	"github.com/brandwave/api/internal/model"
	"github.com/brandwave/api/internal/prompt"
	"github.com/brandwave/api/internal/stream"
)

// ErrInvalidCampaign is the only hard failure of a run: missing required
// fields or an unknown platform, detected before any event is emitted.
var ErrInvalidCampaign = errors.New("invalid campaign config")

// Prompts handed to media backends are bounded.
const (
	maxImagePromptLen = 500
	maxVideoPromptLen = 300
)

// StyleResolver looks up a per-(platform, style) prompt override. A nil
// result means "use the default prompt builder and model selection".
type StyleResolver interface {
	Get(ctx context.Context, platform model.Platform, styleID string) (*model.StyleOverride, error)
}

// GenerationService drives the per-platform, per-content-type pipeline:
// text, then image, then video, publishing ordered progress events as
// stages complete. Every failure below the run level is converted into
// data; a partial campaign always beats an aborted one.
type GenerationService struct {
	text   client.TextGenerator
	media  client.MediaGenerator
	styles StyleResolver
}

func NewGenerationService(text client.TextGenerator, media client.MediaGenerator, styles StyleResolver) *GenerationService {
	return &GenerationService{
		text:   text,
		media:  media,
		styles: styles,
	}
}

// TotalSteps is the fixed progress denominator: the sum of supported
// outputs over the selected platforms. It is computed once at run start and
// never recalculated, so the percentage stays monotonic even when a stage
// silently no-ops.
func TotalSteps(platforms []model.Platform) (int, error) {
	total := 0
	for _, p := range platforms {
		spec, ok := catalog.SpecFor(p)
		if !ok {
			return 0, fmt.Errorf("%w: unknown platform %q", ErrInvalidCampaign, p)
		}
		total += len(spec.Outputs)
	}
	return total, nil
}

// Run executes one orchestration over the campaign config, emitting events
// to pub and returning the accumulated items. It only errors on invalid
// input, before anything has been published.
func (s *GenerationService) Run(ctx context.Context, cfg *model.CampaignConfig, pub stream.Publisher) ([]model.GeneratedContentItem, error) {
	if cfg.BrandName == "" || len(cfg.Platforms) == 0 {
		return nil, ErrInvalidCampaign
	}

	total, err := TotalSteps(cfg.Platforms)
	if err != nil {
		return nil, err
	}

	items := make([]model.GeneratedContentItem, 0, total)
	done := 0
	pct := func() int {
		return int(math.Round(float64(done) / float64(total) * 100))
	}

	pub.Progress(0, fmt.Sprintf("Starting campaign generation for %s", cfg.BrandName))

	for _, p := range cfg.Platforms {
		spec, _ := catalog.SpecFor(p)

		for _, kind := range spec.Outputs {
			switch kind {
			case model.ContentKindText:
				pub.Progress(pct(), fmt.Sprintf("Generating text for %s...", p))
				item := s.textStage(ctx, cfg, p, spec)
				done++
				items = append(items, item)
				pub.Content(item, pct())

			case model.ContentKindImage:
				pub.Progress(pct(), fmt.Sprintf("Generating image for %s...", p))
				item, ok := s.imageStage(ctx, cfg, p)
				done++
				if ok {
					items = append(items, item)
					pub.Content(item, pct())
				}

			case model.ContentKindVideo:
				if s.media == nil || !s.media.IsConfigured() {
					// Skipped silently; the slot still counts toward the
					// fixed denominator.
					done++
					continue
				}
				pub.Progress(pct(), fmt.Sprintf("Generating video for %s...", p))
				item, ok := s.videoStage(ctx, cfg, p)
				done++
				if ok {
					items = append(items, item)
					pub.Content(item, pct())
				}
			}
		}
	}

	pub.Complete(items)
	return items, nil
}

// textStage produces the post copy for one platform. Provider failure in
// single-model mode yields an error-status item; in multi-model mode the
// failures live inside the variation list and the item stays complete.
func (s *GenerationService) textStage(ctx context.Context, cfg *model.CampaignConfig, p model.Platform, spec model.PlatformSpec) model.GeneratedContentItem {
	item := model.GeneratedContentItem{
		ID:        uuid.New().String(),
		Platform:  p,
		Kind:      model.ContentKindText,
		Status:    model.ItemStatusGenerating,
		CreatedAt: time.Now(),
	}

	system := prompt.Build(p, campaignContext(cfg), cfg.Voice)
	preferred := catalog.DefaultModelFor(model.ContentKindText)

	if override := s.resolveStyle(ctx, cfg, p); override != nil {
		if override.SystemPrompt != "" {
			system = override.SystemPrompt
		}
		if override.PreferredModelID != "" {
			if m, ok := catalog.ModelByID(override.PreferredModelID); ok {
				preferred = m
			}
		}
	}

	user := fmt.Sprintf("Write one %s post for %s now.", cfg.FormatFor(p), p)

	if cfg.MultiModel {
		models := s.modelsFor(cfg, model.ContentKindText)
		variations := fanOut(ctx, model.ContentKindText, models, func(ctx context.Context, m catalog.ModelDescriptor) (string, error) {
			return s.completeText(ctx, cfg, m.ID, system, user, spec.MaxTextLength)
		})

		idx := selectPrimary(model.ContentKindText, variations)
		item.Variations = variations
		item.SelectedIndex = idx
		item.Content = variations[idx].Content
		item.Status = model.ItemStatusComplete
		return item
	}

	content, err := s.completeText(ctx, cfg, preferred.ID, system, user, spec.MaxTextLength)
	if err != nil {
		log.Printf("Text stage failed (platform=%s): %v", p, err)
		item.Status = model.ItemStatusError
		return item
	}

	item.Content = content
	item.Status = model.ItemStatusComplete
	return item
}

// imageStage expands the campaign context into an image prompt via a nested
// single-provider text call, generates the image, then a caption. Returns
// ok=false on total failure; the caller still advances the counter.
func (s *GenerationService) imageStage(ctx context.Context, cfg *model.CampaignConfig, p model.Platform) (model.GeneratedContentItem, bool) {
	item := model.GeneratedContentItem{
		ID:        uuid.New().String(),
		Platform:  p,
		Kind:      model.ContentKindImage,
		Status:    model.ItemStatusGenerating,
		CreatedAt: time.Now(),
	}

	format := cfg.FormatFor(p)
	imagePrompt := s.mediaPrompt(ctx, prompt.ImagePromptInstruction(), cfg, maxImagePromptLen)

	if cfg.MultiModel {
		models := s.modelsFor(cfg, model.ContentKindImage)
		variations := fanOut(ctx, model.ContentKindImage, models, func(ctx context.Context, m catalog.ModelDescriptor) (string, error) {
			return s.generateImage(ctx, m, imagePrompt, format)
		})

		idx := selectPrimary(model.ContentKindImage, variations)
		item.Variations = variations
		item.SelectedIndex = idx
		item.MediaURL = variations[idx].Content
	} else {
		url, err := s.generateImage(ctx, catalog.DefaultModelFor(model.ContentKindImage), imagePrompt, format)
		if err != nil {
			log.Printf("Image stage failed (platform=%s): %v", p, err)
			return item, false
		}
		item.MediaURL = url
	}

	item.Caption = s.caption(ctx, model.ContentKindImage, cfg)
	item.Status = model.ItemStatusComplete
	return item, true
}

// videoStage mirrors the image stage with the shorter prompt bound. An item
// is only produced when at least one non-empty video artifact came back.
func (s *GenerationService) videoStage(ctx context.Context, cfg *model.CampaignConfig, p model.Platform) (model.GeneratedContentItem, bool) {
	item := model.GeneratedContentItem{
		ID:        uuid.New().String(),
		Platform:  p,
		Kind:      model.ContentKindVideo,
		Status:    model.ItemStatusGenerating,
		CreatedAt: time.Now(),
	}

	format := cfg.FormatFor(p)
	videoPrompt := s.mediaPrompt(ctx, prompt.VideoPromptInstruction(), cfg, maxVideoPromptLen)

	if cfg.MultiModel {
		models := s.modelsFor(cfg, model.ContentKindVideo)
		variations := fanOut(ctx, model.ContentKindVideo, models, func(ctx context.Context, m catalog.ModelDescriptor) (string, error) {
			return s.generateVideo(ctx, m, videoPrompt, format)
		})

		idx := selectPrimary(model.ContentKindVideo, variations)
		if variations[idx].Content == "" {
			return item, false
		}
		item.Variations = variations
		item.SelectedIndex = idx
		item.MediaURL = variations[idx].Content
	} else {
		url, err := s.generateVideo(ctx, catalog.DefaultModelFor(model.ContentKindVideo), videoPrompt, format)
		if err != nil {
			log.Printf("Video stage failed (platform=%s): %v", p, err)
			return item, false
		}
		if url == "" {
			return item, false
		}
		item.MediaURL = url
	}

	item.Caption = s.caption(ctx, model.ContentKindVideo, cfg)
	item.Status = model.ItemStatusComplete
	return item, true
}

// completeText runs one synchronous text call, falling back to a
// deterministic mock when no gateway key is configured so the pipeline
// stays exercisable in development.
func (s *GenerationService) completeText(ctx context.Context, cfg *model.CampaignConfig, modelID, system, user string, limit int) (string, error) {
	if s.text == nil || !s.text.IsConfigured() {
		return truncate(mockPost(cfg, modelID), limit), nil
	}

	out, err := s.text.Complete(ctx, modelID, system, user)
	if err != nil {
		return "", err
	}
	return truncate(strings.TrimSpace(out), limit), nil
}

func (s *GenerationService) generateImage(ctx context.Context, m catalog.ModelDescriptor, imagePrompt string, format model.ContentFormat) (string, error) {
	if s.media == nil {
		return client.PlaceholderImageURL, nil
	}
	return s.media.GenerateImage(ctx, m, imagePrompt, format)
}

func (s *GenerationService) generateVideo(ctx context.Context, m catalog.ModelDescriptor, videoPrompt string, format model.ContentFormat) (string, error) {
	if s.media == nil {
		return "", nil
	}
	return s.media.GenerateVideo(ctx, m, videoPrompt, format)
}

// mediaPrompt asks a text backend to expand the campaign context into a
// media-generation prompt. Always single-provider, even in multi-model
// runs: only the final media call fans out. Falls back to the raw campaign
// context on any failure.
func (s *GenerationService) mediaPrompt(ctx context.Context, instruction string, cfg *model.CampaignConfig, limit int) string {
	brief := campaignContext(cfg)
	if s.text == nil || !s.text.IsConfigured() {
		return truncate(brief, limit)
	}

	out, err := s.text.Complete(ctx, catalog.DefaultModelFor(model.ContentKindText).ID, instruction, brief)
	if err != nil {
		log.Printf("Media prompt expansion failed: %v", err)
		return truncate(brief, limit)
	}
	return truncate(strings.TrimSpace(out), limit)
}

// caption generates a short caption for a media item. The prompt carries no
// platform context.
func (s *GenerationService) caption(ctx context.Context, kind model.ContentKind, cfg *model.CampaignConfig) string {
	system := prompt.CaptionPrompt(kind, campaignContext(cfg))
	if s.text == nil || !s.text.IsConfigured() {
		return mockCaption(cfg)
	}

	out, err := s.text.Complete(ctx, catalog.DefaultModelFor(model.ContentKindText).ID, system, "Write the caption now.")
	if err != nil {
		log.Printf("Caption generation failed: %v", err)
		return mockCaption(cfg)
	}
	return strings.TrimSpace(out)
}

func (s *GenerationService) resolveStyle(ctx context.Context, cfg *model.CampaignConfig, p model.Platform) *model.StyleOverride {
	if s.styles == nil {
		return nil
	}
	styleID := cfg.StyleIDs[p]
	if styleID == "" {
		return nil
	}

	override, err := s.styles.Get(ctx, p, styleID)
	if err != nil {
		log.Printf("Style lookup failed (platform=%s style=%s): %v", p, styleID, err)
		return nil
	}
	return override
}

// modelsFor resolves the descriptor set for one fan-out: the campaign's
// explicit model ids when any match the content kind, otherwise the full
// catalog for that kind.
func (s *GenerationService) modelsFor(cfg *model.CampaignConfig, kind model.ContentKind) []catalog.ModelDescriptor {
	if models := catalog.ModelsMatching(kind, cfg.Models); len(models) > 0 {
		return models
	}
	return catalog.ModelsFor(kind)
}

// campaignContext flattens the brand fields into the accumulated context
// string fed to every prompt.
func campaignContext(cfg *model.CampaignConfig) string {
	parts := []string{"Brand: " + cfg.BrandName}
	if cfg.BrandDescription != "" {
		parts = append(parts, "About: "+cfg.BrandDescription)
	}
	if cfg.TargetAudience != "" {
		parts = append(parts, "Audience: "+cfg.TargetAudience)
	}
	if cfg.Tone != "" {
		parts = append(parts, "Tone: "+cfg.Tone)
	}
	if cfg.Goal != "" {
		parts = append(parts, "Campaign goal: "+cfg.Goal)
	}
	if cfg.CallToAction != "" {
		parts = append(parts, "Call to action: "+cfg.CallToAction)
	}
	return strings.Join(parts, "\n")
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// Mock fallbacks for development when no text gateway key is set.

func mockPost(cfg *model.CampaignConfig, modelID string) string {
	cta := cfg.CallToAction
	if cta == "" {
		cta = "Stay tuned — you won't want to miss this."
	}
	return fmt.Sprintf("✨ Big things are coming from %s. %s (draft via %s)", cfg.BrandName, cta, modelID)
}

func mockCaption(cfg *model.CampaignConfig) string {
	return fmt.Sprintf("%s — made for you.", cfg.BrandName)
}
