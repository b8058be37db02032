package prompt

import (
	"fmt"
	"strings"

	"github.com/brandwave/api/internal/model"
)

// Platform-specific stylistic conventions appended to the system prompt.
var platformStyles = map[model.Platform]string{
	model.PlatformTwitter:   "Keep it punchy and under 280 characters. Use at most 2 hashtags. Hooks beat hashtags.",
	model.PlatformInstagram: "Write an engaging caption with a strong first line. Use line breaks and 3-5 relevant hashtags at the end.",
	model.PlatformLinkedIn:  "Write in a professional, insight-driven voice. Short paragraphs, no hashtag walls, end with a question or clear takeaway.",
	model.PlatformFacebook:  "Write conversationally, as if talking to a community. One clear call to action.",
	model.PlatformTikTok:    "Write a short, high-energy caption that works as a video hook. Trend-aware, 2-3 hashtags.",
}

// Build composes a provider-ready instruction string from the platform
// conventions, the accumulated brand context, and an optional voice profile.
// Pure: no I/O, no failure modes. Callers must only pass platforms they have
// already validated against the catalog.
func Build(platform model.Platform, brandContext string, voice *model.VoiceProfile) string {
	var b strings.Builder

	b.WriteString("You are an expert social media copywriter creating marketing content")
	if platform != "" {
		fmt.Fprintf(&b, " for %s", platform)
	}
	b.WriteString(".\n")

	if style, ok := platformStyles[platform]; ok {
		b.WriteString(style)
		b.WriteString("\n")
	}

	if brandContext != "" {
		b.WriteString("\nBrand context:\n")
		b.WriteString(brandContext)
		b.WriteString("\n")
	}

	if voice != nil {
		writeVoice(&b, voice)
	}

	b.WriteString("\nReturn only the post copy. No preamble, no explanations, no surrounding quotes.")
	return b.String()
}

// CaptionPrompt builds the instruction for a short media caption. The
// platform context is deliberately empty: captions are generic per content
// kind, not per platform.
func CaptionPrompt(kind model.ContentKind, brandContext string) string {
	return Build("", brandContext, nil) +
		fmt.Sprintf("\nWrite one short caption (max 150 characters) to accompany a generated %s.", kind)
}

// ImagePromptInstruction asks a text model to expand campaign context into
// an image-generation prompt.
func ImagePromptInstruction() string {
	return "You write prompts for AI image generators. Turn the campaign brief into one vivid, concrete visual scene description: subject, setting, lighting, mood, style. No text overlays, no brand logos. Return only the prompt."
}

// VideoPromptInstruction asks a text model to expand campaign context into
// a short video-generation prompt.
func VideoPromptInstruction() string {
	return "You write prompts for AI video generators. Turn the campaign brief into one short scene description with a clear subject and camera movement, suitable for a 5-10 second clip. Return only the prompt."
}

func writeVoice(b *strings.Builder, voice *model.VoiceProfile) {
	b.WriteString("\nBrand voice:\n")
	if len(voice.Personality) > 0 {
		fmt.Fprintf(b, "Personality: %s\n", strings.Join(voice.Personality, ", "))
	}
	if len(voice.WritingStyle) > 0 {
		fmt.Fprintf(b, "Writing style: %s\n", strings.Join(voice.WritingStyle, ", "))
	}
	if len(voice.Do) > 0 {
		fmt.Fprintf(b, "Do: %s\n", strings.Join(voice.Do, "; "))
	}
	if len(voice.Dont) > 0 {
		fmt.Fprintf(b, "Don't: %s\n", strings.Join(voice.Dont, "; "))
	}
	if len(voice.KeyPhrases) > 0 {
		fmt.Fprintf(b, "Key phrases to weave in: %s\n", strings.Join(voice.KeyPhrases, ", "))
	}
	if len(voice.AvoidPhrases) > 0 {
		fmt.Fprintf(b, "Never use: %s\n", strings.Join(voice.AvoidPhrases, ", "))
	}
}
