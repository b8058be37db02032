package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/brandwave/api/internal/catalog"
	"github.com/brandwave/api/internal/model"
)

// ImageFailureURL is the red placeholder substituted for a failed image
// fan-out branch.
const ImageFailureURL = "https://placehold.co/1024x1024/ef4444/ffffff/png?text=Generation+Failed"

const textFailurePrefix = "[Generation failed for "

func failureMarker(kind model.ContentKind, m catalog.ModelDescriptor) string {
	switch kind {
	case model.ContentKindText:
		return textFailurePrefix + m.Name + "]"
	case model.ContentKindImage:
		return ImageFailureURL
	}
	return "" // video: empty artifact signals skip
}

func isFailureMarker(kind model.ContentKind, content string) bool {
	switch kind {
	case model.ContentKindText:
		return content == "" || strings.HasPrefix(content, textFailurePrefix)
	case model.ContentKindImage:
		return content == "" || content == ImageFailureURL
	}
	return content == ""
}

type generateFunc func(ctx context.Context, m catalog.ModelDescriptor) (string, error)

// fanOut issues one generation call per descriptor concurrently and returns
// exactly one variation per descriptor, in descriptor order. Each branch
// owns its own result slot; a branch failure becomes a failure-marker
// variation and never fails the fan-out as a whole.
func fanOut(ctx context.Context, kind model.ContentKind, models []catalog.ModelDescriptor, gen generateFunc) []model.GenerationVariation {
	variations := make([]model.GenerationVariation, len(models))

	var wg sync.WaitGroup
	for i, m := range models {
		wg.Add(1)
		go func(i int, m catalog.ModelDescriptor) {
			defer wg.Done()

			content, err := gen(ctx, m)
			if err != nil {
				log.Printf("Fan-out branch failed (kind=%s model=%s): %v", kind, m.ID, err)
				content = failureMarker(kind, m)
			}

			variations[i] = model.GenerationVariation{
				ModelID:     m.ID,
				ModelName:   m.Name,
				Provider:    m.Provider,
				Content:     content,
				GeneratedAt: time.Now(),
			}
		}(i, m)
	}
	wg.Wait()

	return variations
}

// selectPrimary returns the index of the first variation that is not a
// failure marker; if every branch failed, the first entry is chosen so the
// primary field is always populated.
func selectPrimary(kind model.ContentKind, variations []model.GenerationVariation) int {
	for i, v := range variations {
		if !isFailureMarker(kind, v.Content) {
			return i
		}
	}
	return 0
}
