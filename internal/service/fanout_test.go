package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/brandwave/api/internal/catalog"
	"github.com/brandwave/api/internal/model"
)

func testModels(n int) []catalog.ModelDescriptor {
	models := make([]catalog.ModelDescriptor, n)
	for i := range models {
		models[i] = catalog.ModelDescriptor{
			ID:       fmt.Sprintf("provider/model-%d", i),
			Name:     fmt.Sprintf("Model %d", i),
			Provider: "provider",
		}
	}
	return models
}

func TestFanOut_OneVariationPerModelInOrder(t *testing.T) {
	models := testModels(4)

	variations := fanOut(context.Background(), model.ContentKindText, models, func(ctx context.Context, m catalog.ModelDescriptor) (string, error) {
		return "post from " + m.ID, nil
	})

	if len(variations) != len(models) {
		t.Fatalf("expected %d variations, got %d", len(models), len(variations))
	}
	for i, v := range variations {
		if v.ModelID != models[i].ID {
			t.Errorf("variation %d out of order: got %s, want %s", i, v.ModelID, models[i].ID)
		}
		if v.Content != "post from "+models[i].ID {
			t.Errorf("variation %d has wrong content: %q", i, v.Content)
		}
		if v.Provider != "provider" {
			t.Errorf("variation %d missing provider", i)
		}
	}
}

func TestFanOut_BranchFailureBecomesMarker(t *testing.T) {
	models := testModels(3)

	variations := fanOut(context.Background(), model.ContentKindText, models, func(ctx context.Context, m catalog.ModelDescriptor) (string, error) {
		if m.ID == models[1].ID {
			return "", errors.New("provider 500")
		}
		return "ok", nil
	})

	if len(variations) != 3 {
		t.Fatalf("a failed branch must still produce a variation, got %d", len(variations))
	}
	want := "[Generation failed for " + models[1].Name + "]"
	if variations[1].Content != want {
		t.Errorf("expected failure marker %q, got %q", want, variations[1].Content)
	}
	if variations[0].Content != "ok" || variations[2].Content != "ok" {
		t.Error("healthy branches must be unaffected by a failing sibling")
	}
}

func TestFanOut_ImageFailureMarker(t *testing.T) {
	models := testModels(1)

	variations := fanOut(context.Background(), model.ContentKindImage, models, func(ctx context.Context, m catalog.ModelDescriptor) (string, error) {
		return "", errors.New("timeout")
	})

	if variations[0].Content != ImageFailureURL {
		t.Errorf("expected image failure placeholder, got %q", variations[0].Content)
	}
}

func TestFanOut_VideoFailureIsEmpty(t *testing.T) {
	models := testModels(1)

	variations := fanOut(context.Background(), model.ContentKindVideo, models, func(ctx context.Context, m catalog.ModelDescriptor) (string, error) {
		return "", errors.New("timeout")
	})

	if variations[0].Content != "" {
		t.Errorf("expected empty video artifact on failure, got %q", variations[0].Content)
	}
}

func TestSelectPrimary_FirstNonFailure(t *testing.T) {
	variations := []model.GenerationVariation{
		{Content: "[Generation failed for Model 0]"},
		{Content: ""},
		{Content: "a real post"},
		{Content: "another real post"},
	}

	if idx := selectPrimary(model.ContentKindText, variations); idx != 2 {
		t.Errorf("expected index 2, got %d", idx)
	}
}

func TestSelectPrimary_AllFailedFallsBackToFirst(t *testing.T) {
	variations := []model.GenerationVariation{
		{Content: ImageFailureURL},
		{Content: ImageFailureURL},
	}

	if idx := selectPrimary(model.ContentKindImage, variations); idx != 0 {
		t.Errorf("expected fallback index 0, got %d", idx)
	}
}

func TestSelectPrimary_VideoSkipsEmptyArtifacts(t *testing.T) {
	variations := []model.GenerationVariation{
		{Content: ""},
		{Content: "https://cdn.example.com/clip.mp4"},
	}

	if idx := selectPrimary(model.ContentKindVideo, variations); idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
}
