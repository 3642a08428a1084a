package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adverve/backend/internal/models"
	"go.uber.org/zap"
)

func TestSampleGenerator(t *testing.T) {
	g := NewSampleGenerator(time.Millisecond, zap.NewNop())

	all, err := g.Generate(context.Background(), models.GenerationRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Platform != models.PlatformFacebook || all[2].Platform != models.PlatformLinkedIn {
		t.Fatalf("variants = %+v", all)
	}

	only, err := g.Generate(context.Background(), models.GenerationRequest{CampaignInput: models.CampaignInput{
		Platforms: []models.Platform{models.PlatformInstagram, models.PlatformTwitter},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if len(only) != 1 || only[0].ID != "2" {
		t.Fatalf("narrowed variants = %+v", only)
	}
}

func TestSampleGeneratorHonoursContext(t *testing.T) {
	g := NewSampleGenerator(time.Hour, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := g.Generate(ctx, models.GenerationRequest{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}
