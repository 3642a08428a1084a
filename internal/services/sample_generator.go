package services

import (
	"context"
	"time"

	"github.com/adverve/backend/internal/models"
	"go.uber.org/zap"
)

var sampleVariants = []models.AdCopyVariant{
	{
		ID:       "1",
		Platform: models.PlatformFacebook,
		Content:  "Transform your digital presence with AdVerve's AI-powered copywriting. Create compelling ads that convert in seconds. Try it now!",
	},
	{
		ID:       "2",
		Platform: models.PlatformInstagram,
		Content:  "🚀 Elevate your brand voice with AI precision. AdVerve: Where creativity meets conversion. #DigitalMarketing #AI",
	},
	{
		ID:       "3",
		Platform: models.PlatformLinkedIn,
		Content:  "Revolutionize your ad strategy with AdVerve. Our AI technology delivers data-driven copy that speaks to your audience. Book a demo today.",
	},
}

// SampleGenerator returns canned copy after a fixed latency. It ignores the
// campaign inputs except for narrowing to the selected platforms when any of
// them has canned copy.
type SampleGenerator struct {
	latency time.Duration
	log     *zap.Logger
}

func NewSampleGenerator(latency time.Duration, log *zap.Logger) *SampleGenerator {
	return &SampleGenerator{latency: latency, log: log}
}

func (g *SampleGenerator) Generate(ctx context.Context, req models.GenerationRequest) ([]models.AdCopyVariant, error) {
	timer := time.NewTimer(g.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	out := make([]models.AdCopyVariant, 0, len(sampleVariants))
	for _, v := range sampleVariants {
		for _, p := range req.Platforms {
			if v.Platform == p {
				out = append(out, v)
				break
			}
		}
	}
	if len(out) == 0 {
		out = append(out, sampleVariants...)
	}

	g.log.Debug("sample copy generated", zap.String("product", req.ProductName), zap.Int("variants", len(out)))
	return out, nil
}
