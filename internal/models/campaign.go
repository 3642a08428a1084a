package models

import "strings"

type Tone string

const (
	ToneProfessional Tone = "Professional"
	ToneFriendly     Tone = "Friendly"
	ToneBold         Tone = "Bold"
	ToneHumorous     Tone = "Humorous"
	ToneLuxurious    Tone = "Luxurious"
)

var AllTones = []Tone{ToneProfessional, ToneFriendly, ToneBold, ToneHumorous, ToneLuxurious}

type Platform string

const (
	PlatformFacebook  Platform = "Facebook"
	PlatformInstagram Platform = "Instagram"
	PlatformTwitter   Platform = "Twitter"
	PlatformLinkedIn  Platform = "LinkedIn"
)

// AllPlatforms is also the order in which selected platforms are reported.
var AllPlatforms = []Platform{PlatformFacebook, PlatformInstagram, PlatformTwitter, PlatformLinkedIn}

// Character limit bounds
const (
	MinCharLimit     = 1
	MaxCharLimit     = 1000
	DefaultCharLimit = 280
)

// ParseTone matches case-insensitively and returns the canonical spelling.
func ParseTone(s string) (Tone, bool) {
	s = strings.TrimSpace(s)
	for _, t := range AllTones {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

func ParsePlatform(s string) (Platform, bool) {
	s = strings.TrimSpace(s)
	for _, p := range AllPlatforms {
		if strings.EqualFold(string(p), s) {
			return p, true
		}
	}
	return "", false
}

// CampaignInput is the full set of parameters the copy is generated from.
type CampaignInput struct {
	ProductName string     `json:"product_name"`
	Description string     `json:"description"`
	Features    []string   `json:"features"`
	Audience    string     `json:"audience"`
	Tone        Tone       `json:"tone"`
	Platforms   []Platform `json:"platforms"`
	CharLimit   int        `json:"char_limit"`
}

func DefaultCampaignInput() CampaignInput {
	return CampaignInput{
		Features:  []string{""},
		Tone:      ToneProfessional,
		Platforms: []Platform{},
		CharLimit: DefaultCharLimit,
	}
}

// Clone returns a copy that shares no slices with c.
func (c CampaignInput) Clone() CampaignInput {
	out := c
	out.Features = append([]string(nil), c.Features...)
	out.Platforms = append([]Platform{}, c.Platforms...)
	return out
}

// GenerationRequest is the snapshot of a CampaignInput sent to the generation service.
// VariantID is set when a single existing variant is being regenerated.
type GenerationRequest struct {
	CampaignInput
	VariantID string `json:"variant_id,omitempty"`
}
