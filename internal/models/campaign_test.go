package models

import "testing"

func TestParseTone(t *testing.T) {
	tests := []struct {
		input string
		want  Tone
		ok    bool
	}{
		{"Professional", ToneProfessional, true},
		{"bold", ToneBold, true},
		{" Luxurious ", ToneLuxurious, true},
		{"HUMOROUS", ToneHumorous, true},
		{"Sarcastic", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseTone(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseTone(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		input string
		want  Platform
		ok    bool
	}{
		{"Facebook", PlatformFacebook, true},
		{"linkedin", PlatformLinkedIn, true},
		{"twitter", PlatformTwitter, true},
		{"TikTok", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParsePlatform(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParsePlatform(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDefaultCampaignInput(t *testing.T) {
	in := DefaultCampaignInput()
	if len(in.Features) != 1 || in.Features[0] != "" {
		t.Errorf("expected one empty feature slot, got %#v", in.Features)
	}
	if in.Tone != ToneProfessional {
		t.Errorf("default tone = %q, want %q", in.Tone, ToneProfessional)
	}
	if in.CharLimit != DefaultCharLimit {
		t.Errorf("default char limit = %d, want %d", in.CharLimit, DefaultCharLimit)
	}
	if in.Platforms == nil || len(in.Platforms) != 0 {
		t.Errorf("expected empty non-nil platforms, got %#v", in.Platforms)
	}
}

func TestCampaignInputCloneIsIndependent(t *testing.T) {
	in := DefaultCampaignInput()
	in.Features = []string{"fast", "cheap"}
	in.Platforms = []Platform{PlatformTwitter}

	out := in.Clone()
	in.Features[0] = "slow"
	in.Platforms[0] = PlatformFacebook

	if out.Features[0] != "fast" {
		t.Errorf("clone shares features with original")
	}
	if out.Platforms[0] != PlatformTwitter {
		t.Errorf("clone shares platforms with original")
	}
}

func TestSessionDisplayName(t *testing.T) {
	s := &Session{Email: "ada@example.com"}
	if got := s.DisplayName(); got != "ada@example.com" {
		t.Errorf("DisplayName() = %q, want email", got)
	}
	s.Name = "Ada"
	if got := s.DisplayName(); got != "Ada" {
		t.Errorf("DisplayName() = %q, want name", got)
	}
}
