package workspace

import (
	"strconv"
	"strings"

	"github.com/adverve/backend/internal/models"
	"go.uber.org/zap"
)

// Scalar form fields accepted by SetField.
const (
	FieldProductName = "product_name"
	FieldDescription = "description"
	FieldAudience    = "audience"
	FieldTone        = "tone"
	FieldCharLimit   = "char_limit"
)

// CampaignForm holds the campaign inputs. Values persist across generations
// until the user changes them.
type CampaignForm struct {
	productName string
	description string
	features    []string
	audience    string
	tone        models.Tone
	platforms   map[models.Platform]bool
	charLimit   int
	log         *zap.Logger
}

func NewCampaignForm(log *zap.Logger) *CampaignForm {
	def := models.DefaultCampaignInput()
	return &CampaignForm{
		features:  def.Features,
		tone:      def.Tone,
		platforms: make(map[models.Platform]bool),
		charLimit: def.CharLimit,
		log:       log,
	}
}

// SetField replaces a scalar field. A char_limit that is not a base-10 integer
// in [1,1000] is dropped without error and the previous limit stays.
func (f *CampaignForm) SetField(name, value string) error {
	switch name {
	case FieldProductName:
		f.productName = value
	case FieldDescription:
		f.description = value
	case FieldAudience:
		f.audience = value
	case FieldTone:
		tone, ok := models.ParseTone(value)
		if !ok {
			return &ValidationError{Field: FieldTone, Message: "unknown tone " + strconv.Quote(value)}
		}
		f.tone = tone
	case FieldCharLimit:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < models.MinCharLimit || n > models.MaxCharLimit {
			f.log.Debug("char limit update ignored", zap.String("value", value))
			return nil
		}
		f.charLimit = n
	default:
		return &ValidationError{Field: name, Message: "unknown field"}
	}
	return nil
}

func (f *CampaignForm) AddFeature() {
	f.features = append(f.features, "")
}

func (f *CampaignForm) UpdateFeature(index int, value string) error {
	if index < 0 || index >= len(f.features) {
		err := &IndexError{Op: "update feature", Index: index, Len: len(f.features)}
		f.log.Warn("feature slot rejected", zap.Error(err))
		return err
	}
	f.features[index] = value
	return nil
}

// RemoveFeature deletes a slot. The last remaining slot is never removed.
func (f *CampaignForm) RemoveFeature(index int) error {
	if index < 0 || index >= len(f.features) {
		err := &IndexError{Op: "remove feature", Index: index, Len: len(f.features)}
		f.log.Warn("feature slot rejected", zap.Error(err))
		return err
	}
	if len(f.features) == 1 {
		return nil
	}
	f.features = append(f.features[:index], f.features[index+1:]...)
	return nil
}

func (f *CampaignForm) TogglePlatform(name string) error {
	p, ok := models.ParsePlatform(name)
	if !ok {
		return &ValidationError{Field: "platform", Message: "unknown platform " + strconv.Quote(name)}
	}
	if f.platforms[p] {
		delete(f.platforms, p)
	} else {
		f.platforms[p] = true
	}
	return nil
}

// Snapshot copies the current inputs; later edits do not affect it.
func (f *CampaignForm) Snapshot() models.CampaignInput {
	selected := make([]models.Platform, 0, len(f.platforms))
	for _, p := range models.AllPlatforms {
		if f.platforms[p] {
			selected = append(selected, p)
		}
	}
	return models.CampaignInput{
		ProductName: f.productName,
		Description: f.description,
		Features:    append([]string(nil), f.features...),
		Audience:    f.audience,
		Tone:        f.tone,
		Platforms:   selected,
		CharLimit:   f.charLimit,
	}
}
