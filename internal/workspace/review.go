package workspace

import (
	"context"

	"github.com/adverve/backend/internal/models"
	"github.com/google/uuid"
)

// ReviewPanel holds the current result set, in the order the generator returned it.
type ReviewPanel struct {
	variants  []models.AdCopyVariant
	clipboard Clipboard
}

func NewReviewPanel(clipboard Clipboard) *ReviewPanel {
	return &ReviewPanel{clipboard: clipboard}
}

func (p *ReviewPanel) Variants() []models.AdCopyVariant {
	return append([]models.AdCopyVariant{}, p.variants...)
}

// Replace swaps in a whole new result set.
func (p *ReviewPanel) Replace(variants []models.AdCopyVariant) {
	p.variants = append([]models.AdCopyVariant(nil), variants...)
}

func (p *ReviewPanel) Clear() {
	p.variants = nil
}

func (p *ReviewPanel) Lookup(id string) (models.AdCopyVariant, error) {
	for _, v := range p.variants {
		if v.ID == id {
			return v, nil
		}
	}
	return models.AdCopyVariant{}, &NotFoundError{Kind: "variant", ID: id}
}

// ReplaceContent rewrites one variant's text in place, keeping its id and position.
func (p *ReviewPanel) ReplaceContent(id, content string) bool {
	for i := range p.variants {
		if p.variants[i].ID == id {
			p.variants[i].Content = content
			return true
		}
	}
	return false
}

// Copy sends a variant's content to the clipboard.
func (p *ReviewPanel) Copy(ctx context.Context, workspaceID uuid.UUID, id string) (models.AdCopyVariant, error) {
	v, err := p.Lookup(id)
	if err != nil {
		return v, err
	}
	if err := p.clipboard.WriteText(ctx, workspaceID, v.Content); err != nil {
		return v, &ClipboardError{Err: err}
	}
	return v, nil
}
