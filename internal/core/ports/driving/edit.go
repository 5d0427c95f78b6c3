package driving

import (
	"context"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

// SiteEditor applies natural-language edit instructions to an existing
// document as localized text transformations, never full regenerations.
type SiteEditor interface {
	// Edit applies one edit request. A failed edit returns an EditResult
	// with Changed=false and a user-facing explanation; it never silently
	// returns the prior document relabeled as updated.
	Edit(ctx context.Context, req domain.EditRequest) (*domain.EditResult, error)
}
