package driven

import (
	"context"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

// DocumentStore persists generated documents. The pipeline writes the final
// markup through this narrow interface; the surrounding application owns
// everything else about document lifecycle.
type DocumentStore interface {
	// Save stores or replaces a generated document.
	Save(ctx context.Context, doc *domain.GeneratedDocument) error

	// Get returns a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.GeneratedDocument, error)

	// List returns stored documents, newest first.
	List(ctx context.Context, limit int) ([]*domain.GeneratedDocument, error)

	// Delete removes a document by ID.
	Delete(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}
