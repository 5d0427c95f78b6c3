package driven

import (
	"context"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

// IdentityExtractor is the external scraping/vision collaborator. Given a
// URL it returns the extracted SiteIdentity. The pipeline never performs
// extraction itself.
type IdentityExtractor interface {
	// Extract returns the identity for a source URL.
	Extract(ctx context.Context, sourceURL string) (*domain.SiteIdentity, error)
}

// ImageGenerator produces stored image assets from text prompts. Results
// feed the placeholder registry's image buckets.
type ImageGenerator interface {
	// GenerateImage returns the stored asset URL for a generated image.
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// AssetStore is durable storage for generated and uploaded images,
// referenced by URL from the placeholder registry.
type AssetStore interface {
	// Put stores raw asset bytes and returns the asset's URL.
	Put(ctx context.Context, data []byte, mediaType string) (string, error)

	// Get returns the bytes and media type for a stored asset URL.
	Get(ctx context.Context, url string) ([]byte, string, error)
}
