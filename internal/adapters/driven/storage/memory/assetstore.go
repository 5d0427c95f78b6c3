package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
)

// Ensure AssetStore implements the interface.
var _ driven.AssetStore = (*AssetStore)(nil)

type storedAsset struct {
	data      []byte
	mediaType string
}

// AssetStore is an in-memory implementation of driven.AssetStore for testing.
type AssetStore struct {
	mu     sync.RWMutex
	assets map[string]storedAsset
}

// NewAssetStore creates a new in-memory asset store.
func NewAssetStore() *AssetStore {
	return &AssetStore{
		assets: make(map[string]storedAsset),
	}
}

// Put stores raw asset bytes and returns the asset's URL.
func (s *AssetStore) Put(_ context.Context, data []byte, mediaType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty asset data", domain.ErrInvalidInput)
	}

	url := "asset://" + uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[url] = storedAsset{data: data, mediaType: mediaType}
	return url, nil
}

// Get returns the bytes and media type for a stored asset URL.
func (s *AssetStore) Get(_ context.Context, url string) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	asset, ok := s.assets[url]
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	return asset.data, asset.mediaType, nil
}
