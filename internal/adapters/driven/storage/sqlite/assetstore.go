package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
)

// assetURLScheme prefixes stored asset references. The serving layer maps
// asset://<id> to its /assets/<id> route.
const assetURLScheme = "asset://"

// assetStore implements driven.AssetStore.
type assetStore struct {
	store *Store
}

var _ driven.AssetStore = (*assetStore)(nil)

// Put stores raw asset bytes and returns the asset's URL.
func (s *assetStore) Put(ctx context.Context, data []byte, mediaType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty asset data", domain.ErrInvalidInput)
	}

	id := uuid.NewString()
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO assets (id, media_type, data, created_at)
		VALUES (?, ?, ?, ?)
	`, id, mediaType, data, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("saving asset: %w", err)
	}

	return assetURLScheme + id, nil
}

// Get returns the bytes and media type for a stored asset URL.
func (s *assetStore) Get(ctx context.Context, url string) ([]byte, string, error) {
	id := strings.TrimPrefix(url, assetURLScheme)

	row := s.store.db.QueryRowContext(ctx, `
		SELECT data, media_type FROM assets WHERE id = ?
	`, id)

	var data []byte
	var mediaType string
	if err := row.Scan(&data, &mediaType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", fmt.Errorf("scanning asset: %w", err)
	}

	return data, mediaType, nil
}
