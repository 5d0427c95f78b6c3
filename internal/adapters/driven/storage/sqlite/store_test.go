package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func testDocument(id string) *domain.GeneratedDocument {
	return &domain.GeneratedDocument{
		ID:              id,
		BusinessName:    "Bella's Bakery",
		Category:        "bakery",
		HTML:            "<!DOCTYPE html><html><body><h1>Bella's Bakery</h1></body></html>",
		Thinking:        "Planned a warm, inviting layout.",
		PipelineVersion: "2",
		Validation:      domain.ValidationResult{Valid: true},
	}
}

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	doc := testDocument("doc-1")
	require.NoError(t, docs.Save(ctx, doc))

	loaded, err := docs.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.BusinessName, loaded.BusinessName)
	assert.Equal(t, doc.HTML, loaded.HTML)
	assert.Equal(t, doc.Thinking, loaded.Thinking)
	assert.Equal(t, "2", loaded.PipelineVersion)
	assert.True(t, loaded.Validation.Valid)
	assert.False(t, loaded.CreatedAt.IsZero())
}

func TestDocumentStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.DocumentStore().Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_Save_Upsert(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	doc := testDocument("doc-1")
	require.NoError(t, docs.Save(ctx, doc))

	doc.HTML = "<!DOCTYPE html><html><body><h1>Updated</h1></body></html>"
	require.NoError(t, docs.Save(ctx, doc))

	loaded, err := docs.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Contains(t, loaded.HTML, "Updated")
}

func TestDocumentStore_List_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	older := testDocument("older")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, docs.Save(ctx, older))

	newer := testDocument("newer")
	require.NoError(t, docs.Save(ctx, newer))

	listed, err := docs.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "newer", listed[0].ID)
	assert.Equal(t, "older", listed[1].ID)
}

func TestDocumentStore_List_Limit(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, docs.Save(ctx, testDocument(id)))
	}

	listed, err := docs.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestDocumentStore_Delete(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	require.NoError(t, docs.Save(ctx, testDocument("doc-1")))
	require.NoError(t, docs.Delete(ctx, "doc-1"))

	_, err := docs.Get(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ValidationRoundTrip(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	doc := testDocument("doc-1")
	doc.Validation = domain.ValidationResult{
		Valid:      false,
		Unresolved: []string{"[[ID_HERO_IMAGE_3_HERE]]"},
		Count:      1,
	}
	require.NoError(t, docs.Save(ctx, doc))

	loaded, err := docs.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.False(t, loaded.Validation.Valid)
	assert.Equal(t, 1, loaded.Validation.Count)
	assert.Equal(t, []string{"[[ID_HERO_IMAGE_3_HERE]]"}, loaded.Validation.Unresolved)
}

func TestAssetStore_PutAndGet(t *testing.T) {
	store := newTestStore(t)
	assets := store.AssetStore()
	ctx := context.Background()

	data := []byte{0x89, 0x50, 0x4e, 0x47}
	url, err := assets.Put(ctx, data, "image/png")
	require.NoError(t, err)
	assert.Contains(t, url, assetURLScheme)

	loaded, mediaType, err := assets.Get(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, data, loaded)
	assert.Equal(t, "image/png", mediaType)
}

func TestAssetStore_Put_EmptyData(t *testing.T) {
	store := newTestStore(t)

	_, err := store.AssetStore().Put(context.Background(), nil, "image/png")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssetStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.AssetStore().Get(context.Background(), "asset://missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Persistence(t *testing.T) {
	dir := t.TempDir()

	store1, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store1.DocumentStore().Save(context.Background(), testDocument("doc-1")))
	require.NoError(t, store1.Close())

	// Reopening runs migrations idempotently and sees prior data.
	store2, err := NewStore(dir)
	require.NoError(t, err)
	defer store2.Close()

	loaded, err := store2.DocumentStore().Get(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Bella's Bakery", loaded.BusinessName)
}
