package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklight-labs/sitesmith/internal/adapters/driven/storage/memory"
	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

// execute runs the root command with args and captures output. Injected
// services are restored afterwards so tests stay independent.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func seedDocumentStore(t *testing.T) *memory.DocumentStore {
	t.Helper()

	store := memory.NewDocumentStore()
	require.NoError(t, store.Save(context.Background(), &domain.GeneratedDocument{
		ID:           "doc-1",
		BusinessName: "Bella's Bakery",
		Category:     "bakery",
		HTML:         "<html><body><h1>Bella's Bakery</h1></body></html>",
		Validation:   domain.ValidationResult{Valid: true},
	}))

	prev := documentStore
	documentStore = store
	t.Cleanup(func() { documentStore = prev })
	return store
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sitesmith version")
}

func TestDocumentsList(t *testing.T) {
	seedDocumentStore(t)

	out, err := execute(t, "documents", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "doc-1")
	assert.Contains(t, out, "Bella's Bakery")
	assert.Contains(t, out, "Total: 1 documents")
}

func TestDocumentsShow(t *testing.T) {
	seedDocumentStore(t)

	out, err := execute(t, "documents", "show", "doc-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Bella's Bakery")
	assert.Contains(t, out, "Validation: clean")
}

func TestDocumentsShow_NotFound(t *testing.T) {
	seedDocumentStore(t)

	_, err := execute(t, "documents", "show", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentsDelete(t *testing.T) {
	store := seedDocumentStore(t)

	out, err := execute(t, "documents", "delete", "doc-1")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	_, err = store.Get(context.Background(), "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
