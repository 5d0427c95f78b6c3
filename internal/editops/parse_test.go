package editops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

func TestParse_FullResponse(t *testing.T) {
	response := `@@RATIONALE@@
The headline should match the new business name.
@@MESSAGE@@
Updated the headline and the footer year.
@@EDIT@@
<h1>Old Name</h1>
@@WITH@@
<h1>New Name</h1>
@@END@@
@@EDIT@@
<p>2024</p>
@@WITH@@
<p>2026</p>
@@END@@`

	parsed := Parse(response)

	assert.Equal(t, "The headline should match the new business name.", parsed.Rationale)
	assert.Equal(t, "Updated the headline and the footer year.", parsed.Message)
	require.Len(t, parsed.Operations, 2)
	assert.Equal(t, domain.EditOperation{Search: "<h1>Old Name</h1>", Replace: "<h1>New Name</h1>"}, parsed.Operations[0])
	assert.Equal(t, domain.EditOperation{Search: "<p>2024</p>", Replace: "<p>2026</p>"}, parsed.Operations[1])
}

func TestParse_NoEditBlocks(t *testing.T) {
	parsed := Parse("@@RATIONALE@@\nNothing to change.\n@@MESSAGE@@\nThe page already says that.")

	assert.Equal(t, "Nothing to change.", parsed.Rationale)
	assert.Equal(t, "The page already says that.", parsed.Message)
	assert.Empty(t, parsed.Operations)
}

func TestParse_EmptyReplaceIsDeletion(t *testing.T) {
	parsed := Parse("@@EDIT@@\n<p>remove me</p>\n@@WITH@@\n@@END@@")

	require.Len(t, parsed.Operations, 1)
	assert.Equal(t, "<p>remove me</p>", parsed.Operations[0].Search)
	assert.Empty(t, parsed.Operations[0].Replace)
}

func TestParse_SkipsMalformedBlocks(t *testing.T) {
	t.Run("empty search", func(t *testing.T) {
		response := `@@EDIT@@
@@WITH@@
<p>orphan</p>
@@END@@
@@EDIT@@
<p>good</p>
@@WITH@@
<p>better</p>
@@END@@`

		parsed := Parse(response)

		require.Len(t, parsed.Operations, 1)
		assert.Equal(t, "<p>good</p>", parsed.Operations[0].Search)
	})

	t.Run("missing with marker aborts remainder", func(t *testing.T) {
		response := `@@EDIT@@
<p>good</p>
@@WITH@@
<p>better</p>
@@END@@
@@EDIT@@
<p>dangling</p>`

		parsed := Parse(response)

		require.Len(t, parsed.Operations, 1)
		assert.Equal(t, "<p>good</p>", parsed.Operations[0].Search)
	})

	t.Run("missing end marker aborts remainder", func(t *testing.T) {
		parsed := Parse("@@EDIT@@\n<p>a</p>\n@@WITH@@\n<p>b</p>")

		assert.Empty(t, parsed.Operations)
	})
}

func TestParse_PreservesInteriorWhitespace(t *testing.T) {
	response := "@@EDIT@@\n<div>\n  <span>indented</span>\n</div>\n@@WITH@@\n<div>\n  <span>still indented</span>\n</div>\n@@END@@"

	parsed := Parse(response)

	require.Len(t, parsed.Operations, 1)
	assert.Equal(t, "<div>\n  <span>indented</span>\n</div>", parsed.Operations[0].Search)
	assert.Equal(t, "<div>\n  <span>still indented</span>\n</div>", parsed.Operations[0].Replace)
}

func TestExtractFullDocument(t *testing.T) {
	t.Run("bare markup", func(t *testing.T) {
		doc, ok := ExtractFullDocument("  <!DOCTYPE html><html></html>  ")

		require.True(t, ok)
		assert.Equal(t, "<!DOCTYPE html><html></html>", doc)
	})

	t.Run("fenced markup", func(t *testing.T) {
		doc, ok := ExtractFullDocument("```html\n<html><body>hi</body></html>\n```")

		require.True(t, ok)
		assert.Equal(t, "<html><body>hi</body></html>", doc)
	})

	t.Run("prose is rejected", func(t *testing.T) {
		_, ok := ExtractFullDocument("I can't edit that page for you.")

		assert.False(t, ok)
	})

	t.Run("empty fence is rejected", func(t *testing.T) {
		_, ok := ExtractFullDocument("```html\n```")

		assert.False(t, ok)
	})
}
