package editops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

func TestApply_ExactMatch(t *testing.T) {
	doc := `<body><h1>Old</h1><p>keep</p></body>`

	result := Apply(doc, []domain.EditOperation{
		{Search: "<h1>Old</h1>", Replace: "<h1>New</h1>"},
	})

	assert.Equal(t, 1, result.Applied)
	assert.Empty(t, result.Failed)
	assert.Equal(t, `<body><h1>New</h1><p>keep</p></body>`, result.HTML)
}

func TestApply_FirstOccurrenceOnly(t *testing.T) {
	doc := `<p>twice</p><p>twice</p>`

	result := Apply(doc, []domain.EditOperation{
		{Search: "<p>twice</p>", Replace: "<p>once</p>"},
	})

	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, `<p>once</p><p>twice</p>`, result.HTML)
}

func TestApply_WhitespaceTolerantFallback(t *testing.T) {
	doc := "<div>\n    <span>\n        Hours: 9-5\n    </span>\n</div>"

	result := Apply(doc, []domain.EditOperation{
		{Search: "<span> Hours: 9-5 </span>", Replace: "<span>Hours: 8-6</span>"},
	})

	require.Equal(t, 1, result.Applied)
	assert.Contains(t, result.HTML, "<span>Hours: 8-6</span>")
	assert.NotContains(t, result.HTML, "9-5")
}

func TestApply_SequentialFold(t *testing.T) {
	doc := `<p>step zero</p>`

	// The second search only exists after the first operation ran.
	result := Apply(doc, []domain.EditOperation{
		{Search: "step zero", Replace: "step one"},
		{Search: "step one", Replace: "step two"},
	})

	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, `<p>step two</p>`, result.HTML)
}

func TestApply_RecordsFailures(t *testing.T) {
	doc := `<p>present</p>`

	result := Apply(doc, []domain.EditOperation{
		{Search: "absent", Replace: "x"},
		{Search: "present", Replace: "found"},
		{Search: "also absent", Replace: "y"},
	})

	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, []string{"absent", "also absent"}, result.Failed)
	assert.Equal(t, `<p>found</p>`, result.HTML)
}

func TestApply_DeletionViaEmptyReplace(t *testing.T) {
	doc := `<p>keep</p><p>drop</p>`

	result := Apply(doc, []domain.EditOperation{
		{Search: "<p>drop</p>", Replace: ""},
	})

	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, `<p>keep</p>`, result.HTML)
}

func TestApply_RegexMetacharactersInSearch(t *testing.T) {
	doc := "<a href=\"mailto:hi@example.com\">hi@example.com</a>\n(open daily)"

	result := Apply(doc, []domain.EditOperation{
		{Search: "(open\ndaily)", Replace: "(closed Mondays)"},
	})

	require.Equal(t, 1, result.Applied)
	assert.Contains(t, result.HTML, "(closed Mondays)")
}

func TestApply_NoOperations(t *testing.T) {
	result := Apply("<p>unchanged</p>", nil)

	assert.Zero(t, result.Applied)
	assert.Empty(t, result.Failed)
	assert.Equal(t, "<p>unchanged</p>", result.HTML)
}
