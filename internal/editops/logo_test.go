package editops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceLogo_ImgWithLogoClass(t *testing.T) {
	doc := `<body><img class="site-logo" src="old.png" alt="Acme"><img src="hero.jpg"></body>`

	updated, ok := ReplaceLogo(doc, "asset://new-logo")

	require.True(t, ok)
	assert.Contains(t, updated, `<img class="site-logo" src="asset://new-logo" alt="Acme">`)
	assert.Contains(t, updated, `<img src="hero.jpg">`)
}

func TestReplaceLogo_ImgWithLogoAlt(t *testing.T) {
	doc := `<header><img src="brand.svg" alt="Company logo"></header>`

	updated, ok := ReplaceLogo(doc, "asset://new-logo")

	require.True(t, ok)
	assert.Contains(t, updated, `src="asset://new-logo"`)
	assert.NotContains(t, updated, "brand.svg")
}

func TestReplaceLogo_SvgInNav(t *testing.T) {
	doc := `<nav><svg viewBox="0 0 24 24"><path d="M0 0"/></svg><a href="#hero">Home</a></nav>`

	updated, ok := ReplaceLogo(doc, "asset://new-logo")

	require.True(t, ok)
	assert.Contains(t, updated, `<img src="asset://new-logo" alt="Logo" class="ss-logo">`)
	assert.NotContains(t, updated, "<svg")
	assert.Contains(t, updated, `<a href="#hero">Home</a>`)
}

func TestReplaceLogo_FirstImgInNav(t *testing.T) {
	doc := `<nav><img src="mark.png"><img src="second.png"></nav><img src="outside.png">`

	updated, ok := ReplaceLogo(doc, "asset://new-logo")

	require.True(t, ok)
	assert.Contains(t, updated, `<img src="asset://new-logo">`)
	assert.Contains(t, updated, `<img src="second.png">`)
	assert.Contains(t, updated, `<img src="outside.png">`)
}

func TestReplaceLogo_AddsSrcWhenMissing(t *testing.T) {
	doc := `<div><img class="logo" alt="brand"></div>`

	updated, ok := ReplaceLogo(doc, "asset://new-logo")

	require.True(t, ok)
	assert.Contains(t, updated, `<img class="logo" alt="brand" src="asset://new-logo">`)
}

func TestReplaceLogo_NoCandidate(t *testing.T) {
	doc := `<body><p>No imagery here at all.</p></body>`

	updated, ok := ReplaceLogo(doc, "asset://new-logo")

	assert.False(t, ok)
	assert.Equal(t, doc, updated)
}

func TestReplaceLogo_ClassBeatsNavHeuristics(t *testing.T) {
	doc := `<nav><img src="nav.png"></nav><footer><img class="logo" src="footer.png"></footer>`

	updated, ok := ReplaceLogo(doc, "asset://new-logo")

	require.True(t, ok)
	assert.Contains(t, updated, `<img src="nav.png">`)
	assert.Contains(t, updated, `<img class="logo" src="asset://new-logo">`)
}
