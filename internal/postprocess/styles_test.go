package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

func TestColorInjector_SkipsWhenAlreadyDeclared(t *testing.T) {
	doc := `<html><head><style>:root{--ss-primary:#000;}</style></head></html>`

	c := &colorInjector{scheme: testScheme()}
	out, err := c.Process(doc)

	require.NoError(t, err)
	assert.Equal(t, doc, out)
}

func TestColorInjector_FragmentFallback(t *testing.T) {
	c := &colorInjector{scheme: testScheme()}
	out, err := c.Process(`<section id="hero">hi</section>`)

	require.NoError(t, err)
	// No <head> to target; the block is prepended instead.
	assert.True(t, len(out) > 0)
	assert.Contains(t, out[:len(out)-len(`<section id="hero">hi</section>`)], "--ss-primary:")
}

func TestAnimationInjector(t *testing.T) {
	a := &animationInjector{}

	t.Run("injects when classes referenced", func(t *testing.T) {
		out, err := a.Process(`<html><head></head><body class="ss-animate"></body></html>`)

		require.NoError(t, err)
		assert.Contains(t, out, "@keyframes ssFadeUp")
	})

	t.Run("skips when unreferenced", func(t *testing.T) {
		doc := `<html><head></head><body></body></html>`
		out, err := a.Process(doc)

		require.NoError(t, err)
		assert.Equal(t, doc, out)
	})

	t.Run("skips when keyframes present", func(t *testing.T) {
		doc := `<html><head><style>@keyframes ssFadeUp{}</style></head><body class="ss-animate"></body></html>`
		out, err := a.Process(doc)

		require.NoError(t, err)
		assert.Equal(t, doc, out)
	})
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want string
	}{
		{name: "six digit", hex: "#1a365d", want: "26, 54, 93"},
		{name: "three digit", hex: "#fff", want: "255, 255, 255"},
		{name: "uppercase", hex: "#ED8936", want: "237, 137, 54"},
		{name: "surrounding space", hex: "  #000000  ", want: "0, 0, 0"},
		{name: "missing hash", hex: "2b6cb0", want: "43, 108, 176"},
		{name: "wrong length", hex: "#12345", want: "0, 0, 0"},
		{name: "not hex", hex: "#zzzzzz", want: "0, 0, 0"},
		{name: "empty", hex: "", want: "0, 0, 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hexToRGB(tt.hex))
		})
	}
}

func TestImageResolver(t *testing.T) {
	t.Run("out of range index resolves empty", func(t *testing.T) {
		r := &imageResolver{registry: testRegistry()}
		out, err := r.Process(`<img src="` + domain.IndexedToken(domain.PlaceholderHero, 9) + `">`)

		require.NoError(t, err)
		assert.Equal(t, `<img src="">`, out)
	})

	t.Run("nil registry resolves empty", func(t *testing.T) {
		r := &imageResolver{}
		out, err := r.Process(domain.IndexedToken(domain.PlaceholderGallery, 1))

		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("leaves logo token for the logo stage", func(t *testing.T) {
		r := &imageResolver{registry: testRegistry()}
		out, err := r.Process(domain.LogoToken())

		require.NoError(t, err)
		assert.Equal(t, domain.LogoToken(), out)
	})
}

func TestLogoResolver(t *testing.T) {
	t.Run("resolves to registry logo", func(t *testing.T) {
		r := &logoResolver{registry: testRegistry()}
		out, err := r.Process(`<img src="` + domain.LogoToken() + `">`)

		require.NoError(t, err)
		assert.Equal(t, `<img src="asset://logo">`, out)
	})

	t.Run("nil registry resolves empty", func(t *testing.T) {
		r := &logoResolver{}
		out, err := r.Process(domain.LogoToken())

		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
