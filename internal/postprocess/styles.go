package postprocess

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

// cssVarMarker detects an existing theme declaration. Injection is skipped
// when the document already declares its variables, which keeps the
// pipeline idempotent.
const cssVarMarker = "--ss-primary:"

// colorInjector injects the three shared CSS custom properties plus their
// RGB-triplet decompositions (for translucent overlays).
type colorInjector struct {
	scheme domain.ColorScheme
}

func (c *colorInjector) Name() string { return "colors" }

func (c *colorInjector) Process(doc string) (string, error) {
	if strings.Contains(doc, cssVarMarker) {
		return doc, nil
	}

	block := fmt.Sprintf(`<style>:root{--ss-primary:%s;--ss-secondary:%s;--ss-accent:%s;--ss-primary-rgb:%s;--ss-secondary-rgb:%s;--ss-accent-rgb:%s;}</style>`,
		c.scheme.Primary, c.scheme.Secondary, c.scheme.Accent,
		hexToRGB(c.scheme.Primary), hexToRGB(c.scheme.Secondary), hexToRGB(c.scheme.Accent))

	return injectIntoHead(doc, block), nil
}

// animationKeyframes is the shared block of entrance animations and
// staggered-delay utility classes the section prompts reference.
const animationKeyframes = `<style>
@keyframes ssFadeUp{from{opacity:0;transform:translateY(24px);}to{opacity:1;transform:none;}}
.ss-animate{animation:ssFadeUp 0.7s ease-out both;}
.ss-delay-1{animation-delay:0.15s;}
.ss-delay-2{animation-delay:0.3s;}
.ss-delay-3{animation-delay:0.45s;}
.ss-delay-4{animation-delay:0.6s;}
</style>`

// animationInjector injects the keyframe block, but only when animation
// class names are referenced and the keyframes are missing.
type animationInjector struct{}

func (a *animationInjector) Name() string { return "animations" }

func (a *animationInjector) Process(doc string) (string, error) {
	if !strings.Contains(doc, "ss-animate") {
		return doc, nil
	}
	if strings.Contains(doc, "@keyframes ssFadeUp") {
		return doc, nil
	}
	return injectIntoHead(doc, animationKeyframes), nil
}

// injectIntoHead places a block before </head>, falling back to prepending
// when the document is a bare fragment.
func injectIntoHead(doc, block string) string {
	if idx := strings.Index(doc, "</head>"); idx >= 0 {
		return doc[:idx] + block + "\n" + doc[idx:]
	}
	return block + "\n" + doc
}

// hexToRGB decomposes #rrggbb (or #rgb) into an "r, g, b" triplet.
// Unparsable colors decompose to black rather than invalid CSS.
func hexToRGB(hex string) string {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return "0, 0, 0"
	}
	r, err1 := strconv.ParseUint(h[0:2], 16, 8)
	g, err2 := strconv.ParseUint(h[2:4], 16, 8)
	b, err3 := strconv.ParseUint(h[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return "0, 0, 0"
	}
	return fmt.Sprintf("%d, %d, %d", r, g, b)
}
