package postprocess

import (
	"strconv"
	"strings"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

// logoResolver replaces the single logo token with the resolved logo asset,
// or an empty string when none exists - never a broken reference.
type logoResolver struct {
	registry *domain.PlaceholderRegistry
}

func (r *logoResolver) Name() string { return "logo" }

func (r *logoResolver) Process(doc string) (string, error) {
	logo := ""
	if r.registry != nil {
		logo = r.registry.Logo
	}
	return strings.ReplaceAll(doc, domain.LogoToken(), logo), nil
}

// imageResolver replaces each numbered token by a 1-based lookup into the
// corresponding registry bucket. Indices past the bucket's length resolve
// to an empty string.
type imageResolver struct {
	registry *domain.PlaceholderRegistry
}

func (r *imageResolver) Name() string { return "images" }

func (r *imageResolver) Process(doc string) (string, error) {
	return domain.PlaceholderPattern.ReplaceAllStringFunc(doc, func(token string) string {
		category, index, ok := parseToken(token)
		if !ok || category == domain.PlaceholderLogo {
			// Unknown shapes and the logo token are left for later stages.
			return token
		}
		if r.registry == nil {
			return ""
		}
		return r.registry.Resolve(category, index)
	}), nil
}

// parseToken splits a [[ID_<CATEGORY>_<N>_HERE]] token into its parts.
// Returns ok=false for tokens without a numeric index.
func parseToken(token string) (category string, index int, ok bool) {
	inner := strings.TrimSuffix(strings.TrimPrefix(token, "[[ID_"), "_HERE]]")
	cut := strings.LastIndexByte(inner, '_')
	if cut < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(inner[cut+1:])
	if err != nil {
		return "", 0, false
	}
	return inner[:cut], n, true
}
