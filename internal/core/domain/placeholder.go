package domain

import (
	"fmt"
	"regexp"
)

// Placeholder categories. Tokens have the form [[ID_<CATEGORY>[_<N>]_HERE]]
// where N is a 1-based index for numbered buckets. The logo token carries no
// index.
const (
	PlaceholderLogo    = "LOGO"
	PlaceholderHero    = "HERO_IMAGE"
	PlaceholderService = "SERVICE_IMAGE"
	PlaceholderGallery = "GALLERY_IMAGE"
	PlaceholderTeam    = "TEAM_IMAGE"
)

// PlaceholderPattern matches any placeholder token, resolved or not. It is
// the general pattern the post-processor validates against.
var PlaceholderPattern = regexp.MustCompile(`\[\[ID_[A-Z_]+?(?:_(\d+))?_HERE\]\]`)

// LogoToken returns the single logo placeholder token.
func LogoToken() string {
	return fmt.Sprintf("[[ID_%s_HERE]]", PlaceholderLogo)
}

// IndexedToken returns the numbered placeholder token for a category.
// Index is 1-based.
func IndexedToken(category string, index int) string {
	return fmt.Sprintf("[[ID_%s_%d_HERE]]", category, index)
}

// PlaceholderRegistry maps symbolic asset tokens to real asset references.
// A nil/empty target resolves to an empty string, never a broken reference.
type PlaceholderRegistry struct {
	// Logo is the resolved logo asset URL, empty if none exists.
	Logo string

	// Buckets maps a category to its ordered asset URLs. Numbered tokens
	// resolve by 1-based index into the bucket; indices past the end
	// resolve to empty string.
	Buckets map[string][]string
}

// NewPlaceholderRegistry builds a registry from a SiteIdentity's image map.
func NewPlaceholderRegistry(identity *SiteIdentity) *PlaceholderRegistry {
	r := &PlaceholderRegistry{
		Buckets: make(map[string][]string),
	}
	if identity == nil {
		return r
	}

	r.Logo = identity.Logo.URL
	r.Buckets[PlaceholderHero] = imageURLs(identity.ImagesFor(ImageRoleHero))
	r.Buckets[PlaceholderService] = imageURLs(identity.ImagesFor(ImageRoleServices))
	r.Buckets[PlaceholderGallery] = imageURLs(identity.ImagesFor(ImageRoleGallery))

	team := make([]string, 0, len(identity.Team))
	for _, m := range identity.Team {
		team = append(team, m.Photo.URL)
	}
	r.Buckets[PlaceholderTeam] = team

	return r
}

// Resolve maps a token's category and 1-based index to an asset URL.
// Unknown categories and out-of-range indices return an empty string.
func (r *PlaceholderRegistry) Resolve(category string, index int) string {
	if category == PlaceholderLogo {
		return r.Logo
	}
	bucket := r.Buckets[category]
	if index < 1 || index > len(bucket) {
		return ""
	}
	return bucket[index-1]
}

// Add appends an asset URL to a category bucket. Used when the image
// generation collaborator produces new assets for the registry.
func (r *PlaceholderRegistry) Add(category, url string) {
	if category == PlaceholderLogo {
		r.Logo = url
		return
	}
	if r.Buckets == nil {
		r.Buckets = make(map[string][]string)
	}
	r.Buckets[category] = append(r.Buckets[category], url)
}

func imageURLs(refs []ImageRef) []string {
	urls := make([]string, 0, len(refs))
	for _, ref := range refs {
		urls = append(urls, ref.URL)
	}
	return urls
}
