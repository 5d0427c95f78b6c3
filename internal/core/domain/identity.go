package domain

// ImageRole buckets extracted images by their inferred purpose on the page.
type ImageRole string

// Recognised image roles.
const (
	ImageRoleHero     ImageRole = "hero"
	ImageRoleServices ImageRole = "services"
	ImageRoleGallery  ImageRole = "gallery"
	ImageRoleAbout    ImageRole = "about"
	ImageRoleLogo     ImageRole = "logo"
	ImageRoleTeam     ImageRole = "team"
)

// ImageRef points at a stored image asset.
type ImageRef struct {
	// URL is the asset store location. Empty means the asset is unavailable.
	URL string

	// Alt is an optional description used for accessibility text.
	Alt string
}

// Testimonial is a customer quote extracted from the source site.
type Testimonial struct {
	Quote  string
	Author string
}

// TeamMember describes a person listed on the source site.
type TeamMember struct {
	Name  string
	Role  string
	Photo ImageRef
}

// ContactInfo holds the contact details extracted for a business.
type ContactInfo struct {
	Phone   string
	Email   string
	Address string
	Hours   string
}

// SiteIdentity is the externally extracted description of a business's
// existing web presence. It is produced by the identity extraction
// collaborator and is an immutable input to the pipeline.
type SiteIdentity struct {
	BusinessName string
	Tagline      string

	// Colors is ordered by prominence; index 0 is the primary brand color.
	Colors []string

	Services     []string
	Testimonials []Testimonial
	Contact      ContactInfo
	NavHints     []string
	Team         []TeamMember

	// PageCopy is the raw text content extracted from the source pages.
	PageCopy string

	// Images buckets extracted images by inferred role. May be empty.
	Images map[ImageRole][]ImageRef

	// Logo is the extracted logo asset, if any.
	Logo ImageRef
}

// HasServices returns true if any services were extracted.
func (s *SiteIdentity) HasServices() bool {
	return len(s.Services) > 0
}

// HasTestimonials returns true if any testimonials were extracted.
func (s *SiteIdentity) HasTestimonials() bool {
	return len(s.Testimonials) > 0
}

// ImagesFor returns the images bucketed under the given role.
func (s *SiteIdentity) ImagesFor(role ImageRole) []ImageRef {
	if s.Images == nil {
		return nil
	}
	return s.Images[role]
}
