package domain

const unknownDescription = "Unknown"

// DesignStyle is the layout aesthetic the planner chooses for a site.
type DesignStyle string

// Available design styles. The planner prompt enumerates exactly this set.
const (
	DesignStyleModern   DesignStyle = "modern"
	DesignStyleClassic  DesignStyle = "classic"
	DesignStyleBold     DesignStyle = "bold"
	DesignStyleMinimal  DesignStyle = "minimal"
	DesignStyleElegant  DesignStyle = "elegant"
	DesignStylePlayful  DesignStyle = "playful"
)

// IsValid returns true if the design style is recognised.
func (d DesignStyle) IsValid() bool {
	switch d {
	case DesignStyleModern, DesignStyleClassic, DesignStyleBold,
		DesignStyleMinimal, DesignStyleElegant, DesignStylePlayful:
		return true
	default:
		return false
	}
}

// Description returns a human-readable description of the style.
func (d DesignStyle) Description() string {
	switch d {
	case DesignStyleModern:
		return "Modern (clean lines, generous whitespace)"
	case DesignStyleClassic:
		return "Classic (traditional, serif-led)"
	case DesignStyleBold:
		return "Bold (large type, high contrast)"
	case DesignStyleMinimal:
		return "Minimal (sparse, content-first)"
	case DesignStyleElegant:
		return "Elegant (refined, muted palette)"
	case DesignStylePlayful:
		return "Playful (rounded shapes, vivid accents)"
	default:
		return unknownDescription
	}
}

// SectionType identifies what kind of page section a SectionSpec describes.
type SectionType string

// Recognised section types. Hero, services (when services exist) and contact
// are required; the rest are optional and gated on content availability.
const (
	SectionHero         SectionType = "hero"
	SectionServices     SectionType = "services"
	SectionAbout        SectionType = "about"
	SectionTestimonials SectionType = "testimonials"
	SectionGallery      SectionType = "gallery"
	SectionFAQ          SectionType = "faq"
	SectionTeam         SectionType = "team"
	SectionCTA          SectionType = "cta"
	SectionContact      SectionType = "contact"
)

// IsValid returns true if the section type is recognised.
func (t SectionType) IsValid() bool {
	switch t {
	case SectionHero, SectionServices, SectionAbout, SectionTestimonials,
		SectionGallery, SectionFAQ, SectionTeam, SectionCTA, SectionContact:
		return true
	default:
		return false
	}
}

// SectionSpec describes one planned section of the site.
type SectionSpec struct {
	// ID is the section's unique anchor id within the document.
	ID string `json:"id"`

	Type SectionType `json:"type"`

	// Priority orders sections on the final page; lower renders first.
	Priority int `json:"priority"`

	// ContentHints carries facts the section generator should work in.
	ContentHints string `json:"contentHints"`

	// ImageNeeded indicates the section should embed an image token.
	ImageNeeded bool `json:"imageNeeded"`
}

// NavLink is one entry in the generated navigation.
type NavLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// ColorScheme is the resolved palette for the generated site.
type ColorScheme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// SiteBlueprint is the structural plan for a site: ordered sections,
// navigation and a resolved color scheme.
type SiteBlueprint struct {
	DesignStyle DesignStyle   `json:"designStyle"`
	Sections    []SectionSpec `json:"sections"`
	NavLinks    []NavLink     `json:"navLinks"`
	ColorScheme ColorScheme   `json:"colorScheme"`
}

// Validate checks the blueprint invariants: section ids are unique and every
// nav link targeting an anchor refers to a section that will be generated.
func (b *SiteBlueprint) Validate() error {
	if len(b.Sections) == 0 {
		return ErrInvalidInput
	}

	seen := make(map[string]bool, len(b.Sections))
	for _, s := range b.Sections {
		if s.ID == "" || seen[s.ID] {
			return ErrInvalidInput
		}
		seen[s.ID] = true
	}

	for _, link := range b.NavLinks {
		if len(link.Href) > 1 && link.Href[0] == '#' && !seen[link.Href[1:]] {
			return ErrInvalidInput
		}
	}

	return nil
}
