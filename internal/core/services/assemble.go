package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

// rootTag matches the opening tag of a fragment's root element.
var rootTag = regexp.MustCompile(`(?s)\A\s*<([a-zA-Z][a-zA-Z0-9]*)([^>]*)>`)

// idAttr matches an id attribute inside an opening tag.
var idAttr = regexp.MustCompile(`\sid\s*=\s*"[^"]*"`)

// AssembleDocument stitches navigation, generated sections and footer into
// one document and prepends a style block derived from the manifest's fonts
// and the blueprint's color scheme.
//
// Sections are ordered by the originating SectionSpec's priority, never by
// generation completion order, so slow sections cannot shift page layout.
// This function is deterministic; malformed inputs are a programming error,
// not a runtime condition to recover from.
func AssembleDocument(blueprint *domain.SiteBlueprint, manifest *domain.BrandManifest, results []domain.SectionResult) string {
	priority := make(map[string]int, len(blueprint.Sections))
	for _, spec := range blueprint.Sections {
		priority[spec.ID] = spec.Priority
	}

	ordered := make([]domain.SectionResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return priority[ordered[i].ID] < priority[ordered[j].ID]
	})

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", htmlEscape(manifest.BusinessName))
	b.WriteString(fontLinks(manifest))
	b.WriteString(baseStyle(blueprint, manifest))
	b.WriteString("</head>\n<body>\n")

	b.WriteString(buildNav(manifest, blueprint.NavLinks))

	b.WriteString("<main>\n")
	for _, result := range ordered {
		b.WriteString(ensureRootID(result.HTML, result.ID))
		b.WriteString("\n")
	}
	b.WriteString("</main>\n")

	b.WriteString(buildFooter(manifest))
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

// ensureRootID injects the section id into the fragment's root element when
// the model omitted it.
func ensureRootID(fragment, id string) string {
	m := rootTag.FindStringSubmatchIndex(fragment)
	if m == nil {
		// No recognisable root element; wrap the fragment.
		return fmt.Sprintf("<section id=%q>%s</section>", id, fragment)
	}

	attrs := fragment[m[4]:m[5]]
	if idAttr.MatchString(attrs + " ") {
		existing := idAttr.FindString(attrs)
		if strings.Contains(existing, fmt.Sprintf("%q", id)) {
			return fragment
		}
		// Root element carries a different id; replace it.
		return fragment[:m[4]] + idAttr.ReplaceAllString(attrs, fmt.Sprintf(` id=%q`, id)) + fragment[m[5]:]
	}

	return fragment[:m[5]] + fmt.Sprintf(` id=%q`, id) + fragment[m[5]:]
}

// buildNav renders the fixed navigation block with the logo token and the
// blueprint's nav links.
func buildNav(manifest *domain.BrandManifest, links []domain.NavLink) string {
	var b strings.Builder
	b.WriteString(`<nav class="ss-nav"><div class="ss-nav-inner">`)
	fmt.Fprintf(&b, `<a class="ss-brand" href="#"><img class="ss-logo" src="%s" alt="%s logo">%s</a>`,
		domain.LogoToken(), htmlEscape(manifest.BusinessName), htmlEscape(manifest.BusinessName))
	b.WriteString(`<div class="ss-nav-links">`)
	for _, link := range links {
		fmt.Fprintf(&b, `<a href=%q>%s</a>`, link.Href, htmlEscape(link.Label))
	}
	b.WriteString("</div></div></nav>\n")
	return b.String()
}

// buildFooter renders the footer with contact details from the manifest.
func buildFooter(manifest *domain.BrandManifest) string {
	var b strings.Builder
	b.WriteString(`<footer class="ss-footer">`)
	fmt.Fprintf(&b, "<p>&copy; %s</p>", htmlEscape(manifest.BusinessName))
	var contact []string
	if manifest.Phone != "" {
		contact = append(contact, htmlEscape(manifest.Phone))
	}
	if manifest.Email != "" {
		contact = append(contact, htmlEscape(manifest.Email))
	}
	if manifest.Address != "" {
		contact = append(contact, htmlEscape(manifest.Address))
	}
	if len(contact) > 0 {
		fmt.Fprintf(&b, "<p>%s</p>", strings.Join(contact, " &middot; "))
	}
	b.WriteString("</footer>\n")
	return b.String()
}

// fontLinks emits Google Fonts links for the manifest's font pair.
func fontLinks(manifest *domain.BrandManifest) string {
	families := []string{}
	if manifest.FontHeadline != "" {
		families = append(families, strings.ReplaceAll(manifest.FontHeadline, " ", "+"))
	}
	if manifest.FontBody != "" && manifest.FontBody != manifest.FontHeadline {
		families = append(families, strings.ReplaceAll(manifest.FontBody, " ", "+"))
	}
	if len(families) == 0 {
		return ""
	}

	var b strings.Builder
	for _, f := range families {
		fmt.Fprintf(&b, "<link href=\"https://fonts.googleapis.com/css2?family=%s:wght@400;600;700&display=swap\" rel=\"stylesheet\">\n", f)
	}
	return b.String()
}

// baseStyle is the shared config block: typography and layout chrome for
// the assembler-owned nav and footer. Color custom properties are injected
// by the post-processor so model-emitted documents get them too.
func baseStyle(blueprint *domain.SiteBlueprint, manifest *domain.BrandManifest) string {
	return fmt.Sprintf(`<style>
*{margin:0;padding:0;box-sizing:border-box;}
body{font-family:'%s',sans-serif;color:%s;background:%s;}
h1,h2,h3,h4{font-family:'%s',sans-serif;}
.ss-nav{position:sticky;top:0;background:%s;box-shadow:0 1px 4px rgba(0,0,0,0.08);z-index:10;}
.ss-nav-inner{max-width:1100px;margin:0 auto;display:flex;align-items:center;justify-content:space-between;padding:12px 24px;}
.ss-brand{display:flex;align-items:center;gap:10px;font-weight:700;text-decoration:none;color:inherit;}
.ss-logo{height:40px;}
.ss-logo[src=""]{display:none;}
.ss-nav-links a{margin-left:20px;text-decoration:none;color:inherit;}
.ss-footer{padding:32px 24px;text-align:center;background:%s;color:#fff;}
.ss-footer p{margin:4px 0;}
</style>
`,
		manifest.FontBody, blueprint.ColorScheme.Text, blueprint.ColorScheme.Background,
		manifest.FontHeadline, blueprint.ColorScheme.Background, blueprint.ColorScheme.Primary)
}

// htmlEscape escapes the characters that matter in our generated attributes
// and text.
func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
