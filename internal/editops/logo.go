package editops

import "regexp"

// Logo detection heuristics, tried in order. The first match wins. Each
// pattern captures enough context to rewrite the element in place.
var logoPatterns = []*regexp.Regexp{
	// <img> whose class mentions "logo".
	regexp.MustCompile(`(?is)<img\b[^>]*\bclass\s*=\s*["'][^"']*logo[^"']*["'][^>]*>`),

	// <img> whose alt text mentions "logo".
	regexp.MustCompile(`(?is)<img\b[^>]*\balt\s*=\s*["'][^"']*logo[^"']*["'][^>]*>`),
}

var (
	navBlockPattern = regexp.MustCompile(`(?is)<nav\b.*?</nav>`)
	svgPattern      = regexp.MustCompile(`(?is)<svg\b.*?</svg>`)
	imgPattern      = regexp.MustCompile(`(?is)<img\b[^>]*>`)
	srcAttrPattern  = regexp.MustCompile(`(?is)\bsrc\s*=\s*(["'])[^"']*(["'])`)
)

// ReplaceLogo rewrites the document's logo element to reference url,
// without a model round-trip. Heuristics in priority order:
//
//  1. an <img> with "logo" in its class
//  2. an <img> with "logo" in its alt text
//  3. an inline <svg> inside the <nav>, replaced with an <img>
//  4. the first <img> inside the <nav>
//
// Returns the updated document and whether any element was rewritten.
func ReplaceLogo(doc, url string) (string, bool) {
	for _, pattern := range logoPatterns {
		if loc := pattern.FindStringIndex(doc); loc != nil {
			replaced := rewriteSrc(doc[loc[0]:loc[1]], url)
			return doc[:loc[0]] + replaced + doc[loc[1]:], true
		}
	}

	navLoc := navBlockPattern.FindStringIndex(doc)
	if navLoc == nil {
		return doc, false
	}
	nav := doc[navLoc[0]:navLoc[1]]

	if loc := svgPattern.FindStringIndex(nav); loc != nil {
		img := `<img src="` + url + `" alt="Logo" class="ss-logo">`
		updated := nav[:loc[0]] + img + nav[loc[1]:]
		return doc[:navLoc[0]] + updated + doc[navLoc[1]:], true
	}

	if loc := imgPattern.FindStringIndex(nav); loc != nil {
		replaced := rewriteSrc(nav[loc[0]:loc[1]], url)
		updated := nav[:loc[0]] + replaced + nav[loc[1]:]
		return doc[:navLoc[0]] + updated + doc[navLoc[1]:], true
	}

	return doc, false
}

// rewriteSrc points an <img> tag's src attribute at url, adding the
// attribute when the tag has none.
func rewriteSrc(tag, url string) string {
	if loc := srcAttrPattern.FindStringIndex(tag); loc != nil {
		return tag[:loc[0]] + `src="` + url + `"` + tag[loc[1]:]
	}
	return tag[:len(tag)-1] + ` src="` + url + `">`
}
