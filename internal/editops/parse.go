// Package editops parses model-emitted edit responses and applies their
// operations to a document.
//
// The structured response format is line-oriented sentinels:
//
//	@@RATIONALE@@
//	<short reasoning>
//	@@MESSAGE@@
//	<user-facing summary>
//	@@EDIT@@
//	<search text>
//	@@WITH@@
//	<replacement text>
//	@@END@@
//
// Edit blocks repeat. A response with no edit blocks falls back to being
// treated as a full replacement document, guarded against truncation.
package editops

import (
	"strings"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

// Sentinel markers in the structured edit-response format.
const (
	markerRationale = "@@RATIONALE@@"
	markerMessage   = "@@MESSAGE@@"
	markerEdit      = "@@EDIT@@"
	markerWith      = "@@WITH@@"
	markerEnd       = "@@END@@"
)

// ParsedResponse is the structured content of one model edit response.
type ParsedResponse struct {
	Rationale  string
	Message    string
	Operations []domain.EditOperation
}

// Parse extracts the rationale, user message and ordered edit operations
// from a structured response. Malformed blocks (missing @@WITH@@ or
// @@END@@, empty search text) are skipped rather than aborting the parse;
// whatever well-formed operations exist are still returned.
func Parse(response string) ParsedResponse {
	var parsed ParsedResponse

	parsed.Rationale = sectionBetween(response, markerRationale, markerMessage, markerEdit)
	parsed.Message = sectionBetween(response, markerMessage, markerEdit)

	rest := response
	for {
		start := strings.Index(rest, markerEdit)
		if start < 0 {
			break
		}
		rest = rest[start+len(markerEdit):]

		with := strings.Index(rest, markerWith)
		if with < 0 {
			break
		}
		end := strings.Index(rest, markerEnd)
		if end < 0 || end < with {
			break
		}

		search := trimBlock(rest[:with])
		replace := trimBlock(rest[with+len(markerWith) : end])
		rest = rest[end+len(markerEnd):]

		if search == "" {
			continue
		}
		parsed.Operations = append(parsed.Operations, domain.EditOperation{
			Search:  search,
			Replace: replace,
		})
	}

	return parsed
}

// ExtractFullDocument treats a response without structured edit blocks as a
// full replacement document: code fences are stripped and the result must
// look like markup. Returns ok=false when the response carries no document.
func ExtractFullDocument(response string) (string, bool) {
	doc := strings.TrimSpace(response)

	if strings.HasPrefix(doc, "```") {
		if idx := strings.IndexByte(doc, '\n'); idx >= 0 {
			doc = doc[idx+1:]
		}
		doc = strings.TrimSuffix(strings.TrimSpace(doc), "```")
		doc = strings.TrimSpace(doc)
	}

	if doc == "" || !strings.HasPrefix(doc, "<") {
		return "", false
	}
	return doc, true
}

// sectionBetween returns the trimmed text following marker up to the first
// of the given terminators (or end of input when none appears).
func sectionBetween(s, marker string, terminators ...string) string {
	start := strings.Index(s, marker)
	if start < 0 {
		return ""
	}
	section := s[start+len(marker):]

	end := len(section)
	for _, term := range terminators {
		if idx := strings.Index(section, term); idx >= 0 && idx < end {
			end = idx
		}
	}
	return strings.TrimSpace(section[:end])
}

// trimBlock trims the single leading and trailing newline around a block's
// payload while preserving interior whitespace, which may be significant
// in search text.
func trimBlock(s string) string {
	s = strings.TrimPrefix(s, "\r\n")
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\r\n")
	s = strings.TrimSuffix(s, "\n")
	return s
}
