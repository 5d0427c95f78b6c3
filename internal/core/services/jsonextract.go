package services

import (
	"strings"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

// extractJSONObject locates the first balanced {...} substring in a model
// response. Models are not trusted to omit prose or markdown fencing around
// structured payloads, and the first '{' is not assumed to open a well-formed
// object: braces inside JSON strings are skipped and an unbalanced candidate
// is reported as no payload, not a parse error.
//
// Returns domain.ErrNoStructuredPayload when no balanced object exists and
// domain.ErrEmptyPayload when the located object contains nothing usable.
func extractJSONObject(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", domain.ErrNoStructuredPayload
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(raw); i++ {
		c := raw[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				obj := raw[start : i+1]
				if isEmptyObject(obj) {
					return "", domain.ErrEmptyPayload
				}
				return obj, nil
			}
		}
	}

	return "", domain.ErrNoStructuredPayload
}

// isEmptyObject reports whether the object holds no members.
func isEmptyObject(obj string) bool {
	inner := strings.TrimSpace(obj[1 : len(obj)-1])
	return inner == ""
}
