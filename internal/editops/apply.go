package editops

import (
	"regexp"
	"strings"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

// ApplyResult reports the outcome of applying an ordered operation set.
type ApplyResult struct {
	// HTML is the document after all matching operations were applied.
	HTML string

	// Applied counts the operations whose search text was found.
	Applied int

	// Failed lists the search strings that matched nothing, in order.
	Failed []string
}

// Apply folds operations over the document in order. Each operation's
// search text is evaluated against the document state produced by the
// operations before it, so chained rewrites of the same region work.
//
// Matching is exact first; when exact matching fails the search text is
// retried as a whitespace-tolerant pattern. Only the first occurrence is
// replaced. Operations that match nothing are skipped and recorded.
func Apply(doc string, ops []domain.EditOperation) ApplyResult {
	result := ApplyResult{HTML: doc}

	for _, op := range ops {
		updated, ok := applyOne(result.HTML, op)
		if !ok {
			result.Failed = append(result.Failed, op.Search)
			continue
		}
		result.HTML = updated
		result.Applied++
	}

	return result
}

func applyOne(doc string, op domain.EditOperation) (string, bool) {
	if idx := strings.Index(doc, op.Search); idx >= 0 {
		return doc[:idx] + op.Replace + doc[idx+len(op.Search):], true
	}

	pattern, ok := fuzzyPattern(op.Search)
	if !ok {
		return doc, false
	}
	loc := pattern.FindStringIndex(doc)
	if loc == nil {
		return doc, false
	}
	return doc[:loc[0]] + op.Replace + doc[loc[1]:], true
}

// fuzzyPattern compiles a whitespace-tolerant regex from search text: the
// text is split on whitespace runs, each part quoted, and the parts joined
// by \s+. Model output frequently differs from the document only in
// indentation and line breaks; this recovers those matches.
func fuzzyPattern(search string) (*regexp.Regexp, bool) {
	parts := strings.Fields(search)
	if len(parts) == 0 {
		return nil, false
	}

	quoted := make([]string, len(parts))
	for i, part := range parts {
		quoted[i] = regexp.QuoteMeta(part)
	}

	pattern, err := regexp.Compile(strings.Join(quoted, `\s+`))
	if err != nil {
		return nil, false
	}
	return pattern, true
}
