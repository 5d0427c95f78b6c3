// Package htmlcheck performs structural sanity checks on generated
// documents.
package htmlcheck

import (
	"strings"

	"golang.org/x/net/html"
)

// skippedElements are elements whose text never renders.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"head":     true,
	"title":    true,
	"noscript": true,
	"template": true,
}

// HasVisibleContent reports whether the document renders any visible text
// or imagery at all. It parses the markup and walks the body for non-empty
// text nodes and <img> elements, ignoring script, style and head content.
// Unparsable input reports false.
func HasVisibleContent(doc string) bool {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return false
	}
	return hasVisible(root)
}

func hasVisible(n *html.Node) bool {
	if n.Type == html.ElementNode {
		if skippedElements[n.Data] {
			return false
		}
		if n.Data == "img" || n.Data == "svg" {
			return true
		}
	}
	if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
		return true
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if hasVisible(child) {
			return true
		}
	}
	return false
}
