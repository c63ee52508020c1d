package report

import (
	"strings"

	"golang.org/x/net/html"
)

// ValidSVG reports whether the markup contains an svg element and can
// be tokenized without structural surprises. Extracted SVG fragments are
// embedded inline into the report document unescaped, so a fragment that
// does not even tokenize as markup with an svg root has no business
// there; the report degrades by omitting the live-render panel.
//
// Design decision: We tokenize with golang.org/x/net/html rather than
// encoding/xml because model-produced SVG is frequently sloppy markup
// (unquoted attributes, unclosed tags) that a strict XML parser rejects
// even though browsers render it fine. The tokenizer matches what a
// browser will actually do with the fragment.
func ValidSVG(markup string) bool {
	if markup == "" {
		return false
	}

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// EOF or unrecoverable input; either way no svg element was seen.
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "svg" {
				return true
			}
		default:
			// Text, comments, end tags: keep scanning.
		}
	}
}
