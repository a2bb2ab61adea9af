// Package htmlsanitize cleans user-entered rich text before it is
// persisted. Proposal descriptions and scopes may carry simple HTML
// formatting from the SPA's editor; titles, names, and comments are
// plain text.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps user-generated-content-safe HTML (paragraphs, emphasis,
// links) and strips scripts, event handlers, and javascript: URLs.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// Strip removes all HTML, leaving plain text. Used for titles and any
// field rendered outside a rich-text context.
func Strip(s string) string {
	return strict.Sanitize(s)
}
