// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips markup from user-provided text before it is
// stored. Message bodies, group fields and display names are plain text in
// this API; anything that looks like HTML is removed rather than escaped so
// that the SPA can render stored values directly.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.StrictPolicy()

// Sanitize removes all HTML elements and attributes from s, leaving the
// text content.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}
