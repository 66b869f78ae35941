package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy removes all HTML tags and attributes. Used for fields
	// that must be plain text (titles, venues, organizers).
	strictPolicy = bluemonday.StrictPolicy()

	// ugcPolicy allows safe user-generated content with basic formatting
	// (<p>, <b>, <i>, <em>, <strong>, <a>, lists, <br>). Used for event
	// descriptions.
	ugcPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML and returns plain text.
func Text(input string) string {
	return strictPolicy.Sanitize(input)
}

// HTML sanitizes content while keeping safe formatting tags. Removes
// <script>, <iframe>, event handlers and style attributes.
func HTML(input string) string {
	return ugcPolicy.Sanitize(input)
}
