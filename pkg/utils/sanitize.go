package utils

import "regexp"

var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// SanitizeString strips control characters from free-text form input
// before it is stored or echoed back into a page.
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}
