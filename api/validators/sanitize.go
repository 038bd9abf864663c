package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps the byte length of a
// free-text query value such as a search term or a mobile number.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
