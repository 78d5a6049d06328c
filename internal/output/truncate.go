package output

import "unicode/utf8"

// Marker is appended when captured output exceeds the configured bound.
const Marker = "\n... (output truncated)"

// DefaultMaxLength bounds captured stdout/stderr characters unless
// configured otherwise.
const DefaultMaxLength = 10000

// Truncate bounds text to maxLength characters and appends Marker when
// content was dropped. The bound counts runes, not bytes, so multi-byte
// sequences are never split mid-codepoint.
func Truncate(text string, maxLength int) string {
	if maxLength <= 0 || utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLength]) + Marker
}
