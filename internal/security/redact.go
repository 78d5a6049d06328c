package security

import "strings"

var sensitiveSubstrings = []string{
	"token",
	"password",
	"passwd",
	"pwd",
	"secret",
	"apikey",
	"api_key",
	"access_key",
	"private_key",
	"credential",
	"auth",
	"passphrase",
	"cookie",
	"session",
	"jwt",
	"bearer",
	"signature",
}

const maskedValue = "***"

// logPreviewLength bounds payload text recorded in logs.
const logPreviewLength = 256

// RedactPayload prepares a command line or script for logging: values
// of KEY=VALUE assignments whose key looks secret-bearing are masked,
// and the result is bounded to a short preview.
func RedactPayload(text string) string {
	fields := strings.Fields(text)
	changed := false
	for i, field := range fields {
		key, _, ok := strings.Cut(field, "=")
		if !ok || !isSensitiveKey(key) {
			continue
		}
		fields[i] = key + "=" + maskedValue
		changed = true
	}

	redacted := text
	if changed {
		redacted = strings.Join(fields, " ")
	}
	if runes := []rune(redacted); len(runes) > logPreviewLength {
		redacted = string(runes[:logPreviewLength]) + "..."
	}
	return redacted
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	if lower == "" {
		return false
	}
	for _, part := range sensitiveSubstrings {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
