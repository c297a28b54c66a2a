// Package redact removes sensitive information from strings before they
// are logged. It prevents accidental leakage of credentials, connection
// strings, and tokens that might be embedded in error messages.
package redact

import "regexp"

// RedactionPlaceholder replaces any matched sensitive fragment.
const RedactionPlaceholder = "[REDACTED]"

// Precompiled redaction patterns.
var patterns = []*regexp.Regexp{
	// Database connection strings with embedded credentials
	regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`),

	// Password-like key/value fragments
	regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`),

	// API keys, secrets and bearer tokens
	regexp.MustCompile(`(?i)(api[_-]?key|token|secret|bearer)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),

	// JWT tokens (three-part base64url format)
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
}

// String redacts sensitive fragments from s.
func String(s string) string {
	for _, re := range patterns {
		s = re.ReplaceAllString(s, RedactionPlaceholder)
	}
	return s
}

// Error redacts the message of err. Returns an empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
