// Package redact scrubs state text before it is written to the audit trail.
// Blocked states are by definition likely to carry image data or pasted
// binary blobs, and user-typed goals occasionally carry credentials.
package redact

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	redactedPlaceholder = "[REDACTED]"

	// MaxAuditChars bounds how much of a single state is kept in the audit trail.
	MaxAuditChars = 512
)

var payloadPatterns = []*regexp.Regexp{
	// Inline data URIs, with or without a base64 body.
	regexp.MustCompile(`(?i)data:image/[a-z0-9.+-]+(;[a-z0-9=.-]+)*(;base64)?,[A-Za-z0-9+/=%]*`),
	// Any other "base64," marker followed by a body.
	regexp.MustCompile(`(?i)base64,[A-Za-z0-9+/=]+`),
}

// base64Run finds candidate bare base64 runs; looksEncoded decides which of
// them are payloads rather than paths or long words.
var base64Run = regexp.MustCompile(`[A-Za-z0-9+/]{40,}={0,2}`)

// pathSegment matches a word-like path component such as "home" or "Projects2024".
var pathSegment = regexp.MustCompile(`^[A-Za-z0-9]?[a-z0-9]*$`)

var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`-----BEGIN (RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY-----`),
	regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_.-]{20,}`),
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36}`),
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password|passwd)\s*[=:]\s*['"]?[^\s'"]{8,}['"]?`),
}

// Payload replaces embedded binary payloads and secrets with a placeholder
// and truncates whatever remains to MaxAuditChars characters.
func Payload(input string) string {
	result := input
	for _, p := range payloadPatterns {
		result = p.ReplaceAllString(result, redactedPlaceholder)
	}
	result = base64Run.ReplaceAllStringFunc(result, func(run string) string {
		if looksEncoded(run) {
			return redactedPlaceholder
		}
		return run
	})
	for _, p := range secretPatterns {
		result = p.ReplaceAllString(result, redactedPlaceholder)
	}
	return Truncate(result, MaxAuditChars)
}

// looksEncoded reports whether a run of base64 alphabet characters is an
// encoded blob. Slash-separated word sequences are paths, and encoded data
// mixes cases and digits or carries '+'.
func looksEncoded(run string) bool {
	body := strings.TrimRight(run, "=")
	if strings.Count(body, "/") >= 2 && isPath(body) {
		return false
	}
	if strings.Contains(body, "+") {
		return true
	}
	var upper, lower, digit bool
	for _, r := range body {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

func isPath(s string) bool {
	for _, seg := range strings.Split(s, "/") {
		if !pathSegment.MatchString(seg) {
			return false
		}
	}
	return true
}

// Truncate cuts s to max characters, noting how many were dropped.
func Truncate(s string, max int) string {
	n := utf8.RuneCountInString(s)
	if max <= 0 || n <= max {
		return s
	}
	runes := []rune(s)
	return fmt.Sprintf("%s...[truncated %d chars]", string(runes[:max]), n-max)
}
