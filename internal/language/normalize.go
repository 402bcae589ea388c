// Package language tidies user supplied language tags before they are sent
// upstream. It does not decide whether a code is supported.
package language

import "strings"

// Auto is the source language that asks the upstream to detect it.
const Auto = "auto"

// NormalizeTag lowercases a tag and uses "-" as separator ("EN_us" -> "en-us").
// It returns "" when the value is blank or contains anything but letters and
// separators.
func NormalizeTag(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	parts := strings.Split(trimmed, "-")
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !isAlphaLower(part) {
			return ""
		}
		normalized = append(normalized, part)
	}

	if len(normalized) == 0 {
		return ""
	}
	return strings.Join(normalized, "-")
}

// Resolve returns the normalized tag, or raw unchanged when it cannot be
// normalized so the upstream gets to reject it.
func Resolve(raw string) string {
	if tag := NormalizeTag(raw); tag != "" {
		return tag
	}
	return raw
}

func isAlphaLower(value string) bool {
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
