package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// SanitizeString removes potentially dangerous characters and escapes HTML
func SanitizeString(input string) string {
	// Trim whitespace
	trimmed := strings.TrimSpace(input)

	// Drop tags and control characters before escaping
	cleaned := removeControlChars(stripHTML(trimmed))

	return html.EscapeString(cleaned)
}

// SanitizeOptional applies SanitizeString to an optional field and turns
// blank values into nil.
func SanitizeOptional(input *string) *string {
	if input == nil {
		return nil
	}
	s := SanitizeString(*input)
	if s == "" {
		return nil
	}
	return &s
}

// SanitizePlate normalises a licence plate: upper case, no inner spaces.
func SanitizePlate(plate string) string {
	plate = strings.ToUpper(stripHTML(strings.TrimSpace(plate)))

	var result strings.Builder
	for _, r := range plate {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// stripHTML removes HTML tags from string
func stripHTML(input string) string {
	return htmlTag.ReplaceAllString(input, "")
}

// removeControlChars removes control characters from string
func removeControlChars(input string) string {
	var result strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) || r == ' ' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
