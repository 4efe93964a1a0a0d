// Package textutil holds the casing and normalization rules shared by the
// matcher, formatter and validator.
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}_\s,'-]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	wordChars       = regexp.MustCompile(`[\p{L}\p{N}]`)
)

// small words stay lower case inside a title, except in first position.
var smallWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "but": true, "or": true,
	"for": true, "nor": true, "on": true, "in": true, "at": true, "to": true,
	"by": true, "with": true,
}

// Normalize lowercases text, replaces everything except word characters,
// whitespace, commas, apostrophes and hyphens with a space, then collapses
// whitespace.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	cleaned := disallowedChars.ReplaceAllString(lowered, " ")
	return CollapseSpaces(cleaned)
}

// CollapseSpaces turns whitespace runs into one space and trims the ends.
func CollapseSpaces(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// TitleCase capitalizes every word and lowercases the rest of it.
func TitleCase(text string) string {
	return cases.Title(language.English).String(strings.ToLower(text))
}

// IsUpper reports whether text has letters and none of them are lower case.
func IsUpper(text string) bool {
	return wordChars.MatchString(text) && strings.ToUpper(text) == text
}

// IsLower reports whether text has no upper-case letters.
func IsLower(text string) bool {
	return strings.ToLower(text) == text
}

// IsTitleCase reports whether every word is capitalized with the rest lower
// case. Small connecting words after the first one may stay lower case.
func IsTitleCase(text string) bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}
	for i, word := range words {
		if i > 0 && smallWords[word] {
			continue
		}
		if TitleCase(word) != word {
			return false
		}
	}
	return true
}
