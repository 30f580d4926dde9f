// Package strcase converts space separated words between letter cases.
//
// Words are split on single spaces and trimmed, so callers normalizing
// dash-case or snake_case input replace the separators with spaces first:
//
//	strcase.CamelCase(strings.ReplaceAll("share-target", "-", " ")) // "shareTarget"
package strcase

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers are stateful, so each conversion builds its own.
func upper() cases.Caser { return cases.Upper(language.Und) }
func lower() cases.Caser { return cases.Lower(language.Und) }

// Words splits s on spaces, trims every word and applies filter (if any).
func Words(s string, filter func(word string, i int) string) []string {
	words := strings.Split(s, " ")
	for i, w := range words {
		w = strings.TrimSpace(w)
		if filter != nil {
			w = filter(w, i)
		}
		words[i] = w
	}
	return words
}

// Chars splits s into per-word character lists.
func Chars(s string) [][]string {
	words := Words(s, nil)
	out := make([][]string, len(words))
	for i, w := range words {
		for _, r := range w {
			out[i] = append(out[i], string(r))
		}
	}
	return out
}

func mapFirst(word string, c cases.Caser) string {
	if word == "" {
		return word
	}
	_, size := utf8.DecodeRuneInString(word)
	return c.String(word[:size]) + word[size:]
}

// Capitalize upper-cases the first letter of every word.
//
//	Capitalize("my string") // "My String"
func Capitalize(s string) string {
	return strings.Join(Words(s, func(w string, _ int) string { return mapFirst(w, upper()) }), " ")
}

// Uncapitalize lower-cases the first letter of every word.
//
//	Uncapitalize("My PascalCase String") // "my pascalCase string"
func Uncapitalize(s string) string {
	return strings.Join(Words(s, func(w string, _ int) string { return mapFirst(w, lower()) }), " ")
}

// CamelCase joins words with every word but the first capitalized.
//
//	CamelCase("my string") // "myString"
func CamelCase(s string) string {
	return strings.Join(Words(s, func(w string, i int) string {
		if i > 0 {
			return mapFirst(w, upper())
		}
		return mapFirst(w, lower())
	}), "")
}

// PascalCase is CamelCase with the first letter capitalized.
func PascalCase(s string) string {
	return Capitalize(CamelCase(s))
}

// SnakeCase lower-cases words and joins them with underscores.
func SnakeCase(s string) string {
	return strings.Join(Words(s, func(w string, _ int) string { return lower().String(w) }), "_")
}

// KebabCase lower-cases words and joins them with dashes.
func KebabCase(s string) string {
	return strings.Join(Words(s, func(w string, _ int) string { return lower().String(w) }), "-")
}

// FromDashed camel-cases a dash separated name ("share-target" -> "shareTarget").
func FromDashed(s string) string {
	return CamelCase(strings.ReplaceAll(s, "-", " "))
}
