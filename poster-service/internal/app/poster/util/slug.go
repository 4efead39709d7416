package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FallbackSlug возвращается, когда от входной строки ничего не осталось
const FallbackSlug = "kategori"

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify строит URL-безопасный ключ из названия категории:
// NFD разложение, удаление combining marks, нижний регистр по немецкой локали,
// каждая серия символов вне [a-z0-9] заменяется одним '-'.
// "Käse" -> "kase", "" -> "kategori".
func Slugify(input string) string {
	// transform.Transformer и cases.Caser хранят состояние, поэтому создаются на каждый вызов
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.M)))
	s, _, err := transform.String(stripMarks, input)
	if err != nil {
		s = input
	}

	s = cases.Lower(language.German).String(s)
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		return FallbackSlug
	}
	return s
}
