package layout

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Цены выводятся в формате de-DE: "1.234,50 €" (с неразрывным пробелом перед знаком валюты)
var priceLocale = language.German

const currencySuffix = "\u00a0€"

// FormatPrice форматирует цену как EUR в немецкой локали
func FormatPrice(v float64) string {
	p := message.NewPrinter(priceLocale)
	return p.Sprintf("%v", number.Decimal(v, number.Scale(2))) + currencySuffix
}

// htmlEscaper экранирует ровно четыре символа. Replacer делает один проход,
// поэтому '&' в уже сгенерированных сущностях повторно не экранируется.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeHTML экранирует & < > "
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
