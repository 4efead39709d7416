package layout

import (
	"strconv"
	"strings"
)

const pageStyle = "@page { size: A4; margin: 18mm; }" +
	"body { font-family: Arial, sans-serif; }" +
	"h1 { text-align: center; margin-bottom: 16px; }" +
	"h2.category { font-size: 14px; margin: 12px 0 6px; border-bottom: 1px solid #ccc; }" +
	".grid { display: flex; flex-wrap: wrap; gap: 8px; }" +
	".card { position: relative; border: 1px solid #ccc; padding: 8px; box-sizing: border-box; }" +
	".image-wrapper { height: 120px; text-align: center; }" +
	".image-wrapper img { max-height: 120px; max-width: 100%; object-fit: contain; }" +
	".name { font-size: 12px; margin-top: 4px; min-height: 32px; }" +
	".prices { margin-top: 4px; }" +
	".current { font-size: 16px; font-weight: bold; color: #c0392b; }" +
	".old { font-size: 12px; text-decoration: line-through; color: #7f8c8d; }" +
	".badge { position: absolute; top: 4px; left: 4px; background: #e74c3c; color: #fff; padding: 2px 6px; font-size: 10px; border-radius: 4px; }" +
	".footer { position: fixed; bottom: 10mm; left: 0; right: 0; text-align: center; font-size: 10px; color: #555; }"

// RenderHTML эмитирует документ как самодостаточную HTML страницу.
// Вывод детерминирован: одинаковый документ даёт одинаковые байты.
func RenderHTML(doc *Document) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html><html lang="tr"><head><meta charset="UTF-8"/><style>`)
	b.WriteString(pageStyle)
	b.WriteString(".card { width: ")
	b.WriteString(strconv.Itoa(doc.CardWidthPct))
	b.WriteString("%; }")
	b.WriteString("</style></head><body>")

	b.WriteString("<h1>")
	b.WriteString(EscapeHTML(doc.Title))
	b.WriteString("</h1>")

	if len(doc.Sections) == 0 {
		b.WriteString(`<div class="grid"></div>`)
	}
	for _, section := range doc.Sections {
		if doc.ShowSectionHeadings {
			b.WriteString(`<h2 class="category">`)
			b.WriteString(EscapeHTML(section.Category))
			b.WriteString("</h2>")
		}
		b.WriteString(`<div class="grid">`)
		for _, card := range section.Cards {
			writeCard(&b, card)
		}
		b.WriteString("</div>")
	}

	b.WriteString(`<div class="footer">`)
	b.WriteString(EscapeHTML(doc.Footer()))
	b.WriteString("</div></body></html>")

	return b.String()
}

func writeCard(b *strings.Builder, card Card) {
	b.WriteString(`<div class="card">`)
	if card.Badge != "" {
		b.WriteString(`<div class="badge">`)
		b.WriteString(EscapeHTML(card.Badge))
		b.WriteString("</div>")
	}

	b.WriteString(`<div class="image-wrapper"><img src="`)
	b.WriteString(EscapeHTML(card.ImageURL))
	b.WriteString(`" alt="`)
	b.WriteString(EscapeHTML(card.Name))
	b.WriteString(`"/></div>`)

	b.WriteString(`<div class="name">`)
	b.WriteString(EscapeHTML(card.Name))
	b.WriteString("</div>")

	b.WriteString(`<div class="prices"><div class="current">`)
	b.WriteString(EscapeHTML(card.Price))
	b.WriteString("</div>")
	if card.OldPrice != "" {
		b.WriteString(`<div class="old">`)
		b.WriteString(EscapeHTML(card.OldPrice))
		b.WriteString("</div>")
	}
	b.WriteString("</div></div>")
}
