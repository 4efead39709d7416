// Package layout describes a poster as a renderer-agnostic tree and emits it as HTML
// for the PDF rasterizer.
package layout

// Document - корень дерева постера
type Document struct {
	Title string `json:"title"`
	// Columns и CardWidthPct зависят только от общего числа карточек
	Columns      int `json:"columns"`
	CardWidthPct int `json:"cardWidthPct"`
	// Заголовки секций выводятся только при нескольких категориях
	ShowSectionHeadings bool      `json:"showSectionHeadings"`
	Sections            []Section `json:"sections"`
	FooterLabel         string    `json:"footerLabel"`
	GeneratedOn         string    `json:"generatedOn"` // dd.MM.yyyy
}

// Section - группа карточек одной категории
type Section struct {
	Category string `json:"category"`
	Cards    []Card `json:"cards"`
}

// Card - карточка товара. Name хранится без экранирования, экранирует эмиттер.
type Card struct {
	ProductID string `json:"productId"`
	Badge     string `json:"badge,omitempty"` // "-20%", пусто - без бейджа
	ImageURL  string `json:"imageUrl"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	OldPrice  string `json:"oldPrice,omitempty"` // пусто - старая цена не выводится
}

// Cards возвращает карточки всех секций в порядке вывода
func (d *Document) Cards() []Card {
	cards := make([]Card, 0, d.CardCount())
	for _, s := range d.Sections {
		cards = append(cards, s.Cards...)
	}
	return cards
}

func (d *Document) CardCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Cards)
	}
	return n
}

// Footer возвращает текст подвала с датой генерации
func (d *Document) Footer() string {
	return d.FooterLabel + ": " + d.GeneratedOn
}
