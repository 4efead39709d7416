package service

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"gastroposter/poster-service/internal/app/poster/entity"
	"gastroposter/poster-service/internal/app/poster/layout"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	// MaxPosterProducts - сетка постера не больше 3x3
	MaxPosterProducts = 9

	DefaultPosterTitle = "Haftanın Fırsatları"
	posterFooterLabel  = "Oluşturulma tarihi"
	posterDateLayout   = "02.01.2006"
)

// PosterComposer отбирает, ранжирует и группирует товары в дерево постера
// Не обращается к внешним системам, результат зависит только от входа и текущей даты.
type PosterComposer struct {
	defaultTitle string
	now          func() time.Time
}

func NewPosterComposer(defaultTitle string) *PosterComposer {
	if strings.TrimSpace(defaultTitle) == "" {
		defaultTitle = DefaultPosterTitle
	}
	return &PosterComposer{
		defaultTitle: defaultTitle,
		now:          time.Now,
	}
}

// Compose строит документ постера. Пустой вход даёт документ с пустой сеткой.
func (c *PosterComposer) Compose(title string, products []entity.Product, maxCount int) *layout.Document {
	if strings.TrimSpace(title) == "" {
		title = c.defaultTitle
	}
	if maxCount <= 0 || maxCount > MaxPosterProducts {
		maxCount = MaxPosterProducts
	}

	selected := selectProducts(products, maxCount)
	columns, widthPct := gridForCount(len(selected))
	sections := groupByCategory(selected)

	return &layout.Document{
		Title:               title,
		Columns:             columns,
		CardWidthPct:        widthPct,
		ShowSectionHeadings: len(sections) > 1,
		Sections:            sections,
		FooterLabel:         posterFooterLabel,
		GeneratedOn:         c.now().Format(posterDateLayout),
	}
}

// selectProducts фильтрует товары без цены, сортирует и берёт первые limit
func selectProducts(products []entity.Product, limit int) []entity.Product {
	candidates := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.HasPrice() {
			candidates = append(candidates, p)
		}
	}

	// Скидка по убыванию (без скидки - в конце), затем цена по возрастанию
	slices.SortStableFunc(candidates, func(a, b entity.Product) int {
		switch {
		case a.DiscountPct == nil && b.DiscountPct == nil:
		case a.DiscountPct == nil:
			return 1
		case b.DiscountPct == nil:
			return -1
		case *a.DiscountPct != *b.DiscountPct:
			if *a.DiscountPct > *b.DiscountPct {
				return -1
			}
			return 1
		}
		switch {
		case *a.PriceCurrent < *b.PriceCurrent:
			return -1
		case *a.PriceCurrent > *b.PriceCurrent:
			return 1
		}
		return 0
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// gridForCount зависит только от общего числа карточек
func gridForCount(count int) (columns, widthPct int) {
	switch {
	case count <= 1:
		return 1, 100
	case count <= 4:
		return 2, 48
	default:
		return 3, 31
	}
}

// groupByCategory - секции по алфавиту, внутри секции порядок отбора сохраняется
func groupByCategory(products []entity.Product) []layout.Section {
	var order []string
	cards := make(map[string][]layout.Card)
	for i := range products {
		category := strings.TrimSpace(products[i].Category)
		if category == "" {
			category = entity.FallbackCategory
		}
		if _, ok := cards[category]; !ok {
			order = append(order, category)
		}
		cards[category] = append(cards[category], buildCard(&products[i]))
	}

	collator := collate.New(language.German)
	slices.SortStableFunc(order, func(a, b string) int {
		return collator.CompareString(a, b)
	})

	sections := make([]layout.Section, 0, len(order))
	for _, category := range order {
		sections = append(sections, layout.Section{Category: category, Cards: cards[category]})
	}
	return sections
}

func buildCard(p *entity.Product) layout.Card {
	card := layout.Card{
		ProductID: p.ID,
		ImageURL:  p.ImageURL,
		Name:      p.Name,
		Price:     layout.FormatPrice(*p.PriceCurrent),
	}
	if p.DiscountPct != nil && *p.DiscountPct > 0 {
		card.Badge = fmt.Sprintf("-%d%%", *p.DiscountPct)
	}
	if p.PriceOriginal != nil && *p.PriceOriginal != *p.PriceCurrent {
		card.OldPrice = layout.FormatPrice(*p.PriceOriginal)
	}
	return card
}
