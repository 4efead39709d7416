package entity

import "time"

// ProductSource определяет хранилище, в котором живёт товар
type ProductSource string

const (
	SourceLocal  ProductSource = "LOCAL"
	SourceRemote ProductSource = "REMOTE"
)

// FallbackCategory подставляется вместо пустой категории
const FallbackCategory = "Other"

// Product - единая модель товара для remote каталога и локально созданных записей
type Product struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	URL           string        `json:"url,omitempty"`
	ImageURL      string        `json:"imageUrl"`
	PriceCurrent  *float64      `json:"priceCurrent"`
	PriceOriginal *float64      `json:"priceOriginal"`
	DiscountPct   *int          `json:"discountPct"`
	Category      string        `json:"category,omitempty"`
	Source        ProductSource `json:"source"`
}

// HasPrice сообщает, можно ли выводить товар на постер
func (p *Product) HasPrice() bool {
	return p.PriceCurrent != nil && *p.PriceCurrent > 0
}

// Category - категория, собранная из метаданных crawler и локальных товаров
type Category struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
}

// RemoteProduct - запись товара в формате crawler (/products)
type RemoteProduct struct {
	Name          string  `json:"name"`
	URL           string  `json:"url"`
	ImageURL      string  `json:"image_url"`
	PriceCurrent  float64 `json:"price_current"`
	PriceOriginal float64 `json:"price_original"`
	DiscountPct   int     `json:"discount_pct"`
	Category      string  `json:"category"`
}

// RemoteCategory - запись категории в формате crawler (/categories)
type RemoteCategory struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Path string `json:"path"`
}

const (
	EventCustomProductCreated = "CUSTOM_PRODUCT_CREATED"
	EventPosterGenerated      = "POSTER_GENERATED"
)

// ProductEvent отправляется в Kafka после сохранения локального товара
type ProductEvent struct {
	EventType    string    `json:"event_type"`
	ProductID    string    `json:"product_id"`
	Name         string    `json:"name"`
	PriceCurrent float64   `json:"price_current"`
	Category     string    `json:"category,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// PosterEvent отправляется в Kafka после успешного рендера постера
type PosterEvent struct {
	EventType  string    `json:"event_type"`
	Title      string    `json:"title"`
	ProductIDs []string  `json:"product_ids"`
	Cards      int       `json:"cards"`
	Timestamp  time.Time `json:"timestamp"`
}
