package entity

// CreateCustomProductRequest - тело POST /api/products
type CreateCustomProductRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	PriceCurrent  *float64 `json:"priceCurrent" validate:"required,gt=0"`
	PriceOriginal *float64 `json:"priceOriginal" validate:"omitempty,gte=0"`
	DiscountPct   *int     `json:"discountPct" validate:"omitempty,gte=0,lte=100"`
	ImageURL      string   `json:"imageUrl" validate:"omitempty,max=2000"`
	Category      string   `json:"category" validate:"omitempty,max=100"`
}

// PosterRequest - тело POST /api/poster
type PosterRequest struct {
	ProductIDs []string `json:"productIds" validate:"required,min=1,dive,required"`
	Title      *string  `json:"title"`
	Count      *int     `json:"count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
