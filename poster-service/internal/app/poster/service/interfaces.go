package service

import (
	"context"
	"errors"

	"gastroposter/poster-service/internal/app/poster/entity"
	"gastroposter/poster-service/internal/app/poster/layout"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrProductNotFound     = errors.New("product not found")
	ErrUpstreamUnavailable = errors.New("upstream catalog unavailable")
	ErrRenderFailed        = errors.New("poster render failed")
	ErrInvalidProduct      = errors.New("invalid product")
)

// RemoteCatalog - нормализованный и закешированный remote каталог
type RemoteCatalog interface {
	FetchProducts(ctx context.Context, categories string) ([]entity.Product, error)
	FetchCategories(ctx context.Context) ([]entity.RemoteCategory, error)
}

type ProductServiceInterface interface {
	GetAllProducts(ctx context.Context) ([]entity.Product, error)
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	SearchProducts(ctx context.Context, query string) ([]entity.Product, error)
	CreateCustomProduct(ctx context.Context, req *entity.CreateCustomProductRequest) (*entity.Product, error)
	ResolveProducts(ctx context.Context, ids []string) []entity.Product
}

type CategoryServiceInterface interface {
	GetAllCategories(ctx context.Context) ([]entity.Category, error)
}

type PosterServiceInterface interface {
	BuildPoster(ctx context.Context, title *string, productIDs []string, count *int) *layout.Document
	RenderPosterHTML(ctx context.Context, title *string, productIDs []string, count *int) string
	RenderPosterPDF(ctx context.Context, title *string, productIDs []string, count *int) ([]byte, error)
}
