package infrastructure

import (
	"context"

	"gastroposter/poster-service/internal/app/poster/entity"
)

// CatalogClient - клиент внешнего crawler сервиса
type CatalogClient interface {
	FetchProducts(ctx context.Context, categories string) ([]entity.RemoteProduct, error)
	FetchCategories(ctx context.Context) ([]entity.RemoteCategory, error)
}

// Renderer превращает HTML постера в PDF
type Renderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}
