package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gastroposter/poster-service/internal/app/poster/entity"
	"gastroposter/poster-service/internal/app/poster/infrastructure"
	"gastroposter/poster-service/internal/app/poster/util"
)

const (
	cacheKeyAll          = "ALL"
	productsCachePrefix  = "products:"
	categoriesCacheKey   = "categories:" + cacheKeyAll
	DefaultRemoteDataTTL = 5 * time.Minute
)

// RemoteProductService нормализует данные crawler в доменную модель и кеширует их
// Ключ кеша товаров - фильтр категорий (или ALL), ключ категорий - всегда ALL.
type RemoteProductService struct {
	client     infrastructure.CatalogClient
	ttl        time.Duration
	products   *util.TTLCache[[]entity.Product]
	categories *util.TTLCache[[]entity.RemoteCategory]
}

func NewRemoteProductService(client infrastructure.CatalogClient, ttl time.Duration) *RemoteProductService {
	if ttl <= 0 {
		ttl = DefaultRemoteDataTTL
	}
	return &RemoteProductService{
		client:     client,
		ttl:        ttl,
		products:   util.NewTTLCache[[]entity.Product]("remote_products"),
		categories: util.NewTTLCache[[]entity.RemoteCategory]("remote_categories"),
	}
}

// FetchProducts возвращает товары crawler; categories - список ключей через запятую, пусто - все
func (s *RemoteProductService) FetchProducts(ctx context.Context, categories string) ([]entity.Product, error) {
	filter := strings.TrimSpace(categories)
	key := cacheKeyAll
	if filter != "" {
		key = filter
	}

	products, err := s.products.GetOrCompute(ctx, productsCachePrefix+key, s.ttl, func(ctx context.Context) ([]entity.Product, error) {
		raw, err := s.client.FetchProducts(ctx, filter)
		if err != nil {
			return nil, err
		}
		products := make([]entity.Product, 0, len(raw))
		for i := range raw {
			products = append(products, normalizeRemoteProduct(&raw[i]))
		}
		return products, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch products: %v", ErrUpstreamUnavailable, err)
	}
	return products, nil
}

// FetchCategories возвращает метаданные категорий crawler
func (s *RemoteProductService) FetchCategories(ctx context.Context) ([]entity.RemoteCategory, error) {
	categories, err := s.categories.GetOrCompute(ctx, categoriesCacheKey, s.ttl, s.client.FetchCategories)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch categories: %v", ErrUpstreamUnavailable, err)
	}
	return categories, nil
}

func normalizeRemoteProduct(raw *entity.RemoteProduct) entity.Product {
	current := raw.PriceCurrent
	original := raw.PriceOriginal
	if original <= 0 {
		original = current
	}
	discount := raw.DiscountPct
	if discount < 0 {
		discount = 0
	}
	category := raw.Category
	if strings.TrimSpace(category) == "" {
		category = entity.FallbackCategory
	}

	return entity.Product{
		ID:            remoteProductID(raw.URL, raw.Name, current),
		Name:          raw.Name,
		URL:           raw.URL,
		ImageURL:      raw.ImageURL,
		PriceCurrent:  &current,
		PriceOriginal: &original,
		DiscountPct:   &discount,
		Category:      category,
		Source:        entity.SourceRemote,
	}
}
