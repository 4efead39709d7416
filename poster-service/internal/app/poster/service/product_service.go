package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gastroposter/pkg/logger"
	"gastroposter/pkg/metrics"
	"gastroposter/poster-service/internal/app/poster/entity"
	"gastroposter/poster-service/internal/app/poster/repository"
	"gastroposter/poster-service/internal/app/poster/util"
)

// MinSearchQueryLength - поиск по более коротким строкам не выполняется
const MinSearchQueryLength = 3

// ProductService объединяет remote каталог и локальные товары в один каталог
type ProductService struct {
	remote        RemoteCatalog
	customRepo    repository.ProductRepository
	kafkaProducer util.MessagePublisher
}

func NewProductService(
	remote RemoteCatalog,
	customRepo repository.ProductRepository,
	kafkaProducer util.MessagePublisher,
) *ProductService {
	return &ProductService{
		remote:        remote,
		customRepo:    customRepo,
		kafkaProducer: kafkaProducer,
	}
}

// GetAllProducts возвращает сначала remote товары, затем локальные
// Недоступность crawler не ошибка: remote часть просто пустая.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]entity.Product, error) {
	remote := s.remoteProducts(ctx)

	local, err := s.customRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get custom products: %w", err)
	}

	all := make([]entity.Product, 0, len(remote)+len(local))
	all = append(all, remote...)
	all = append(all, local...)
	return all, nil
}

// FindByID выбирает хранилище по префиксу ID и ищет только в нём
func (s *ProductService) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	if id == "" {
		return nil, ErrProductNotFound
	}

	if isRemoteID(id) {
		products, err := s.remote.FetchProducts(ctx, "")
		if err != nil {
			return nil, err
		}
		for i := range products {
			if products[i].ID == id {
				product := products[i]
				return &product, nil
			}
		}
		return nil, ErrProductNotFound
	}

	product, err := s.customRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get custom product: %w", err)
	}
	return product, nil
}

// SearchProducts ищет подстроку в названии без учёта регистра
func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]entity.Product, error) {
	term := strings.TrimSpace(query)
	if utf8.RuneCountInString(term) < MinSearchQueryLength {
		return []entity.Product{}, nil
	}
	term = strings.ToLower(term)

	all, err := s.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	found := make([]entity.Product, 0)
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), term) {
			found = append(found, p)
		}
	}
	return found, nil
}

// CreateCustomProduct сохраняет локальный товар и отправляет CUSTOM_PRODUCT_CREATED
func (s *ProductService) CreateCustomProduct(ctx context.Context, req *entity.CreateCustomProductRequest) (*entity.Product, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" || req.PriceCurrent == nil || *req.PriceCurrent <= 0 {
		return nil, ErrInvalidProduct
	}

	current := *req.PriceCurrent
	original := current
	if req.PriceOriginal != nil && *req.PriceOriginal > 0 {
		original = *req.PriceOriginal
	}

	product := &entity.Product{
		Name:          strings.TrimSpace(req.Name),
		ImageURL:      req.ImageURL,
		PriceCurrent:  &current,
		PriceOriginal: &original,
		DiscountPct:   req.DiscountPct,
		Category:      strings.TrimSpace(req.Category),
		Source:        entity.SourceLocal,
	}

	saved, err := s.customRepo.Save(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to save custom product: %w", err)
	}
	metrics.CustomProductsCreated.Inc()

	event := entity.ProductEvent{
		EventType:    entity.EventCustomProductCreated,
		ProductID:    saved.ID,
		Name:         saved.Name,
		PriceCurrent: current,
		Category:     saved.Category,
		Timestamp:    time.Now(),
	}
	if err := s.publishEvent(ctx, saved.ID, event); err != nil {
		// Товар уже сохранён, событие не критично
		logger.Warn().Err(err).Str("product_id", saved.ID).Msg("failed to publish custom product created event")
	}

	return saved, nil
}

// ResolveProducts возвращает товары в порядке ids, ненайденные пропускаются
func (s *ProductService) ResolveProducts(ctx context.Context, ids []string) []entity.Product {
	products := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.FindByID(ctx, id)
		if err != nil {
			if !errors.Is(err, ErrProductNotFound) {
				logger.Warn().Err(err).Str("product_id", id).Msg("product lookup failed, skipping")
			}
			continue
		}
		products = append(products, *product)
	}
	return products
}

func (s *ProductService) remoteProducts(ctx context.Context) []entity.Product {
	products, err := s.remote.FetchProducts(ctx, "")
	if err != nil {
		logger.Warn().Err(err).Msg("remote catalog unavailable, continuing with local products")
		return nil
	}
	return products
}

func (s *ProductService) publishEvent(ctx context.Context, key string, event any) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, key, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}
	return nil
}
