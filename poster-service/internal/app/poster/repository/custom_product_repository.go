package repository

import (
	"context"
	"sync"

	"gastroposter/poster-service/internal/app/poster/entity"

	"github.com/google/uuid"
)

type customProductRepository struct {
	mu       sync.RWMutex
	products map[string]entity.Product
	order    []string // Порядок вставки для стабильной выдачи FindAll
}

// NewCustomProductRepository создает in-memory хранилище на время жизни процесса
func NewCustomProductRepository() ProductRepository {
	return &customProductRepository{
		products: make(map[string]entity.Product),
	}
}

// Save сохраняет копию товара; повторное сохранение с тем же ID перезаписывает запись
func (r *customProductRepository) Save(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if err := validateForSave(product); err != nil {
		return nil, err
	}

	stored := *product
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Source = entity.SourceLocal

	r.mu.Lock()
	if _, exists := r.products[stored.ID]; !exists {
		r.order = append(r.order, stored.ID)
	}
	r.products[stored.ID] = stored
	r.mu.Unlock()

	result := stored
	return &result, nil
}

func (r *customProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	product, ok := r.products[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (r *customProductRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]entity.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.products[id])
	}
	return products, nil
}
