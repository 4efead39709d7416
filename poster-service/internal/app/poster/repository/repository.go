package repository

import (
	"context"
	"errors"

	"gastroposter/poster-service/internal/app/poster/entity"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

// ProductRepository - хранилище локально созданных товаров
// Save назначает ID, если он пустой, и всегда выставляет Source=LOCAL.
// FindAll возвращает каждый сохранённый товар ровно один раз.
type ProductRepository interface {
	Save(ctx context.Context, product *entity.Product) (*entity.Product, error)
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	FindAll(ctx context.Context) ([]entity.Product, error)
}

func validateForSave(product *entity.Product) error {
	if product == nil {
		return ErrInvalidProduct
	}
	return nil
}
