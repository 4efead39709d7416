package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gastroposter/pkg/metrics"
	"gastroposter/poster-service/internal/app/poster/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	productsHashKey  = "poster:custom_products"
	productsOrderKey = "poster:custom_products:order"
	metricsService   = "poster-service"
)

type redisProductRepository struct {
	client *redis.Client
}

// NewRedisProductRepository создает хранилище локальных товаров в Redis
// Товары переживают рестарт процесса: JSON в hash + список ID в порядке вставки
func NewRedisProductRepository(client *redis.Client) ProductRepository {
	return &redisProductRepository{client: client}
}

func (r *redisProductRepository) Save(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if err := validateForSave(product); err != nil {
		return nil, err
	}

	stored := *product
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Source = entity.SourceLocal

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}

	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpHSet)
	defer timer.ObserveDuration()

	// HSETNX атомарно определяет, новый ли ID: в список порядка попадают только новые
	isNew, err := r.client.HSetNX(ctx, productsHashKey, stored.ID, data).Result()
	if err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpHSet)
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	if isNew {
		if err := r.client.RPush(ctx, productsOrderKey, stored.ID).Err(); err != nil {
			// Запись уже в hash; FindAll вернёт её в конце списка
			metrics.RecordRedisError(metricsService, metrics.RedisOpHSet)
			return nil, fmt.Errorf("failed to record product order: %w", err)
		}
		return &stored, nil
	}

	if err := r.client.HSet(ctx, productsHashKey, stored.ID, data).Err(); err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpHSet)
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	return &stored, nil
}

func (r *redisProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpHGet)
	defer timer.ObserveDuration()

	data, err := r.client.HGet(ctx, productsHashKey, id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrProductNotFound
		}
		metrics.RecordRedisError(metricsService, metrics.RedisOpHGet)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	var product entity.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &product, nil
}

func (r *redisProductRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpHGetAll)
	defer timer.ObserveDuration()

	ids, err := r.client.LRange(ctx, productsOrderKey, 0, -1).Result()
	if err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpLRange)
		return nil, fmt.Errorf("failed to list product ids: %w", err)
	}

	all, err := r.client.HGetAll(ctx, productsHashKey).Result()
	if err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpHGetAll)
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	products := make([]entity.Product, 0, len(all))
	seen := make(map[string]struct{}, len(all))
	appendProduct := func(id string) error {
		if _, ok := seen[id]; ok {
			return nil
		}
		data, ok := all[id]
		if !ok {
			return nil
		}
		var product entity.Product
		if err := json.Unmarshal([]byte(data), &product); err != nil {
			return fmt.Errorf("failed to unmarshal product %s: %w", id, err)
		}
		seen[id] = struct{}{}
		products = append(products, product)
		return nil
	}

	for _, id := range ids {
		if err := appendProduct(id); err != nil {
			return nil, err
		}
	}
	// Записи без ID в списке порядка (например, добавленные вручную) идут в конец
	for id := range all {
		if err := appendProduct(id); err != nil {
			return nil, err
		}
	}

	return products, nil
}
