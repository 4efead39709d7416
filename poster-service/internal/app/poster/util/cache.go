package util

import (
	"context"
	"sync"
	"time"

	"gastroposter/pkg/metrics"

	"golang.org/x/sync/singleflight"
)

type cacheItem[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache - in-process кеш с абсолютным TTL от момента записи
// Просроченные записи удаляются лениво при чтении, фоновой очистки нет.
// Для одного ключа одновременно выполняется не больше одной загрузки:
// остальные вызовы ждут её результат (или её ошибку).
type TTLCache[V any] struct {
	name  string
	mu    sync.RWMutex
	items map[string]cacheItem[V]
	group singleflight.Group
	now   func() time.Time
}

// NewTTLCache создает кеш; name используется как label в метриках
func NewTTLCache[V any](name string) *TTLCache[V] {
	return &TTLCache[V]{
		name:  name,
		items: make(map[string]cacheItem[V]),
		now:   time.Now,
	}
}

// Get возвращает значение, если оно есть и не просрочено
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if !c.now().Before(item.expiresAt) {
		c.mu.Lock()
		// Запись могла быть обновлена между RUnlock и Lock
		if current, ok := c.items[key]; ok && !c.now().Before(current.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return item.value, true
}

// Set сохраняет значение на ttl
func (c *TTLCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.items[key] = cacheItem[V]{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Invalidate удаляет ключ из кеша
func (c *TTLCache[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// GetOrCompute возвращает закешированное значение или вызывает producer.
// Ошибки producer не кешируются. Отмена ctx вызывающего прерывает только его ожидание:
// загрузка продолжается для остальных участников.
func (c *TTLCache[V]) GetOrCompute(ctx context.Context, key string, ttl time.Duration, producer func(context.Context) (V, error)) (V, error) {
	var zero V

	if value, ok := c.Get(key); ok {
		metrics.RecordCacheHit(c.name, key)
		return value, nil
	}
	metrics.RecordCacheMiss(c.name, key)

	loadCtx := context.WithoutCancel(ctx)
	resultChan := c.group.DoChan(key, func() (interface{}, error) {
		// Предыдущая загрузка могла завершиться между Get и DoChan
		if value, ok := c.Get(key); ok {
			return value, nil
		}

		value, err := producer(loadCtx)
		if err != nil {
			return nil, err
		}
		c.Set(key, value, ttl)
		return value, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-resultChan:
		if res.Shared {
			metrics.RecordCacheShared(c.name, key)
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}
