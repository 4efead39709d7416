package service

import (
	"context"
	"fmt"
	"strings"

	"gastroposter/pkg/logger"
	"gastroposter/poster-service/internal/app/poster/entity"
	"gastroposter/poster-service/internal/app/poster/repository"
	"gastroposter/poster-service/internal/app/poster/util"
)

// categoryIndex - упорядоченный map key -> Category, где побеждает первая запись
type categoryIndex struct {
	order []string
	byKey map[string]entity.Category
	names map[string]struct{}
}

func newCategoryIndex() *categoryIndex {
	return &categoryIndex{
		byKey: make(map[string]entity.Category),
		names: make(map[string]struct{}),
	}
}

// insertIfAbsent добавляет категорию, если ключ ещё не занят
func (idx *categoryIndex) insertIfAbsent(category entity.Category) bool {
	if _, ok := idx.byKey[category.Key]; ok {
		return false
	}
	idx.byKey[category.Key] = category
	idx.order = append(idx.order, category.Key)
	idx.names[category.Name] = struct{}{}
	return true
}

func (idx *categoryIndex) hasName(name string) bool {
	_, ok := idx.names[name]
	return ok
}

func (idx *categoryIndex) values() []entity.Category {
	categories := make([]entity.Category, 0, len(idx.order))
	for _, key := range idx.order {
		categories = append(categories, idx.byKey[key])
	}
	return categories
}

// CategoryService собирает список категорий из метаданных crawler и локальных товаров
// Категории crawler имеют приоритет. Локальная категория с тем же названием считается
// дубликатом и отбрасывается.
type CategoryService struct {
	remote     RemoteCatalog
	customRepo repository.ProductRepository
}

func NewCategoryService(remote RemoteCatalog, customRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{
		remote:     remote,
		customRepo: customRepo,
	}
}

// GetAllCategories пересчитывает список на каждый запрос
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	idx := newCategoryIndex()

	remote, err := s.remote.FetchCategories(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("remote categories unavailable, using local categories only")
	}
	for _, rc := range remote {
		key := rc.Key
		if strings.TrimSpace(key) == "" {
			key = util.Slugify(rc.Name)
		}
		name := rc.Name
		if strings.TrimSpace(name) == "" {
			name = key
		}
		idx.insertIfAbsent(entity.Category{Key: key, Name: name, Path: rc.Path})
	}

	local, err := s.customRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get custom products: %w", err)
	}
	for _, p := range local {
		name := strings.TrimSpace(p.Category)
		if name == "" || idx.hasName(name) {
			continue
		}
		idx.insertIfAbsent(entity.Category{Key: util.Slugify(name), Name: name})
	}

	return idx.values(), nil
}
