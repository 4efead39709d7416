package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"gastroposter/poster-service/internal/app/poster/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCustomProductRepository_Save_AssignsIDAndSource(t *testing.T) {
	// Arrange
	repo := NewCustomProductRepository()
	product := &entity.Product{
		Name:         "Döner Box",
		PriceCurrent: ptr(4.5),
		Source:       entity.SourceRemote,
	}

	// Act
	saved, err := repo.Save(context.Background(), product)

	// Assert
	require.NoError(t, err)
	_, parseErr := uuid.Parse(saved.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, entity.SourceLocal, saved.Source)
	assert.Empty(t, product.ID, "input must not be mutated")
}

func TestCustomProductRepository_Save_KeepsExistingID(t *testing.T) {
	repo := NewCustomProductRepository()

	saved, err := repo.Save(context.Background(), &entity.Product{ID: "fixed-id", Name: "Tray"})

	require.NoError(t, err)
	assert.Equal(t, "fixed-id", saved.ID)
}

func TestCustomProductRepository_Save_Nil(t *testing.T) {
	repo := NewCustomProductRepository()

	saved, err := repo.Save(context.Background(), nil)

	assert.Nil(t, saved)
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestCustomProductRepository_FindByID(t *testing.T) {
	repo := NewCustomProductRepository()
	saved, _ := repo.Save(context.Background(), &entity.Product{Name: "Serviette"})

	found, err := repo.FindByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Serviette", found.Name)

	missing, err := repo.FindByID(context.Background(), "unknown")
	assert.Nil(t, missing)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCustomProductRepository_FindAll_EachOnceInInsertOrder(t *testing.T) {
	repo := NewCustomProductRepository()
	ctx := context.Background()

	a, _ := repo.Save(ctx, &entity.Product{Name: "A"})
	_, _ = repo.Save(ctx, &entity.Product{Name: "B"})
	_, _ = repo.Save(ctx, &entity.Product{ID: a.ID, Name: "A2"})

	all, err := repo.FindAll(ctx)

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A2", all[0].Name)
	assert.Equal(t, "B", all[1].Name)
}

func TestCustomProductRepository_ConcurrentAccess(t *testing.T) {
	repo := NewCustomProductRepository()
	ctx := context.Background()
	const writers = 20

	var wg sync.WaitGroup
	wg.Add(writers * 2)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := repo.Save(ctx, &entity.Product{Name: fmt.Sprintf("p-%d", i)})
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			_, err := repo.FindAll(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, writers)
}
