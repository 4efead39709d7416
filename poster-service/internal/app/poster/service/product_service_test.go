package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gastroposter/poster-service/internal/app/poster/entity"
	"gastroposter/poster-service/internal/app/poster/repository"
	"gastroposter/poster-service/internal/app/poster/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Хелперы для создания тестовых данных

func ptr[T any](v T) *T {
	return &v
}

func newLocalProduct(id, name string, price float64) entity.Product {
	return entity.Product{
		ID:            id,
		Name:          name,
		PriceCurrent:  ptr(price),
		PriceOriginal: ptr(price),
		Source:        entity.SourceLocal,
	}
}

var testRemoteProducts = []entity.RemoteProduct{
	{Name: "Pommes Schale", URL: "https://shop/x", PriceCurrent: 2.9, Category: "Verpackung"},
	{Name: "Becher", URL: "https://shop/y", PriceCurrent: 0.35},
}

func newProductServiceWithMocks(client *mocks.MockCatalogClient) (*ProductService, *mocks.MockProductRepository, *mocks.MockMessagePublisher) {
	repo := new(mocks.MockProductRepository)
	publisher := new(mocks.MockMessagePublisher)
	service := NewProductService(NewRemoteProductService(client, DefaultRemoteDataTTL), repo, publisher)
	return service, repo, publisher
}

// ==================== GetAllProducts Tests ====================

func TestProductService_GetAllProducts_RemoteFirst(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.MockCatalogClient)
	client.On("FetchProducts", mock.Anything, "").Return(testRemoteProducts, nil)
	service, repo, _ := newProductServiceWithMocks(client)
	repo.On("FindAll", ctx).Return([]entity.Product{newLocalProduct("l1", "Eigenes Tablett", 4)}, nil)

	all, err := service.GetAllProducts(ctx)

	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, entity.SourceRemote, all[0].Source)
	assert.Equal(t, entity.SourceRemote, all[1].Source)
	assert.Equal(t, "l1", all[2].ID)
}

func TestProductService_GetAllProducts_UpstreamDownReturnsLocal(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.MockCatalogClient)
	client.On("FetchProducts", mock.Anything, "").Return(nil, errors.New("timeout"))
	service, repo, _ := newProductServiceWithMocks(client)
	repo.On("FindAll", ctx).Return([]entity.Product{newLocalProduct("l1", "Tablett", 4)}, nil)

	all, err := service.GetAllProducts(ctx)

	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "l1", all[0].ID)
}

func TestProductService_GetAllProducts_RepoError(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.MockCatalogClient)
	client.On("FetchProducts", mock.Anything, "").Return([]entity.RemoteProduct{}, nil)
	service, repo, _ := newProductServiceWithMocks(client)
	repo.On("FindAll", ctx).Return(nil, errors.New("redis down"))

	all, err := service.GetAllProducts(ctx)

	assert.Nil(t, all)
	assert.Contains(t, err.Error(), "failed to get custom products")
}

// ==================== FindByID Tests ====================

func TestProductService_FindByID_RemoteRoutedWithoutLocalLookup(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.MockCatalogClient)
	client.On("FetchProducts", mock.Anything, "").Return(testRemoteProducts, nil)
	service, repo, _ := newProductServiceWithMocks(client)

	found, err := service.FindByID(ctx, "remote-4075845754")
	require.NoError(t, err)
	assert.Equal(t, "Becher", found.Name)

	_, err = service.FindByID(ctx, "remote-12345")
	assert.ErrorIs(t, err, ErrProductNotFound)

	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "FindAll", mock.Anything)
}

func TestProductService_FindByID_RemoteUpstreamDown(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.MockCatalogClient)
	client.On("FetchProducts", mock.Anything, "").Return(nil, errors.New("connection refused"))
	service, repo, _ := newProductServiceWithMocks(client)

	found, err := service.FindByID(ctx, "remote-12345")

	assert.Nil(t, found)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProductService_FindByID_LocalNeverCallsUpstream(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.MockCatalogClient)
	service, repo, _ := newProductServiceWithMocks(client)
	local := newLocalProduct("8c7b1f0e", "Tablett", 4)
	repo.On("FindByID", ctx, "8c7b1f0e").Return(&local, nil)
	repo.On("FindByID", ctx, "missing").Return(nil, repository.ErrProductNotFound)

	found, err := service.FindByID(ctx, "8c7b1f0e")
	require.NoError(t, err)
	assert.Equal(t, "Tablett", found.Name)

	_, err = service.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)

	client.AssertNotCalled(t, "FetchProducts", mock.Anything, mock.Anything)
}

// ==================== SearchProducts Tests ====================

func TestProductService_SearchProducts_ShortQuerySkipsFetch(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.MockCatalogClient)
	service, repo, _ := newProductServiceWithMocks(client)

	for _, q := range []string{"", "  ", "ab", "  äö  "} {
		found, err := service.SearchProducts(ctx, q)
		require.NoError(t, err)
		assert.Empty(t, found)
	}

	client.AssertNotCalled(t, "FetchProducts", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "FindAll", mock.Anything)
}

func TestProductService_SearchProducts_CaseInsensitiveSubstring(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.MockCatalogClient)
	client.On("FetchProducts", mock.Anything, "").Return(testRemoteProducts, nil)
	service, repo, _ := newProductServiceWithMocks(client)
	repo.On("FindAll", ctx).Return([]entity.Product{
		newLocalProduct("l1", "Kaffeebecher groß", 1.2),
		newLocalProduct("l2", "Teller", 3),
	}, nil)

	found, err := service.SearchProducts(ctx, "  BECHER ")

	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Becher", found[0].Name)
	assert.Equal(t, "Kaffeebecher groß", found[1].Name)
}

// ==================== CreateCustomProduct Tests ====================

func TestProductService_CreateCustomProduct_Success(t *testing.T) {
	ctx := context.Background()
	service, repo, publisher := newProductServiceWithMocks(new(mocks.MockCatalogClient))

	repo.On("Save", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		return p.Name == "Tablett" && *p.PriceOriginal == 4.5 && p.Source == entity.SourceLocal && p.Category == "Geschirr"
	})).Return(func() *entity.Product {
		p := newLocalProduct("new-id", "Tablett", 4.5)
		p.Category = "Geschirr"
		return &p
	}(), nil)
	publisher.On("PublishMessage", ctx, "new-id", mock.MatchedBy(func(data []byte) bool {
		var event entity.ProductEvent
		return json.Unmarshal(data, &event) == nil &&
			event.EventType == entity.EventCustomProductCreated &&
			event.PriceCurrent == 4.5
	})).Return(nil)

	saved, err := service.CreateCustomProduct(ctx, &entity.CreateCustomProductRequest{
		Name:         " Tablett ",
		PriceCurrent: ptr(4.5),
		Category:     "Geschirr ",
	})

	require.NoError(t, err)
	assert.Equal(t, "new-id", saved.ID)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_CreateCustomProduct_PublishErrorIgnored(t *testing.T) {
	ctx := context.Background()
	service, repo, publisher := newProductServiceWithMocks(new(mocks.MockCatalogClient))
	saved := newLocalProduct("new-id", "Tablett", 4.5)
	repo.On("Save", ctx, mock.AnythingOfType("*entity.Product")).Return(&saved, nil)
	publisher.On("PublishMessage", ctx, "new-id", mock.Anything).Return(errors.New("kafka down"))

	product, err := service.CreateCustomProduct(ctx, &entity.CreateCustomProductRequest{
		Name:          "Tablett",
		PriceCurrent:  ptr(4.5),
		PriceOriginal: ptr(6.0),
		DiscountPct:   ptr(25),
	})

	require.NoError(t, err)
	assert.Equal(t, "new-id", product.ID)
}

func TestProductService_CreateCustomProduct_Invalid(t *testing.T) {
	service, repo, _ := newProductServiceWithMocks(new(mocks.MockCatalogClient))

	_, err := service.CreateCustomProduct(context.Background(), &entity.CreateCustomProductRequest{Name: "X", PriceCurrent: ptr(0.0)})
	assert.ErrorIs(t, err, ErrInvalidProduct)
	_, err = service.CreateCustomProduct(context.Background(), &entity.CreateCustomProductRequest{Name: " ", PriceCurrent: ptr(1.0)})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// ==================== ResolveProducts Tests ====================

func TestProductService_ResolveProducts_DropsMissingKeepsOrder(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.MockCatalogClient)
	client.On("FetchProducts", mock.Anything, "").Return(testRemoteProducts, nil)
	service, repo, _ := newProductServiceWithMocks(client)
	local := newLocalProduct("l1", "Tablett", 4)
	repo.On("FindByID", ctx, "l1").Return(&local, nil)
	repo.On("FindByID", ctx, "gone").Return(nil, repository.ErrProductNotFound)

	products := service.ResolveProducts(ctx, []string{"l1", "gone", "remote-1", "remote-4075845754"})

	require.Len(t, products, 2)
	assert.Equal(t, "l1", products[0].ID)
	assert.Equal(t, "Becher", products[1].Name)
}
