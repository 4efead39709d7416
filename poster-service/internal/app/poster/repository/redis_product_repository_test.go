package repository

import (
	"context"
	"testing"

	"gastroposter/poster-service/internal/app/poster/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RedisProductRepositoryTestSuite тестовый suite для Redis хранилища товаров
type RedisProductRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	repo      ProductRepository
}

func TestRedisProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisProductRepositoryTestSuite))
}

func (s *RedisProductRepositoryTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})

	s.repo = NewRedisProductRepository(s.client)
}

func (s *RedisProductRepositoryTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *RedisProductRepositoryTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

// ===================== Save Tests =====================

func (s *RedisProductRepositoryTestSuite) TestSave_AssignsIDAndSource() {
	ctx := context.Background()

	saved, err := s.repo.Save(ctx, &entity.Product{
		Name:         "Pommes Schale",
		PriceCurrent: ptr(2.9),
		DiscountPct:  ptr(10),
		Category:     "Verpackung",
		Source:       entity.SourceRemote,
	})

	s.NoError(err)
	s.NotEmpty(saved.ID)
	s.Equal(entity.SourceLocal, saved.Source)
	s.True(s.miniRedis.Exists(productsHashKey))
}

func (s *RedisProductRepositoryTestSuite) TestSave_OverwriteKeepsSingleEntry() {
	ctx := context.Background()

	first, err := s.repo.Save(ctx, &entity.Product{Name: "Old"})
	s.Require().NoError(err)
	_, err = s.repo.Save(ctx, &entity.Product{ID: first.ID, Name: "New"})
	s.Require().NoError(err)

	all, err := s.repo.FindAll(ctx)
	s.NoError(err)
	s.Len(all, 1)
	s.Equal("New", all[0].Name)
}

// ===================== FindByID Tests =====================

func (s *RedisProductRepositoryTestSuite) TestFindByID_Success() {
	ctx := context.Background()
	saved, err := s.repo.Save(ctx, &entity.Product{Name: "Becher", PriceCurrent: ptr(0.35)})
	s.Require().NoError(err)

	found, err := s.repo.FindByID(ctx, saved.ID)

	s.NoError(err)
	s.Equal("Becher", found.Name)
	s.Require().NotNil(found.PriceCurrent)
	s.Equal(0.35, *found.PriceCurrent)
	s.Nil(found.DiscountPct)
}

func (s *RedisProductRepositoryTestSuite) TestFindByID_NotFound() {
	found, err := s.repo.FindByID(context.Background(), "missing")

	s.Nil(found)
	s.ErrorIs(err, ErrProductNotFound)
}

// ===================== FindAll Tests =====================

func (s *RedisProductRepositoryTestSuite) TestFindAll_InsertOrder() {
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		_, err := s.repo.Save(ctx, &entity.Product{Name: name})
		s.Require().NoError(err)
	}

	all, err := s.repo.FindAll(ctx)

	s.NoError(err)
	s.Require().Len(all, 3)
	s.Equal("A", all[0].Name)
	s.Equal("B", all[1].Name)
	s.Equal("C", all[2].Name)
}

func (s *RedisProductRepositoryTestSuite) TestFindAll_Empty() {
	all, err := s.repo.FindAll(context.Background())

	s.NoError(err)
	s.Empty(all)
}

func (s *RedisProductRepositoryTestSuite) TestFindAll_IncludesOrphanEntries() {
	ctx := context.Background()
	_, err := s.repo.Save(ctx, &entity.Product{Name: "Listed"})
	s.Require().NoError(err)
	s.miniRedis.HSet(productsHashKey, "orphan", `{"id":"orphan","name":"Orphan","source":"LOCAL"}`)

	all, err := s.repo.FindAll(ctx)

	s.NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Listed", all[0].Name)
	s.Equal("Orphan", all[1].Name)
}

func (s *RedisProductRepositoryTestSuite) TestFindAll_CorruptedRecord() {
	s.miniRedis.HSet(productsHashKey, "bad", "not json")

	all, err := s.repo.FindAll(context.Background())

	s.Nil(all)
	s.Error(err)
}
