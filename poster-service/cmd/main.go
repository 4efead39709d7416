package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gastroposter/pkg/logger"
	"gastroposter/poster-service/internal/app/poster/config"
	"gastroposter/poster-service/internal/app/poster/handler"
	"gastroposter/poster-service/internal/app/poster/infrastructure/crawler"
	"gastroposter/poster-service/internal/app/poster/infrastructure/render"
	"gastroposter/poster-service/internal/app/poster/repository"
	"gastroposter/poster-service/internal/app/poster/service"
	"gastroposter/poster-service/internal/app/poster/util"

	"github.com/redis/go-redis/v9"
)

const serviceName = "poster-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(serviceName, cfg.LogLevel)

	if cfg.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.LogstashAddr, serviceName, cfg.LogLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", cfg.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	customRepo, redisClient := newProductRepository(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var publisher util.MessagePublisher = util.NopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info().
			Strs("brokers", cfg.Kafka.Brokers).
			Str("topic", cfg.Kafka.Topic).
			Msg("Initialized Kafka producer")
	}
	defer publisher.Close()

	crawlerClient := crawler.NewClient(cfg.Crawler.BaseURL, cfg.Crawler.Timeout, crawler.DefaultBreakerConfig())
	renderer := render.NewGotenbergClient(cfg.Render.GotenbergURL, cfg.Render.Timeout)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := renderer.Ping(pingCtx); err != nil {
		// Без Gotenberg работают каталог и HTML превью, PDF вернёт 502
		logger.Warn().Err(err).Str("url", cfg.Render.GotenbergURL).Msg("Gotenberg is not reachable")
	}
	pingCancel()

	remoteService := service.NewRemoteProductService(crawlerClient, cfg.Crawler.CacheTTL)
	productService := service.NewProductService(remoteService, customRepo, publisher)
	categoryService := service.NewCategoryService(remoteService, customRepo)
	posterService := service.NewPosterService(
		productService,
		service.NewPosterComposer(cfg.Poster.DefaultTitle),
		renderer,
		publisher,
	)

	productHandler := handler.NewProductHandler(productService, categoryService, cfg.Server.UploadDir)
	posterHandler := handler.NewPosterHandler(posterService)
	router := handler.SetupRoutes(productHandler, posterHandler)

	server := &http.Server{
		Addr:        cfg.Server.Address(),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// Рендер PDF может занять до RENDER_TIMEOUT_SEC
		WriteTimeout: cfg.Render.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("crawler", cfg.Crawler.BaseURL).
			Str("store", cfg.Store.Backend).
			Msg("Starting Poster Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Poster Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Poster Service stopped gracefully")
}

// newProductRepository выбирает хранилище локальных товаров по STORE_BACKEND
func newProductRepository(cfg *config.Config) (repository.ProductRepository, *redis.Client) {
	if cfg.Store.Backend != config.StoreBackendRedis {
		logger.Info().Msg("Using in-memory custom product store")
		return repository.NewCustomProductRepository(), nil
	}

	client, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Str("address", cfg.Redis.Address()).Msg("Failed to connect to Redis")
	}
	logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")

	return repository.NewRedisProductRepository(client), client
}
