package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
)

// Config содержит все настройки Poster Service
type Config struct {
	Server   ServerConfig
	Crawler  CrawlerConfig
	Render   RenderConfig
	Store    StoreConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Poster   PosterConfig
	LogLevel string
	// Пустой адрес - логи только в stdout
	LogstashAddr string
}

type ServerConfig struct {
	Host string
	Port string
	// Каталог для изображений, загруженных через /api/products/upload
	UploadDir string
}

// CrawlerConfig - внешний сервис каталога (источник remote товаров и категорий)
type CrawlerConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration // Время жизни кеша ответов crawler (по умолчанию 5 минут)
}

// RenderConfig - Gotenberg, конвертирует HTML постера в PDF
type RenderConfig struct {
	GotenbergURL string
	Timeout      time.Duration
}

type StoreConfig struct {
	Backend string // memory или redis
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string // Топик для CUSTOM_PRODUCT_CREATED и POSTER_GENERATED
}

type PosterConfig struct {
	DefaultTitle string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	crawlerTimeout, err := getSeconds("CRAWLER_TIMEOUT_SEC", 10)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getSeconds("CACHE_TTL_SEC", 300)
	if err != nil {
		return nil, err
	}
	renderTimeout, err := getSeconds("RENDER_TIMEOUT_SEC", 30)
	if err != nil {
		return nil, err
	}

	kafkaEnabled, err := strconv.ParseBool(getEnv("KAFKA_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid KAFKA_ENABLED value: %w", err)
	}

	backend := strings.ToLower(getEnv("STORE_BACKEND", StoreBackendMemory))
	if backend != StoreBackendMemory && backend != StoreBackendRedis {
		return nil, fmt.Errorf("invalid STORE_BACKEND value: %q", backend)
	}

	return &Config{
		Server: ServerConfig{
			Host:      getEnv("SERVER_HOST", "0.0.0.0"),
			Port:      getEnv("SERVER_PORT", "8080"),
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		},
		Crawler: CrawlerConfig{
			BaseURL:  strings.TrimRight(getEnv("CRAWLER_BASE_URL", "http://localhost:4000"), "/"),
			Timeout:  crawlerTimeout,
			CacheTTL: cacheTTL,
		},
		Render: RenderConfig{
			GotenbergURL: strings.TrimRight(getEnv("GOTENBERG_URL", "http://localhost:3000"), "/"),
			Timeout:      renderTimeout,
		},
		Store: StoreConfig{
			Backend: backend,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Enabled: kafkaEnabled,
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnv("KAFKA_TOPIC", "poster_events"),
		},
		Poster: PosterConfig{
			DefaultTitle: getEnv("POSTER_DEFAULT_TITLE", "Haftanın Fırsatları"),
		},
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogstashAddr: getEnv("LOGSTASH_ADDR", ""),
	}, nil
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getSeconds читает положительное целое число секунд
func getSeconds(key string, defaultValue int) (time.Duration, error) {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s value: must be positive, got %d", key, n)
	}
	return time.Duration(n) * time.Second, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
