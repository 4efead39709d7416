package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Пример запроса PromQL: rate(http_requests_total{service="poster-service"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests in seconds",
		// Рендер PDF может занимать секунды, поэтому верхние бакеты шире обычного
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Cache Метрики (in-process TTL cache)
// =============================================================================

var CacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total number of in-process cache hits",
	},
	[]string{"cache", "key_prefix"},
)

var CacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total number of in-process cache misses",
	},
	[]string{"cache", "key_prefix"},
)

// CacheSharedLoads - вызовы, дождавшиеся чужой загрузки вместо своего запроса к upstream
var CacheSharedLoads = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_shared_loads_total",
		Help: "Total number of callers that joined an in-flight load",
	},
	[]string{"cache", "key_prefix"},
)

// =============================================================================
// Redis Метрики
// =============================================================================

var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"},
)

var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Upstream Метрики (crawler, gotenberg)
// =============================================================================

// UpstreamRequests - запросы к внешним сервисам
// Labels: upstream (crawler, gotenberg), endpoint, status (ok, error, breaker_open)
var UpstreamRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Total number of requests to upstream services",
	},
	[]string{"upstream", "endpoint", "status"},
)

var UpstreamDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of upstream requests in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	},
	[]string{"upstream", "endpoint"},
)

// =============================================================================
// Business Метрики
// =============================================================================

// PostersGenerated - сгенерированные постеры
// Labels: format (pdf, html), status (success, failed)
var PostersGenerated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "posters_generated_total",
		Help: "Total number of generated posters",
	},
	[]string{"format", "status"},
)

// PosterCards - распределение количества карточек на постере
var PosterCards = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "poster_cards",
		Help:    "Distribution of product cards per poster",
		Buckets: []float64{0, 1, 2, 4, 6, 9},
	},
)

var CustomProductsCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "custom_products_created_total",
		Help: "Total number of locally created products",
	},
)
