package crawler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gastroposter/pkg/logger"
	"gastroposter/pkg/metrics"
	"gastroposter/poster-service/internal/app/poster/entity"

	gobreaker "github.com/sony/gobreaker/v2"
)

const upstreamName = "crawler"

// ErrBreakerOpen возвращается, пока circuit breaker не пропускает запросы к crawler
var ErrBreakerOpen = errors.New("crawler circuit breaker is open")

// BreakerConfig - настройки circuit breaker для crawler
type BreakerConfig struct {
	MaxRequests      uint32        // Пробных запросов в half-open состоянии
	Interval         time.Duration // Период сброса счётчиков в closed состоянии
	Timeout          time.Duration // Сколько breaker остаётся open
	FailureThreshold uint32        // Подряд неудачных запросов до размыкания
}

// DefaultBreakerConfig подходит для crawler, который скрейпит сайт десятки секунд
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 3,
	}
}

// Client - HTTP клиент crawler сервиса (/products, /categories)
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

// NewClient создает клиент crawler
func NewClient(baseURL string, timeout time.Duration, breakerCfg BreakerConfig) *Client {
	settings := gobreaker.Settings{
		Name:        upstreamName,
		MaxRequests: breakerCfg.MaxRequests,
		Interval:    breakerCfg.Interval,
		Timeout:     breakerCfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerCfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

// FetchProducts получает товары; categories - ключи категорий через запятую, пустая строка - все
func (c *Client) FetchProducts(ctx context.Context, categories string) ([]entity.RemoteProduct, error) {
	query := url.Values{}
	if categories = strings.TrimSpace(categories); categories != "" {
		query.Set("categories", categories)
	}

	body, err := c.get(ctx, "/products", query)
	if err != nil {
		return nil, err
	}

	var products []entity.RemoteProduct
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products: %w", err)
	}
	return products, nil
}

// FetchCategories получает список категорий crawler
func (c *Client) FetchCategories(ctx context.Context) ([]entity.RemoteCategory, error) {
	body, err := c.get(ctx, "/categories", nil)
	if err != nil {
		return nil, err
	}

	var categories []entity.RemoteCategory
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}
	return categories, nil
}

// BreakerState возвращает состояние breaker для health check
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	timer := metrics.NewUpstreamTimer(upstreamName, path)

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, path, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			timer.Done("breaker_open")
			return nil, fmt.Errorf("%w: %v", ErrBreakerOpen, err)
		}
		timer.Done("error")
		return nil, err
	}

	timer.Done("ok")
	return body, nil
}

func (c *Client) do(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("crawler returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
