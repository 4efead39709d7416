package metrics

import (
	"strings"
	"time"
)

type RedisOperation string

const (
	RedisOpGet     RedisOperation = "get"
	RedisOpHGet    RedisOperation = "hget"
	RedisOpHSet    RedisOperation = "hset"
	RedisOpHGetAll RedisOperation = "hgetall"
	RedisOpLRange  RedisOperation = "lrange"
)

type RedisTimer struct {
	service   string
	operation RedisOperation
	start     time.Time
}

func NewRedisTimer(service string, op RedisOperation) *RedisTimer {
	return &RedisTimer{
		service:   service,
		operation: op,
		start:     time.Now(),
	}
}

func (rt *RedisTimer) ObserveDuration() {
	duration := time.Since(rt.start).Seconds()
	RedisOperationDuration.WithLabelValues(rt.service, string(rt.operation)).Observe(duration)
}

func RecordRedisError(service string, op RedisOperation) {
	RedisErrors.WithLabelValues(service, string(op)).Inc()
}

// keyPrefix возвращает часть ключа до первого ':' для ограничения кардинальности
func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

func RecordCacheHit(cache, key string) {
	CacheHits.WithLabelValues(cache, keyPrefix(key)).Inc()
}

func RecordCacheMiss(cache, key string) {
	CacheMisses.WithLabelValues(cache, keyPrefix(key)).Inc()
}

func RecordCacheShared(cache, key string) {
	CacheSharedLoads.WithLabelValues(cache, keyPrefix(key)).Inc()
}

func RecordKafkaMessageProduced(service, topic string, duration time.Duration) {
	KafkaMessagesProduced.WithLabelValues(service, topic).Inc()
	KafkaProduceDuration.WithLabelValues(service, topic).Observe(duration.Seconds())
}

func RecordKafkaError(service, topic, operation string) {
	KafkaErrors.WithLabelValues(service, topic, operation).Inc()
}

type KafkaProduceTimer struct {
	service string
	topic   string
	start   time.Time
}

func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{
		service: service,
		topic:   topic,
		start:   time.Now(),
	}
}

func (kt *KafkaProduceTimer) Success() {
	RecordKafkaMessageProduced(kt.service, kt.topic, time.Since(kt.start))
}

func (kt *KafkaProduceTimer) Error() {
	RecordKafkaError(kt.service, kt.topic, "produce")
}

// UpstreamTimer измеряет один запрос к внешнему сервису
type UpstreamTimer struct {
	upstream string
	endpoint string
	start    time.Time
}

func NewUpstreamTimer(upstream, endpoint string) *UpstreamTimer {
	return &UpstreamTimer{
		upstream: upstream,
		endpoint: endpoint,
		start:    time.Now(),
	}
}

// Done записывает длительность и статус запроса
func (ut *UpstreamTimer) Done(status string) {
	UpstreamDuration.WithLabelValues(ut.upstream, ut.endpoint).Observe(time.Since(ut.start).Seconds())
	UpstreamRequests.WithLabelValues(ut.upstream, ut.endpoint, status).Inc()
}

func RecordPoster(format string, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	PostersGenerated.WithLabelValues(format, status).Inc()
}
