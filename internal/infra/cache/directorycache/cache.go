package directorycache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
)

const defaultKeyPrefix = "directory:capster:user:"

// Cache read-through кеш справочников поверх Redis
//
// Кешируется только привязка аккаунт -> мастер. Услуги всегда читаются из
// источника: активность услуги проверяется на момент создания бронирования.
// Отсутствие мастера не кешируется. При недоступности Redis запросы
// идут напрямую в источник
type Cache struct {
	next   Directory
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger Logger
}

// New создает кеш. Если client == nil, кеш работает как прямой прокси к next
func New(next Directory, client *redis.Client, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		next:   next,
		client: client,
		ttl:    ttl,
		prefix: defaultKeyPrefix,
		logger: logger,
	}
}

// GetActiveService всегда обращается к источнику
func (c *Cache) GetActiveService(ctx context.Context, serviceID string) (*domain.Service, error) {
	return c.next.GetActiveService(ctx, serviceID)
}

// GetCapsterByUserID получает мастера по аккаунту, сначала из Redis
func (c *Cache) GetCapsterByUserID(ctx context.Context, userID string) (*domain.Capster, error) {
	if c.client == nil || c.ttl <= 0 {
		return c.next.GetCapsterByUserID(ctx, userID)
	}

	key := c.prefix + userID

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var capster domain.Capster
		if err := json.Unmarshal(raw, &capster); err == nil {
			c.logger.Debug("GetCapsterByUserID: cache hit key=%s", key)
			return &capster, nil
		}
		c.logger.Warn("GetCapsterByUserID: corrupted cache entry key=%s, refetching", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("GetCapsterByUserID: redis get failed for key=%s: %v", key, err)
	}

	capster, err := c.next.GetCapsterByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("GetCapsterByUserID: cache miss key=%s, storing capster id=%s", key, capster.ID)

	payload, err := json.Marshal(capster)
	if err != nil {
		c.logger.Warn("GetCapsterByUserID: failed to encode capster id=%s: %v", capster.ID, err)
		return capster, nil
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("GetCapsterByUserID: redis set failed for key=%s: %v", key, err)
	}

	return capster, nil
}
