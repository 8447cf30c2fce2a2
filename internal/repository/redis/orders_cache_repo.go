package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/internal/repository/redis/converter"
	"github.com/DRSN-tech/home-store/pkg/clients"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/DRSN-tech/home-store/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// OrdersCacheRepo кэширует список заказов пользователя. Запись сбрасывается только по истечении TTL.
type OrdersCacheRepo struct {
	client *clients.RedisClient
	conv   converter.OrderConverter
	ttl    time.Duration
	logger logger.Logger
}

func NewOrdersCacheRepo(client *clients.RedisClient, conv converter.OrderConverter,
	ttl time.Duration, logger logger.Logger) *OrdersCacheRepo {
	return &OrdersCacheRepo{
		client: client,
		conv:   conv,
		ttl:    ttl,
		logger: logger,
	}
}

// GetOrders возвращает закэшированные заказы. Второе значение false означает промах.
func (c *OrdersCacheRepo) GetOrders(ctx context.Context, userID int64) ([]domain.Order, bool, error) {
	key := ordersKey(userID)

	data, err := c.client.Client.Get(ctx, key).Bytes()
	if errors.Is(err, r.Nil) {
		return nil, false, nil // cache miss
	}
	if err != nil {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.OrderRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		c.logger.Warnf("Redis unmarshal failed for key %s: %v", key, e.Wrap(whereami.WhereAmI(), err))
		if err := c.client.Client.Del(ctx, key).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, false, nil
	}

	return c.conv.ToArrEntity(models), true, nil
}

// SetOrders сохраняет список заказов с TTL.
func (c *OrdersCacheRepo) SetOrders(ctx context.Context, userID int64, orders []domain.Order) error {
	data, err := json.Marshal(c.conv.ToArrRedisModel(orders))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, ordersKey(userID), data, c.ttl).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// ordersKey возвращает Redis-ключ списка заказов пользователя
func ordersKey(userID int64) string {
	return fmt.Sprintf("orders_%d", userID)
}
