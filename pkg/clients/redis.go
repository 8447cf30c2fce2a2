package clients

import (
	"context"
	"time"

	"github.com/DRSN-tech/home-store/internal/cfg"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/DRSN-tech/home-store/pkg/jitter"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// RedisClient — подключение к Redis, общее для всех кэшей приложения.
type RedisClient struct {
	Client *r.Client
}

func NewRedisClient(cfg *cfg.RedisCfg) *RedisClient {
	return &RedisClient{
		Client: r.NewClient(&r.Options{
			Addr:         cfg.Addr,
			Username:     cfg.User,
			Password:     cfg.Password,
			DB:           cfg.DB,
			MaxRetries:   cfg.MaxRetries,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		}),
	}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// WaitReady пингует сервер, пока он не ответит или не истечёт ctx.
func (c *RedisClient) WaitReady(ctx context.Context) error {
	backoff := jitter.NewBackoff(200*time.Millisecond, 3*time.Second)

	for attempt := 0; ; attempt++ {
		err := c.Ping(ctx)
		if err == nil {
			return nil
		}

		if sleepErr := backoff.Sleep(ctx, attempt); sleepErr != nil {
			return err
		}
	}
}

func (c *RedisClient) Close() error {
	return c.Client.Close()
}
