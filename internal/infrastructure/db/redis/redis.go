package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/asservice/shiftboard/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// Conn wraps one client shared by the key-value store and the reminder guard.
type Conn struct {
	client *redis.Client
}

// Open initialises a Redis client and validates connectivity with a ping.
func Open(ctx context.Context, cfg Config) (*Conn, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return &Conn{client: client}, nil
}

func (c *Conn) KVStore() ports.KVStore {
	return NewKVStore(c.client)
}

func (c *Conn) ReminderGuard() ports.ReminderGuard {
	return NewReminderGuard(c.client)
}

// Ping is used by the readiness probe.
func (c *Conn) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Conn) Close() error {
	return c.client.Close()
}
