package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asservice/shiftboard/internal/core/ports"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultCollection = "kv"
)

// Config selects the server, database and collection that back the
// key-value store.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// Conn owns a MongoDB client and the collection the store writes to.
type Conn struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open connects and pings the server before handing back the connection.
func Open(ctx context.Context, cfg Config) (*Conn, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	collection := cfg.Collection
	if collection == "" {
		collection = defaultCollection
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI).SetAppName("shiftboard"))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Conn{
		client: client,
		coll:   client.Database(cfg.Database).Collection(collection),
	}, nil
}

// KVStore returns the key-value store over the configured collection.
func (c *Conn) KVStore() ports.KVStore {
	return NewKVStore(c.coll)
}

// Ping is used by the readiness probe.
func (c *Conn) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

func (c *Conn) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
