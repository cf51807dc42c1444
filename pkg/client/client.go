package client

import (
	"context"
	"time"

	"hotelms/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const redisPingTimeout = 2 * time.Second

type Client struct {
	Mongo *mongo.Client
	Redis *redis.Client
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, mongoConnTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB", "error", err)
	}

	log.Info("Successfully connected to MongoDB")
	c.Mongo = client
}

// SetRedis leaves c.Redis nil when the server does not answer a ping, so
// callers fall back to running without a cache.
func (c *Client) SetRedis(log *logger.Logger, addr, password string, db int) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, response caching disabled", "addr", addr, "error", err)
		_ = rdb.Close()
		return
	}

	log.Info("Successfully connected to Redis", "addr", addr)
	c.Redis = rdb
}

func (c *Client) GracefulShutdown(log *logger.Logger, timeout time.Duration) {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Error("Failed to close Redis client", "error", err)
		}
	}

	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := c.Mongo.Disconnect(ctx); err != nil {
			log.Error("Failed to disconnect from MongoDB", "error", err)
			return
		}
		log.Info("Disconnected from MongoDB")
	}
}
