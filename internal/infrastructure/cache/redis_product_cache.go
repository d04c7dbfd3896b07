// Package cache implementa el cache de lectura de productos sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/kioscosoft/distribuidora-api/internal/application/catalog"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
)

var _ catalog.ProductCache = (*RedisProductCache)(nil)

const productKeyPrefix = "product:"

// RedisProductCache cache read-through de productos con TTL fijo.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProductCache construye el cache con su cliente Redis.
func NewRedisProductCache(addr, password string, db int) *RedisProductCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisProductCache{client: client, ttl: 5 * time.Minute}
}

// Ping verifica la conexión.
func (c *RedisProductCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *RedisProductCache) Close() error {
	return c.client.Close()
}

// Get lee un producto del cache. (nil, false, nil) si no está.
func (c *RedisProductCache) Get(ctx context.Context, id string) (*entity.Product, bool, error) {
	val, err := c.client.Get(ctx, productKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var p entity.Product
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

// Set guarda un producto con el TTL configurado.
func (c *RedisProductCache) Set(ctx context.Context, product *entity.Product) error {
	if product == nil {
		return nil
	}
	payload, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productKeyPrefix+product.ID, payload, c.ttl).Err()
}

// Invalidate borra la entrada de un producto (tras update o baja).
func (c *RedisProductCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, productKeyPrefix+id).Err()
}
