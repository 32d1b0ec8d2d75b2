package storage

import (
	"context"
	"fmt"

	"github.com/foodhub-app/client-core/pkg/redis"
)

// Redis stores blobs in a shared Redis instance, namespaced under the
// foodhub blob prefix. Keys have no TTL; the cart lives until cleared.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.client.BlobKey(key))
	if err != nil {
		if redis.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading blob %q: %w", key, err)
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.client.BlobKey(key), value, 0); err != nil {
		return fmt.Errorf("writing blob %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.client.BlobKey(key)); err != nil {
		return fmt.Errorf("deleting blob %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
