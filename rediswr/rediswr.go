// Package rediswr wraps go-redis client construction behind a YAML-friendly config.
package rediswr

import (
	"strings"

	"github.com/redis/go-redis/v9"
)

// New creates a new Redis client.
func New(cfg Config) redis.Cmdable {
	addrs := strings.Split(cfg.Addrs, ",")

	if cfg.IsClusterMode {
		return redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    addrs,
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    addrs,
		Username: cfg.Username,
		Password: cfg.Password,
	})
}
