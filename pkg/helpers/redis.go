package helpers

import "github.com/redis/go-redis/v9"

// NewRedisClient builds a client for the optional cache. Connectivity is not
// verified here; cache reads degrade to the database on failure.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
