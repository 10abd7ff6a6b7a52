package infrastructures

import (
	"context"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func NewRedisClient() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     Config.REDIS_ADDRESS,
		Password: Config.REDIS_PASSWORD,
		DB:       0, // use default DB
	})

	// Test the connection
	if err := client.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("failed to connect redis: %v", err)
	}

	return client
}

func NewRedisLocker(client *redis.Client) *redislock.Client {
	return redislock.New(client)
}
