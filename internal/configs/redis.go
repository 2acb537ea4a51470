package config

import (
	"fmt"

	"github.com/redis/rueidis"
)

func NewRedisClient(addr, password string) (rueidis.Client, error) {
	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress: []string{addr},
			Password:    password,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	return redisClient, nil
}
