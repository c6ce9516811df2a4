package redisx

import (
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Read cache for GET /orders/{id}: order:{order_id} -> serialized order
	KeyOrder = "order:%s"
)

var TTLOrderCache = 5 * time.Minute

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}
