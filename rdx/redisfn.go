package rdx

import (
	"os"
	"sync"

	"rasoi/globals"

	"github.com/redis/go-redis/v9"
)

var (
	once sync.Once
	conn *redis.Client
)

// Conn returns the shared Redis client. The cache is best effort everywhere:
// callers treat errors as misses, so a missing Redis only costs extra
// Mongo reads.
func Conn() *redis.Client {
	once.Do(func() {
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		conn = redis.NewClient(&redis.Options{Addr: addr})
	})
	return conn
}

func RdxSet(key string, value string) error {
	return Conn().Set(globals.Ctx, key, value, 0).Err()
}

func RdxGet(key string) (string, error) {
	return Conn().Get(globals.Ctx, key).Result()
}

func RdxDel(key string) error {
	return Conn().Del(globals.Ctx, key).Err()
}
