package sequence

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type RedisOptions struct {
	Addr      string        `cfg:"addr" def:"localhost:6379"`
	Password  string        `cfg:"password"`
	DB        int           `cfg:"db"`
	KeyPrefix string        `cfg:"keyPrefix" def:"dbx:sequence:"`
	Timeout   time.Duration `cfg:"timeout" def:"3s"`
}

// 自增后小于 minValue 时直接跳到 minValue
var nextScript = redis.NewScript(`
local v = redis.call('INCR', KEYS[1])
local min = tonumber(ARGV[1])
if v < min then
	redis.call('SET', KEYS[1], min)
	v = min
end
return v
`)

// RedisGenerator 每个序列对应一个 key，多个进程共享同一个序列
type RedisGenerator struct {
	client    redis.UniversalClient
	keyPrefix string
	timeout   time.Duration
}

func NewRedisGenerator(client redis.UniversalClient, keyPrefix string) *RedisGenerator {
	return &RedisGenerator{client: client, keyPrefix: keyPrefix, timeout: 3 * time.Second}
}

func NewRedisGeneratorWithOptions(options *RedisOptions) (*RedisGenerator, error) {
	if options == nil {
		options = &RedisOptions{}
	}

	addr := options.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	keyPrefix := options.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "dbx:sequence:"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: options.Password,
		DB:       options.DB,
	})

	g := NewRedisGenerator(client, keyPrefix)
	if options.Timeout > 0 {
		g.timeout = options.Timeout
	}
	return g, nil
}

func (g *RedisGenerator) Next(ctx context.Context, name string, minValue int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	v, err := nextScript.Run(ctx, g.client, []string{g.keyPrefix + name}, minValue).Int64()
	if err != nil {
		return 0, errors.Wrapf(err, "redis next value of sequence %s failed", name)
	}
	return v, nil
}

func (g *RedisGenerator) Close() error {
	return g.client.Close()
}
