package cache

import (
	"context"
	"lexchange/conf"
	"time"

	"github.com/go-redis/redis/v8"
)

var redisClient *redis.Client

// InitRedis 初始化redisClient
func InitRedis(redisCfg conf.RedisConfig) {
	redisClient = redis.NewClient(&redis.Options{
		DB:           redisCfg.Db,
		Addr:         redisCfg.Addr,
		Password:     redisCfg.Password,
		PoolSize:     redisCfg.PoolSize,
		MinIdleConns: redisCfg.MinIdleConns,
		IdleTimeout:  time.Duration(redisCfg.IdleTimeout) * time.Second,
	})
	_, err := redisClient.Ping(context.TODO()).Result()
	if err != nil {
		panic(err)
	}
}

// GetRedisClient 没有初始化时返回nil，调用方需要容忍（jwt黑名单在无redis时退化为不拉黑）
func GetRedisClient() *redis.Client {
	return redisClient
}

// 关闭redis client
func CloseRedis() error {
	if nil != redisClient {
		return redisClient.Close()
	}
	return nil
}
