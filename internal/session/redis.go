package session

import (
	"context"
	"lexchange/internal/consts"
	"lexchange/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
)

// redis实现：单个key当作会话槽。CAS用WATCH/MULTI实现，
// 多个进程共用同一个槽时last-write-wins会变成可检测的冲突

type RedisStore struct {
	rc  *redis.Client
	key string
}

func NewRedisStore(rc *redis.Client) *RedisStore {
	return &RedisStore{rc: rc, key: consts.AccountCachePrefix + consts.SessionSlotKey}
}

func (s *RedisStore) Load(ctx context.Context) (*Record, error) {
	data, err := s.rc.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNoRecord
		}
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		logger.Warnf("redis会话槽内容损坏，按空槽处理: %v", err)
		return nil, ErrNoRecord
	}
	return &rec, nil
}

func (s *RedisStore) Save(ctx context.Context, rec *Record) error {
	// WATCH期间key被改动时事务会失败，重试交给调用方
	txf := func(tx *redis.Tx) error {
		var current int64
		data, err := tx.Get(ctx, s.key).Bytes()
		switch {
		case err == redis.Nil:
			current = 0
		case err != nil:
			return err
		default:
			var cur Record
			if err := json.Unmarshal(data, &cur); err == nil {
				current = cur.Version
			}
		}
		if rec.Version != current+1 {
			return ErrVersionConflict
		}
		payload, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, payload, 0)
			return nil
		})
		return err
	}
	err := s.rc.Watch(ctx, txf, s.key)
	if err == redis.TxFailedErr {
		return ErrVersionConflict
	}
	return err
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.rc.Del(ctx, s.key).Err()
}
