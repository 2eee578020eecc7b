package session

import (
	"context"
	"sync"
)

// 内存实现，单进程默认存储，也是测试用的存储

type MemoryStore struct {
	mu  sync.Mutex
	rec *Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		return nil, ErrNoRecord
	}
	cp := *s.rec
	cp.Account = s.rec.Account.Clone()
	return &cp, nil
}

func (s *MemoryStore) Save(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var current int64
	if s.rec != nil {
		current = s.rec.Version
	}
	if rec.Version != current+1 {
		return ErrVersionConflict
	}
	cp := *rec
	cp.Account = rec.Account.Clone()
	s.rec = &cp
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = nil
	return nil
}
