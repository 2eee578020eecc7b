package session

import (
	"context"
	"lexchange/pkg/logger"
	"lexchange/utils/security"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// 文件实现：单个json文件当作会话槽，模拟浏览器local storage的那一条记录。
// sealer非空时文件内容整体加密

type FileStore struct {
	mu     sync.Mutex
	path   string
	sealer *security.Sealer
}

// NewFileStore 创建文件存储，sealKey为空则明文存储
func NewFileStore(path string, sealKey string) (*FileStore, error) {
	s := &FileStore{path: path}
	if sealKey != "" {
		sealer, err := security.NewSealer(sealKey)
		if err != nil {
			return nil, err
		}
		s.sealer = sealer
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *FileStore) Load(ctx context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileStore) loadLocked() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoRecord
		}
		return nil, err
	}
	if s.sealer != nil {
		data, err = s.sealer.Open(data)
		if err != nil {
			// 解不开就当没有，不让一个坏文件把进程卡死
			logger.Warnf("会话存档解密失败，按空槽处理: %v", err)
			return nil, ErrNoRecord
		}
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		logger.Warnf("会话存档损坏，按空槽处理: %v", err)
		return nil, ErrNoRecord
	}
	return &rec, nil
}

func (s *FileStore) Save(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	if cur, err := s.loadLocked(); err == nil {
		current = cur.Version
	} else if err != ErrNoRecord {
		return err
	}
	if rec.Version != current+1 {
		return ErrVersionConflict
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if s.sealer != nil {
		data, err = s.sealer.Seal(data)
		if err != nil {
			return err
		}
	}
	// 先写临时文件再rename，避免写一半进程挂掉留下残缺存档
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
