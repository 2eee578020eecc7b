package session

import (
	"context"
	"errors"
	"lexchange/internal/model"
	"time"
)

// 持久会话槽。整个存储里只有一条记录，进程重启后还在。
// 内容损坏时当作不存在处理（宁可回到无账户状态也不崩），
// Version用于提交时的乐观并发检查

var (
	// ErrNoRecord 槽位为空（首次运行、登出后、或内容损坏）
	ErrNoRecord = errors.New("session store: no record")
	// ErrVersionConflict 提交时发现槽位已被别人改过
	ErrVersionConflict = errors.New("session store: version conflict")
)

// Record 会话槽里的唯一一条记录
type Record struct {
	Version   int64         `json:"version"`
	Account   model.Account `json:"account"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Store 会话槽的存取接口
type Store interface {
	// Load 读取记录，槽位为空返回ErrNoRecord
	Load(ctx context.Context) (*Record, error)
	// Save 写入记录。rec.Version必须等于存储中当前版本+1，
	// 否则返回ErrVersionConflict（槽位为空时当作版本0）
	Save(ctx context.Context, rec *Record) error
	// Clear 清空槽位
	Clear(ctx context.Context) error
}
