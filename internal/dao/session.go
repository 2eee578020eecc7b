package dao

import (
	"context"
	"lexchange/internal/model/entity"
)

type SessionDao interface {
	// 根据槽位key获取记录
	SlotGet(ctx context.Context, slotKey string) (entity.SessionSlot, error)
	// 带版本检查的写入，expect是写入前存储里应有的版本
	SlotSave(ctx context.Context, slot *entity.SessionSlot, expect int64) error
	// 清空槽位（软删除）
	SlotClear(ctx context.Context, slotKey string) error
}
