package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

// SessionSlot 会话槽的数据库形态。整张表只有SlotKey固定的那一行，
// 账户整体作为json存在Payload里，清空槽位用软删除标记
type SessionSlot struct {
	Id        int64                 `gorm:"column:id;primary_key;" json:"id"`
	SlotKey   string                `gorm:"column:slot_key;not null;unique" json:"slot_key"`
	Version   int64                 `gorm:"column:version" json:"version"`
	Payload   datatypes.JSON        `gorm:"column:payload;type:json" json:"payload"` // 序列化的账户记录
	CreatedAt time.Time             `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time             `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt time.Time             `gorm:"column:deleted_at" json:"deleted_at"`
	IsDel     soft_delete.DeletedAt `gorm:"softDelete:flag,DeletedAtField:DeletedAt"`
}

func (SessionSlot) TableName() string {
	return "session_slot"
}
