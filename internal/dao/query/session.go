package query

import (
	"context"
	"lexchange/internal/dao"
	"lexchange/internal/model/entity"
	"time"

	"gorm.io/gorm"
)

var _ dao.SessionDao = (*sessionDao)(nil)

type sessionDao struct {
	ds *gorm.DB
}

func NewSessionDao(ds *gorm.DB) *sessionDao {
	return &sessionDao{
		ds: ds,
	}
}

func (s *sessionDao) SlotGet(ctx context.Context, slotKey string) (entity.SessionSlot, error) {
	var slot entity.SessionSlot
	err := s.ds.WithContext(ctx).Model(&entity.SessionSlot{}).Where("slot_key = ?", slotKey).First(&slot).Error
	return slot, err
}

func (s *sessionDao) SlotSave(ctx context.Context, slot *entity.SessionSlot, expect int64) error {
	if expect == 0 {
		// 槽位应该是空的。slot_key有唯一索引，软删除留下的旧行要复活而不是新建。
		// 这里的查再写和数据库唯一约束之间有竞态，单写者模型下可以接受
		var existing entity.SessionSlot
		err := s.ds.WithContext(ctx).Unscoped().Where("slot_key = ?", slot.SlotKey).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			return s.ds.WithContext(ctx).Create(slot).Error
		}
		if err != nil {
			return err
		}
		if existing.IsDel == 0 {
			// 活跃行还在，说明别人已经写过了
			return gorm.ErrRecordNotFound
		}
		return s.ds.WithContext(ctx).Unscoped().Model(&entity.SessionSlot{}).
			Where("id = ?", existing.Id).
			Updates(map[string]interface{}{
				"version":    slot.Version,
				"payload":    slot.Payload,
				"is_del":     0,
				"deleted_at": time.Time{},
			}).Error
	}

	// 乐观锁：update带版本条件，影响0行说明版本已经变了
	res := s.ds.WithContext(ctx).Model(&entity.SessionSlot{}).
		Where("slot_key = ? AND version = ?", slot.SlotKey, expect).
		Updates(map[string]interface{}{
			"version": slot.Version,
			"payload": slot.Payload,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *sessionDao) SlotClear(ctx context.Context, slotKey string) error {
	return s.ds.WithContext(ctx).Where("slot_key = ?", slotKey).Delete(&entity.SessionSlot{}).Error
}
