package session

import (
	"context"
	"lexchange/internal/consts"
	"lexchange/internal/dao"
	"lexchange/internal/model/entity"
	"lexchange/pkg/logger"
	"lexchange/utils/uuid"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 数据库实现：session_slot表里固定key的一行。
// 真实部署想把"浏览器存档"换成数据库时用这个，引擎的契约不变

type GormStore struct {
	sd   dao.SessionDao
	iSrv *uuid.SnowNode
}

func NewGormStore(sd dao.SessionDao) *GormStore {
	return &GormStore{sd: sd, iSrv: uuid.NewNode(2)}
}

func (s *GormStore) Load(ctx context.Context) (*Record, error) {
	slot, err := s.sd.SlotGet(ctx, consts.SessionSlotKey)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoRecord
		}
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(slot.Payload, &rec); err != nil {
		logger.Warnf("数据库会话槽内容损坏，按空槽处理: %v", err)
		return nil, ErrNoRecord
	}
	rec.Version = slot.Version
	return &rec, nil
}

func (s *GormStore) Save(ctx context.Context, rec *Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	slot := &entity.SessionSlot{
		Id:      s.iSrv.GenSnowID(),
		SlotKey: consts.SessionSlotKey,
		Version: rec.Version,
		Payload: datatypes.JSON(payload),
	}
	err = s.sd.SlotSave(ctx, slot, rec.Version-1)
	if err == gorm.ErrRecordNotFound {
		return ErrVersionConflict
	}
	return err
}

func (s *GormStore) Clear(ctx context.Context) error {
	return s.sd.SlotClear(ctx, consts.SessionSlotKey)
}
