package callback

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	ordermodel "wxpay-gateway-api/internal/model/order"
)

// GormStore 基于 MySQL 的幂等存储，biz_id 唯一索引保证并发下只有一次首迁移
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) MarkProcessed(ctx context.Context, bizID string) (bool, error) {
	now := time.Now()
	rec := ordermodel.NotifyRecord{
		BizID:      bizID,
		Status:     ordermodel.NotifyProcessed,
		CreateTime: now,
		UpdateTime: now,
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "biz_id"}}, DoNothing: true}).
		Create(&rec)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 1 {
		return true, nil
	}

	// 记录已存在：只允许 UNSEEN -> PROCESSED 的条件更新完成首迁移
	up := s.db.WithContext(ctx).Model(&ordermodel.NotifyRecord{}).
		Where("biz_id = ? AND status = ?", bizID, ordermodel.NotifyUnseen).
		Updates(map[string]interface{}{"status": ordermodel.NotifyProcessed, "update_time": time.Now()})
	if up.Error != nil {
		return false, up.Error
	}
	return up.RowsAffected == 1, nil
}

func (s *GormStore) Processed(ctx context.Context, bizID string) (bool, error) {
	var rec ordermodel.NotifyRecord
	err := s.db.WithContext(ctx).Where("biz_id = ?", bizID).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return rec.Status == ordermodel.NotifyProcessed, nil
}
