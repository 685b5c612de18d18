package ordermodel

import "time"

// 通知处理状态：UNSEEN -> PROCESSED，终态不可逆
const (
	NotifyUnseen    int8 = 0
	NotifyProcessed int8 = 1
)

// NotifyRecord 通知幂等记录，biz_id 为通知所报告的业务单号
type NotifyRecord struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BizID      string    `gorm:"column:biz_id;uniqueIndex"`
	Status     int8      `gorm:"column:status"`
	CreateTime time.Time `gorm:"column:create_time"`
	UpdateTime time.Time `gorm:"column:update_time"`
}

func (NotifyRecord) TableName() string { return "p_notify_record" }
