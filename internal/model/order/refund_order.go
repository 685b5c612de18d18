package ordermodel

import "time"

// 退款状态
const (
	RefundStatusApplied    int8 = 0 // 已提交
	RefundStatusProcessing int8 = 1 // 处理中
	RefundStatusSuccess    int8 = 2 // 退款成功
	RefundStatusFail       int8 = 3 // 退款失败
)

// RefundOrder 退款单
// out_refund_no 商户内唯一，同一单号重复提交解析到同一笔退款
type RefundOrder struct {
	RefundOrderID uint64     `gorm:"column:refund_order_id;primaryKey"`
	OutRefundNo   string     `gorm:"column:out_refund_no;uniqueIndex"`
	RefundID      *string    `gorm:"column:refund_id;index"` // 网关退款单号
	OutTradeNo    string     `gorm:"column:out_trade_no;index"`
	TransactionID *string    `gorm:"column:transaction_id"`
	TotalFee      int64      `gorm:"column:total_fee"`
	RefundFee     int64      `gorm:"column:refund_fee"`
	Status        int8       `gorm:"column:status"`
	NotifyTime    *time.Time `gorm:"column:notify_time"`
	CreateTime    time.Time  `gorm:"column:create_time"`
	UpdateTime    time.Time  `gorm:"column:update_time"`
}

func (RefundOrder) TableName() string { return "p_refund_order" }
