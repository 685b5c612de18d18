package ordermodel

import "time"

// 订单状态
const (
	OrderStatusPending int8 = 0 // 待支付
	OrderStatusPaid    int8 = 1 // 支付成功
	OrderStatusClosed  int8 = 2 // 已关闭
	OrderStatusRefund  int8 = 3 // 转入退款
)

// PaymentOrder 支付订单
// out_trade_no 为商户侧单号；transaction_id 由网关在支付成功后分配，
// 两者同时存在时查询以 transaction_id 为准
type PaymentOrder struct {
	OrderID       uint64     `gorm:"column:order_id;primaryKey"`
	OutTradeNo    string     `gorm:"column:out_trade_no;uniqueIndex"`
	TransactionID *string    `gorm:"column:transaction_id;index"`
	Body          string     `gorm:"column:body"`
	TotalFee      int64      `gorm:"column:total_fee"` // 单位为分
	TradeType     string     `gorm:"column:trade_type"`
	OpenID        *string    `gorm:"column:open_id"`
	PrepayID      *string    `gorm:"column:prepay_id"`
	CodeURL       *string    `gorm:"column:code_url"`
	Status        int8       `gorm:"column:status"`
	NotifyTime    *time.Time `gorm:"column:notify_time"`
	FinishTime    *time.Time `gorm:"column:finish_time"`
	CreateTime    time.Time  `gorm:"column:create_time"`
	UpdateTime    time.Time  `gorm:"column:update_time"`
}

func (PaymentOrder) TableName() string { return "p_pay_order" }
