package dao

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"wxpay-gateway-api/internal/dal"
	ordermodel "wxpay-gateway-api/internal/model/order"
)

type OrderDao struct {
	DB *gorm.DB
}

// 工厂方法：默认使用 dal.MainDB
func NewOrderDao() *OrderDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return NewOrderDaoWithDB(dal.MainDB)
}

// 支持传入自定义 DB（比如 txDB）
func NewOrderDaoWithDB(db *gorm.DB) *OrderDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &OrderDao{DB: db}
}

func (d *OrderDao) CreateOrder(o *ordermodel.PaymentOrder) error {
	return d.DB.Create(o).Error
}

// GetOrder 网关交易号优先，其次商户单号
func (d *OrderDao) GetOrder(transactionID, outTradeNo string) (*ordermodel.PaymentOrder, error) {
	var o ordermodel.PaymentOrder
	q := d.DB
	switch {
	case transactionID != "":
		q = q.Where("transaction_id = ?", transactionID)
	case outTradeNo != "":
		q = q.Where("out_trade_no = ?", outTradeNo)
	default:
		return nil, errors.New("transaction_id/out_trade_no 二选一")
	}
	if err := q.First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// MarkOrderPaid 标记订单支付成功并补写网关交易号
func (d *OrderDao) MarkOrderPaid(outTradeNo, transactionID string) error {
	now := time.Now()
	return d.DB.Model(&ordermodel.PaymentOrder{}).
		Where("out_trade_no = ? AND status = ?", outTradeNo, ordermodel.OrderStatusPending).
		Updates(map[string]interface{}{
			"transaction_id": transactionID,
			"status":         ordermodel.OrderStatusPaid,
			"notify_time":    now,
			"finish_time":    now,
			"update_time":    now,
		}).Error
}

// UpdateOrderStatus 对账补单时按网关查单结果修正状态
func (d *OrderDao) UpdateOrderStatus(outTradeNo string, status int8) error {
	return d.DB.Model(&ordermodel.PaymentOrder{}).
		Where("out_trade_no = ?", outTradeNo).
		Updates(map[string]interface{}{"status": status, "update_time": time.Now()}).Error
}

// ListPendingBefore 查询超过宽限期仍未支付的订单，对账补单用
func (d *OrderDao) ListPendingBefore(cutoff time.Time, limit int) ([]ordermodel.PaymentOrder, error) {
	var list []ordermodel.PaymentOrder
	err := d.DB.Where("status = ? AND create_time < ?", ordermodel.OrderStatusPending, cutoff).
		Order("create_time").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (d *OrderDao) CreateRefund(r *ordermodel.RefundOrder) error {
	return d.DB.Create(r).Error
}

// GetRefundByOutRefundNo 同一退款单号只对应一笔退款
func (d *OrderDao) GetRefundByOutRefundNo(outRefundNo string) (*ordermodel.RefundOrder, error) {
	var r ordermodel.RefundOrder
	if err := d.DB.Where("out_refund_no = ?", outRefundNo).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// ListOpenRefunds 查询某订单未完结（已提交/处理中）的退款
func (d *OrderDao) ListOpenRefunds(outTradeNo string) ([]ordermodel.RefundOrder, error) {
	var list []ordermodel.RefundOrder
	err := d.DB.Where("out_trade_no = ? AND status IN ?", outTradeNo,
		[]int8{ordermodel.RefundStatusApplied, ordermodel.RefundStatusProcessing}).
		Find(&list).Error
	return list, err
}

// MarkRefundResult 回写网关退款单号与状态
func (d *OrderDao) MarkRefundResult(outRefundNo, refundID string, status int8) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":      status,
		"notify_time": now,
		"update_time": now,
	}
	if refundID != "" {
		updates["refund_id"] = refundID
	}
	return d.DB.Model(&ordermodel.RefundOrder{}).
		Where("out_refund_no = ?", outRefundNo).
		Updates(updates).Error
}
