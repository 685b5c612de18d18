package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"wxpay-gateway-api/internal/callback"
	"wxpay-gateway-api/internal/config"
	"wxpay-gateway-api/internal/dao"
	ordermodel "wxpay-gateway-api/internal/model/order"
	"wxpay-gateway-api/internal/utils"
	"wxpay-gateway-api/internal/wxpay"
)

// ReconcileService 对账补单
// 网关不保证通知最终送达（重发约8次后放弃），超过宽限期仍未支付的
// 订单通过主动查单兜底修正状态
type ReconcileService struct {
	client *wxpay.Client
	dao    *dao.OrderDao
	proc   *callback.Processor
	log    *logrus.Logger
}

func NewReconcileService(client *wxpay.Client, orderDao *dao.OrderDao, proc *callback.Processor, log *logrus.Logger) *ReconcileService {
	return &ReconcileService{client: client, dao: orderDao, proc: proc, log: log}
}

// Run 周期执行，main 中以 goroutine 启动
func (s *ReconcileService) Run(ctx context.Context) {
	ticker := time.NewTicker(config.C.Reconcile.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.ReconcileOnce(ctx); err != nil {
				s.log.WithError(err).Error("对账补单执行失败")
			}
		}
	}
}

// ReconcileOnce 单轮补单：逐笔查单并修正本地状态
func (s *ReconcileService) ReconcileOnce(ctx context.Context) error {
	cutoff := time.Now().Add(-config.C.Reconcile.GraceAge)
	orders, err := s.dao.ListPendingBefore(cutoff, config.C.Reconcile.BatchSize)
	if err != nil {
		return err
	}
	for i := range orders {
		s.reconcileOrder(ctx, &orders[i])
	}
	return nil
}

func (s *ReconcileService) reconcileOrder(ctx context.Context, order *ordermodel.PaymentOrder) {
	var st *wxpay.OrderStatus
	err := utils.DoWithRetry(ctx, config.C.Reconcile.RetryTimes, config.C.Reconcile.RetryInterval, func() error {
		r, qerr := s.client.OrderQuery(ctx, "", order.OutTradeNo)
		if qerr != nil {
			return qerr
		}
		st = r
		return nil
	})
	if err != nil {
		s.log.WithError(err).WithField("out_trade_no", order.OutTradeNo).Warn("补单查询失败")
		return
	}
	if st.Business != nil {
		s.log.WithField("out_trade_no", order.OutTradeNo).
			WithField("err_code", st.Business.ErrCode).Warn("补单查询业务失败")
		return
	}

	switch st.TradeState {
	case wxpay.TradeStateSuccess:
		// 经由回调处理器确认：共用幂等存储，迟到的回调不会二次触发钩子
		first, err := s.proc.Confirm(ctx, st.TransactionID, st.Raw)
		if err != nil {
			s.log.WithError(err).WithField("out_trade_no", order.OutTradeNo).Error("补单确认失败")
			return
		}
		if !first {
			// 回调已确认过但订单仍是待支付，说明当时钩子失败：只修正订单状态，不再触发钩子
			if err := s.dao.MarkOrderPaid(order.OutTradeNo, st.TransactionID); err != nil {
				s.log.WithError(err).WithField("out_trade_no", order.OutTradeNo).Error("补单修正订单失败")
			}
			return
		}
		s.log.WithField("out_trade_no", order.OutTradeNo).Info("补单确认支付成功")
	case wxpay.TradeStateClosed, wxpay.TradeStateRevoked, wxpay.TradeStatePayError:
		if err := s.dao.UpdateOrderStatus(order.OutTradeNo, ordermodel.OrderStatusClosed); err != nil {
			s.log.WithError(err).WithField("out_trade_no", order.OutTradeNo).Error("补单关闭订单失败")
		}
	default:
		// NOTPAY/USERPAYING 留待下一轮
	}
}
