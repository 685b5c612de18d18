package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"wxpay-gateway-api/internal/constant"
	"wxpay-gateway-api/internal/dao"
	"wxpay-gateway-api/internal/dto"
	"wxpay-gateway-api/internal/idgen"
	ordermodel "wxpay-gateway-api/internal/model/order"
	"wxpay-gateway-api/internal/mq"
	"wxpay-gateway-api/internal/wxpay"
)

// PayService 支付操作编排：网关调用 + 订单落库
type PayService struct {
	client *wxpay.Client
	dao    *dao.OrderDao
	log    *logrus.Logger
}

func NewPayService(client *wxpay.Client, orderDao *dao.OrderDao, log *logrus.Logger) *PayService {
	return &PayService{client: client, dao: orderDao, log: log}
}

// CreateOrder 统一下单并落库
func (s *PayService) CreateOrder(ctx context.Context, req dto.CreateOrderReq) (*dto.CreateOrderResp, error) {
	tradeType := wxpay.TradeType(req.TradeType)
	if tradeType == "" {
		tradeType = wxpay.TradeTypeNative
	}
	outTradeNo := "P" + strconv.FormatUint(idgen.New(), 10)

	resp, err := s.client.UnifiedOrder(ctx, wxpay.UnifiedOrderReq{
		Body:           req.Body,
		OutTradeNo:     outTradeNo,
		TotalFee:       req.TotalFee,
		SpbillCreateIP: req.ClientIP,
		TradeType:      tradeType,
		OpenID:         req.OpenID,
		ProductID:      req.ProductID,
		Attach:         req.Attach,
	})
	if err != nil {
		return nil, err
	}
	if resp.Business != nil {
		return nil, constant.NewError(constant.CodeGatewayBusiness).WithData(resp.Business)
	}

	now := time.Now()
	order := &ordermodel.PaymentOrder{
		OrderID:    idgen.New(),
		OutTradeNo: outTradeNo,
		Body:       req.Body,
		TotalFee:   req.TotalFee,
		TradeType:  string(tradeType),
		Status:     ordermodel.OrderStatusPending,
		CreateTime: now,
		UpdateTime: now,
	}
	if req.OpenID != "" {
		order.OpenID = &req.OpenID
	}
	if resp.PrepayID != "" {
		order.PrepayID = &resp.PrepayID
	}
	if resp.CodeURL != "" {
		order.CodeURL = &resp.CodeURL
	}
	if err := s.dao.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("save order failed: %w", err)
	}

	out := &dto.CreateOrderResp{
		OutTradeNo: outTradeNo,
		PrepayID:   resp.PrepayID,
		CodeURL:    resp.CodeURL,
		MWebURL:    resp.MWebURL,
	}
	switch tradeType {
	case wxpay.TradeTypeApp:
		out.PayParams = s.client.AppPayParams(resp.PrepayID)
	case wxpay.TradeTypeJSAPI:
		out.PayParams = s.client.JSAPIPayParams(resp.PrepayID)
	}
	return out, nil
}

// AppPayParams 为已下单订单组装 APP 调起支付参数（二次签名）
func (s *PayService) AppPayParams(transactionID, outTradeNo string) (*wxpay.AppPayParams, error) {
	prepayID, err := s.prepayIDFor(transactionID, outTradeNo)
	if err != nil {
		return nil, err
	}
	p := s.client.AppPayParams(prepayID)
	return &p, nil
}

// JSAPIPayParams 为已下单订单组装 JSAPI/H5 调起支付参数
func (s *PayService) JSAPIPayParams(transactionID, outTradeNo string) (*wxpay.JSAPIPayParams, error) {
	prepayID, err := s.prepayIDFor(transactionID, outTradeNo)
	if err != nil {
		return nil, err
	}
	p := s.client.JSAPIPayParams(prepayID)
	return &p, nil
}

func (s *PayService) prepayIDFor(transactionID, outTradeNo string) (string, error) {
	if transactionID == "" && outTradeNo == "" {
		return "", constant.NewError(constant.CodeInvalidParams)
	}
	order, err := s.dao.GetOrder(transactionID, outTradeNo)
	if err != nil {
		return "", err
	}
	return prepayIDOf(order)
}

// prepayIDOf 取订单的预支付单号，下单未成功或单号缺失时报业务错误
func prepayIDOf(order *ordermodel.PaymentOrder) (string, error) {
	if order == nil {
		return "", constant.NewError(constant.CodeOrderNotFound)
	}
	if order.PrepayID == nil || *order.PrepayID == "" {
		return "", constant.NewError(constant.CodePrepayMissing)
	}
	return *order.PrepayID, nil
}

// QueryOrder 主动查单
func (s *PayService) QueryOrder(ctx context.Context, transactionID, outTradeNo string) (*dto.OrderQueryResp, error) {
	st, err := s.client.OrderQuery(ctx, transactionID, outTradeNo)
	if err != nil {
		return nil, err
	}
	if st.Business != nil {
		if st.Business.ErrCode == constant.GwOrderNotExist {
			return nil, constant.NewError(constant.CodeOrderNotFound)
		}
		return nil, constant.NewError(constant.CodeGatewayBusiness).WithData(st.Business)
	}
	return &dto.OrderQueryResp{
		TransactionID: st.TransactionID,
		OutTradeNo:    st.OutTradeNo,
		TradeState:    st.TradeState,
		TradeStateDes: st.TradeStateDes,
		TotalFee:      st.TotalFee,
	}, nil
}

// Refund 申请退款
// 同一订单同金额的未完结退款复用原退款单号，失败重试不会开出第二笔
func (s *PayService) Refund(ctx context.Context, req dto.RefundReq) (*dto.RefundResp, error) {
	if req.TransactionID == "" && req.OutTradeNo == "" {
		return nil, constant.NewError(constant.CodeInvalidParams)
	}

	outTradeNo := req.OutTradeNo
	if outTradeNo == "" {
		order, err := s.dao.GetOrder(req.TransactionID, "")
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, constant.NewError(constant.CodeOrderNotFound)
		}
		outTradeNo = order.OutTradeNo
	}

	outRefundNo, err := s.resolveOutRefundNo(outTradeNo, req.RefundFee)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Refund(ctx, wxpay.RefundReq{
		TransactionID: req.TransactionID,
		OutTradeNo:    req.OutTradeNo,
		OutRefundNo:   outRefundNo,
		TotalFee:      req.TotalFee,
		RefundFee:     req.RefundFee,
		RefundDesc:    req.RefundDesc,
	})
	if err != nil {
		return nil, err
	}
	if res.Business != nil {
		// 网关按退款单号去重后的业务错误原样透出，不吞掉
		switch res.Business.ErrCode {
		case constant.GwNotEnough:
			return nil, constant.NewError(constant.CodeRefundAmountError).WithData(res.Business)
		case constant.GwOrderNotExist:
			return nil, constant.NewError(constant.CodeOrderNotFound)
		}
		return nil, constant.NewError(constant.CodeRefundFailed).WithData(res.Business)
	}

	if err := s.dao.MarkRefundResult(outRefundNo, res.RefundID, ordermodel.RefundStatusProcessing); err != nil {
		s.log.WithError(err).WithField("out_refund_no", outRefundNo).Error("回写退款结果失败")
	}
	return &dto.RefundResp{
		RefundID:    res.RefundID,
		OutRefundNo: res.OutRefundNo,
		RefundFee:   res.RefundFee,
		Status:      "PROCESSING",
	}, nil
}

// resolveOutRefundNo 复用未完结退款的单号，否则新开一笔退款记录
func (s *PayService) resolveOutRefundNo(outTradeNo string, refundFee int64) (string, error) {
	var existing *ordermodel.RefundOrder
	list, err := s.dao.ListOpenRefunds(outTradeNo)
	if err != nil {
		return "", err
	}
	for i := range list {
		if list[i].RefundFee == refundFee {
			existing = &list[i]
			break
		}
	}
	if existing != nil {
		return existing.OutRefundNo, nil
	}

	now := time.Now()
	outRefundNo := "R" + strconv.FormatUint(idgen.New(), 10)
	rec := &ordermodel.RefundOrder{
		RefundOrderID: idgen.New(),
		OutRefundNo:   outRefundNo,
		OutTradeNo:    outTradeNo,
		RefundFee:     refundFee,
		Status:        ordermodel.RefundStatusApplied,
		CreateTime:    now,
		UpdateTime:    now,
	}
	if err := s.dao.CreateRefund(rec); err != nil {
		return "", fmt.Errorf("save refund failed: %w", err)
	}
	return outRefundNo, nil
}

// QueryRefund 退款查询，单号优先级 refund_id > out_refund_no > transaction_id > out_trade_no
func (s *PayService) QueryRefund(ctx context.Context, refundID, outRefundNo, transactionID, outTradeNo string) (*dto.RefundQueryResp, error) {
	st, err := s.client.RefundQuery(ctx, refundID, outRefundNo, transactionID, outTradeNo)
	if err != nil {
		return nil, err
	}
	if st.Business != nil {
		// 刚提交的退款在网关短暂不可查，回退本地退款记录
		if st.Business.ErrCode == constant.GwRefundNotExist && outRefundNo != "" {
			if rec, derr := s.dao.GetRefundByOutRefundNo(outRefundNo); derr == nil && rec != nil {
				resp := &dto.RefundQueryResp{
					OutRefundNo:  rec.OutRefundNo,
					RefundStatus: refundStatusText(rec.Status),
					RefundFee:    rec.RefundFee,
				}
				if rec.RefundID != nil {
					resp.RefundID = *rec.RefundID
				}
				return resp, nil
			}
		}
		return nil, constant.NewError(constant.CodeGatewayBusiness).WithData(st.Business)
	}
	return &dto.RefundQueryResp{
		RefundID:     st.RefundID,
		OutRefundNo:  st.OutRefundNo,
		RefundStatus: st.RefundStatus,
		RefundFee:    st.RefundFee,
	}, nil
}

// refundStatusText 本地退款状态映射为网关状态词汇
func refundStatusText(status int8) string {
	switch status {
	case ordermodel.RefundStatusSuccess:
		return wxpay.RefundStateSuccess
	case ordermodel.RefundStatusFail:
		return wxpay.RefundStateChange
	default:
		return wxpay.RefundStateProcessing
	}
}

// DownloadBill 下载对账单原文
func (s *PayService) DownloadBill(ctx context.Context, billDate string, billType string) (string, error) {
	return s.client.DownloadBill(ctx, billDate, wxpay.BillType(billType))
}

// DownloadBillParsed 下载并解析对账单
func (s *PayService) DownloadBillParsed(ctx context.Context, billDate string, billType string) (*wxpay.Bill, error) {
	text, err := s.client.DownloadBill(ctx, billDate, wxpay.BillType(billType))
	if err != nil {
		return nil, err
	}
	bill, err := wxpay.ParseBill(text)
	if err != nil {
		return nil, constant.NewError(constant.CodeReconFileError).WithData(err.Error())
	}
	return bill, nil
}

// OnConfirmed 回调处理器的业务钩子实现：更新订单/退款状态并发布事件
// 处理器保证同一业务单号至多进入一次
func (s *PayService) OnConfirmed(ctx context.Context, bizID string, payload wxpay.Params) error {
	if payload.Get("refund_id") != "" || payload.Get("out_refund_no") != "" {
		return s.confirmRefund(bizID, payload)
	}
	return s.confirmPayment(bizID, payload)
}

func (s *PayService) confirmPayment(bizID string, payload wxpay.Params) error {
	if payload.Get("result_code") != wxpay.ResultSuccess {
		s.log.WithField("biz_id", bizID).Warn("支付结果通知为失败状态，仅记录")
		return nil
	}
	outTradeNo := payload.Get("out_trade_no")
	transactionID := payload.Get("transaction_id")
	if err := s.dao.MarkOrderPaid(outTradeNo, transactionID); err != nil {
		return fmt.Errorf("mark order paid failed: %w", err)
	}
	totalFee, _ := strconv.ParseInt(payload.Get("total_fee"), 10, 64)
	return mq.PublishPayConfirmed(mq.PayConfirmedEvent{
		BizID:         bizID,
		TransactionID: transactionID,
		OutTradeNo:    outTradeNo,
		TotalFee:      totalFee,
		ResultCode:    payload.Get("result_code"),
		TimeEnd:       payload.Get("time_end"),
		ConfirmedAt:   time.Now().Unix(),
	})
}

func (s *PayService) confirmRefund(bizID string, payload wxpay.Params) error {
	outRefundNo := payload.Get("out_refund_no")
	refundID := payload.Get("refund_id")
	status := ordermodel.RefundStatusSuccess
	if payload.Get("refund_status") != "" && payload.Get("refund_status") != wxpay.RefundStateSuccess {
		status = ordermodel.RefundStatusFail
	}
	if err := s.dao.MarkRefundResult(outRefundNo, refundID, status); err != nil {
		return fmt.Errorf("mark refund result failed: %w", err)
	}
	refundFee, _ := strconv.ParseInt(payload.Get("refund_fee"), 10, 64)
	return mq.PublishRefundConfirmed(mq.RefundConfirmedEvent{
		BizID:       bizID,
		RefundID:    refundID,
		OutRefundNo: outRefundNo,
		RefundFee:   refundFee,
		ConfirmedAt: time.Now().Unix(),
	})
}
