package wxpay

import (
	"context"
	"strconv"
)

// RefundReq 申请退款请求
// 同一 out_refund_no 多次请求网关只退一笔，失败后重试必须沿用原退款单号
type RefundReq struct {
	TransactionID string // 与 out_trade_no 二选一，优先使用
	OutTradeNo    string
	OutRefundNo   string // 商户退款单号，商户内唯一
	TotalFee      int64  // 订单总金额，单位为分
	RefundFee     int64  // 退款金额，单位为分，支持部分退款
	RefundDesc    string
}

// RefundResult 退款结果
type RefundResult struct {
	RefundID    string // 网关退款单号
	OutRefundNo string
	RefundFee   int64
	Business    *BusinessError
	Raw         Params
}

// Refund 申请退款
// refund_fee > total_fee 在发起网络调用前即拒绝
// 网关按 out_refund_no 去重，重复提交返回同一笔退款，此处原样透出不吞掉
func (c *Client) Refund(ctx context.Context, req RefundReq) (*RefundResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	p := c.newRequest()
	if req.TransactionID != "" {
		p.Set("transaction_id", req.TransactionID)
	} else {
		p.Set("out_trade_no", req.OutTradeNo)
	}
	p.Set("out_refund_no", req.OutRefundNo)
	p.Set("total_fee", strconv.FormatInt(req.TotalFee, 10))
	p.Set("refund_fee", strconv.FormatInt(req.RefundFee, 10))
	if req.RefundDesc != "" {
		p.Set("refund_desc", req.RefundDesc)
	}

	resp, err := c.Send(ctx, EndpointRefund, c.signed(p))
	if err != nil {
		return nil, err
	}

	out := &RefundResult{Raw: resp}
	if biz := businessResult(resp); biz != nil {
		out.Business = biz
		return out, nil
	}
	out.RefundID = resp.Get("refund_id")
	out.OutRefundNo = resp.Get("out_refund_no")
	out.RefundFee, _ = strconv.ParseInt(resp.Get("refund_fee"), 10, 64)
	return out, nil
}

func (r RefundReq) validate() error {
	if r.TransactionID == "" && r.OutTradeNo == "" {
		return &ValidationError{Field: "transaction_id/out_trade_no", Reason: "二选一必填"}
	}
	if r.OutRefundNo == "" {
		return &ValidationError{Field: "out_refund_no", Reason: "必填"}
	}
	if err := validateTradeNo("out_refund_no", r.OutRefundNo); err != nil {
		return err
	}
	if r.TotalFee <= 0 {
		return &ValidationError{Field: "total_fee", Reason: "必须为正整数（分）"}
	}
	if r.RefundFee <= 0 {
		return &ValidationError{Field: "refund_fee", Reason: "必须为正整数（分）"}
	}
	if r.RefundFee > r.TotalFee {
		return ErrInvalidAmount
	}
	return nil
}
