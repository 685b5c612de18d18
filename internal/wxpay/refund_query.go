package wxpay

import (
	"context"
	"strconv"
)

// RefundStatus 退款查询结果
type RefundStatus struct {
	RefundID     string
	OutRefundNo  string
	RefundStatus string
	RefundFee    int64
	Business     *BusinessError
	Raw          Params
}

// RefundQuery 查询退款
// 四个单号必填其一，优先级 refund_id > out_refund_no > transaction_id > out_trade_no，
// 取第一个非空者参与查询，其余忽略
func (c *Client) RefundQuery(ctx context.Context, refundID, outRefundNo, transactionID, outTradeNo string) (*RefundStatus, error) {
	p := c.newRequest()
	switch {
	case refundID != "":
		p.Set("refund_id", refundID)
	case outRefundNo != "":
		p.Set("out_refund_no", outRefundNo)
	case transactionID != "":
		p.Set("transaction_id", transactionID)
	case outTradeNo != "":
		p.Set("out_trade_no", outTradeNo)
	default:
		return nil, &ValidationError{Field: "refund_id/out_refund_no/transaction_id/out_trade_no", Reason: "四选一必填"}
	}

	resp, err := c.Send(ctx, EndpointRefundQuery, c.signed(p))
	if err != nil {
		return nil, err
	}

	out := &RefundStatus{Raw: resp}
	if biz := businessResult(resp); biz != nil {
		out.Business = biz
		return out, nil
	}
	out.RefundID = resp.Get("refund_id_0")
	if out.RefundID == "" {
		out.RefundID = resp.Get("refund_id")
	}
	out.OutRefundNo = resp.Get("out_refund_no_0")
	if out.OutRefundNo == "" {
		out.OutRefundNo = resp.Get("out_refund_no")
	}
	out.RefundStatus = resp.Get("refund_status_0")
	if out.RefundStatus == "" {
		out.RefundStatus = resp.Get("refund_status")
	}
	fee := resp.Get("refund_fee_0")
	if fee == "" {
		fee = resp.Get("refund_fee")
	}
	out.RefundFee, _ = strconv.ParseInt(fee, 10, 64)
	return out, nil
}
