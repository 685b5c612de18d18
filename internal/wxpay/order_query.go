package wxpay

import (
	"context"
	"strconv"
	"strings"
)

// OrderStatus 订单查询结果
type OrderStatus struct {
	TransactionID string
	OutTradeNo    string
	TradeState    string
	TradeStateDes string
	TotalFee      int64
	Business      *BusinessError
	Raw           Params
}

// OrderQuery 查询订单
// transaction_id 与 out_trade_no 二选一；同时存在时 transaction_id 优先，
// out_trade_no 仅做格式校验不参与查询
func (c *Client) OrderQuery(ctx context.Context, transactionID, outTradeNo string) (*OrderStatus, error) {
	if transactionID == "" && outTradeNo == "" {
		return nil, &ValidationError{Field: "transaction_id/out_trade_no", Reason: "二选一必填"}
	}
	if outTradeNo != "" {
		if err := validateTradeNo("out_trade_no", outTradeNo); err != nil {
			return nil, err
		}
	}

	p := c.newRequest()
	if transactionID != "" {
		p.Set("transaction_id", transactionID)
	} else {
		p.Set("out_trade_no", outTradeNo)
	}

	resp, err := c.Send(ctx, EndpointOrderQuery, c.signed(p))
	if err != nil {
		return nil, err
	}

	out := &OrderStatus{Raw: resp}
	if biz := businessResult(resp); biz != nil {
		out.Business = biz
		return out, nil
	}
	out.TransactionID = resp.Get("transaction_id")
	out.OutTradeNo = resp.Get("out_trade_no")
	out.TradeState = resp.Get("trade_state")
	out.TradeStateDes = resp.Get("trade_state_desc")
	out.TotalFee, _ = strconv.ParseInt(resp.Get("total_fee"), 10, 64)
	return out, nil
}

// validateTradeNo 商户单号格式校验：1-32位，字母数字及 _-|*
func validateTradeNo(field, v string) error {
	if len(v) == 0 || len(v) > 32 {
		return &ValidationError{Field: field, Reason: "长度须为1-32位"}
	}
	for _, r := range v {
		ok := r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' ||
			strings.ContainsRune("_-|*", r)
		if !ok {
			return &ValidationError{Field: field, Reason: "含非法字符"}
		}
	}
	return nil
}
