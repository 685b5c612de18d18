package dto

// CreateOrderReq 下单请求
type CreateOrderReq struct {
	Body      string `json:"body" binding:"required"`
	TotalFee  int64  `json:"total_fee" binding:"required"`
	TradeType string `json:"trade_type"` // NATIVE | APP | JSAPI | MWEB，默认 NATIVE
	OpenID    string `json:"open_id"`    // JSAPI/MWEB 必填
	ProductID string `json:"product_id"`
	ClientIP  string `json:"client_ip"`
	Attach    string `json:"attach"`
}

// CreateOrderResp 下单结果
type CreateOrderResp struct {
	OutTradeNo string      `json:"out_trade_no"`
	PrepayID   string      `json:"prepay_id,omitempty"`
	CodeURL    string      `json:"code_url,omitempty"`
	MWebURL    string      `json:"mweb_url,omitempty"`
	PayParams  interface{} `json:"pay_params,omitempty"` // APP/JSAPI 的调起支付参数
}

// OrderQueryResp 查单结果
type OrderQueryResp struct {
	TransactionID string `json:"transaction_id"`
	OutTradeNo    string `json:"out_trade_no"`
	TradeState    string `json:"trade_state"`
	TradeStateDes string `json:"trade_state_desc,omitempty"`
	TotalFee      int64  `json:"total_fee"`
}

// RefundReq 退款请求
type RefundReq struct {
	TransactionID string `json:"transaction_id"`
	OutTradeNo    string `json:"out_trade_no"`
	TotalFee      int64  `json:"total_fee" binding:"required"`
	RefundFee     int64  `json:"refund_fee" binding:"required"`
	RefundDesc    string `json:"refund_desc"`
}

// RefundResp 退款结果
type RefundResp struct {
	RefundID    string `json:"refund_id"`
	OutRefundNo string `json:"out_refund_no"`
	RefundFee   int64  `json:"refund_fee"`
	Status      string `json:"status"`
}

// RefundQueryResp 退款查询结果
type RefundQueryResp struct {
	RefundID     string `json:"refund_id"`
	OutRefundNo  string `json:"out_refund_no"`
	RefundStatus string `json:"refund_status"`
	RefundFee    int64  `json:"refund_fee"`
}
