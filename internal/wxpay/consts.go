package wxpay

// 网关 v2 返回结果
const (
	ResultSuccess = "SUCCESS"
	ResultFail    = "FAIL"
)

// TradeType 交易类型子协议
type TradeType string

const (
	TradeTypeNative TradeType = "NATIVE" // 扫码支付
	TradeTypeApp    TradeType = "APP"    // APP支付
	TradeTypeJSAPI  TradeType = "JSAPI"  // 公众号/小程序支付
	TradeTypeMWeb   TradeType = "MWEB"   // H5支付
)

// BillType 对账单类型
type BillType string

const (
	BillTypeAll     BillType = "ALL"     // 当日所有订单，默认值
	BillTypeSuccess BillType = "SUCCESS" // 当日成功支付的订单
	BillTypeRefund  BillType = "REFUND"  // 当日退款订单
	BillTypeRevoked BillType = "REVOKED" // 已撤销的订单
)

// 订单交易状态 trade_state
const (
	TradeStateSuccess  = "SUCCESS"    // 支付成功
	TradeStateRefund   = "REFUND"     // 转入退款
	TradeStateNotPay   = "NOTPAY"     // 未支付
	TradeStateClosed   = "CLOSED"     // 已关闭
	TradeStateRevoked  = "REVOKED"    // 已撤销
	TradeStatePaying   = "USERPAYING" // 用户支付中
	TradeStatePayError = "PAYERROR"   // 支付失败
)

// 退款状态 refund_status
const (
	RefundStateSuccess    = "SUCCESS"     // 退款成功
	RefundStateClosed     = "REFUNDCLOSE" // 退款关闭
	RefundStateProcessing = "PROCESSING"  // 退款处理中
	RefundStateChange     = "CHANGE"      // 退款异常，需人工处理
)
