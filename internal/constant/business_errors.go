package constant

// 业务级错误码 (2xxx)

// 订单相关错误码
const (
	CodeOrderNotFound    = 2100 // 订单不存在，请检查订单号是否正确
	CodeOrderAlreadyPaid = 2105 // 订单已支付，请勿重复支付
	CodeOrderClosed      = 2107 // 订单已关闭，无法进行任何操作
	CodePrepayMissing    = 2109 // 订单无可用预支付单，请重新下单
)

// 退款相关错误码
const (
	CodeRefundFailed      = 2600 // 退款失败，请检查退款信息
	CodeRefundProcessing  = 2601 // 退款处理中，请勿重复提交
	CodeRefundAmountError = 2602 // 退款金额超过可退金额
)

// 通知相关错误码
const (
	CodeNotifySignError   = 2702 // 通知签名验证失败
	CodeNotifyFormatError = 2703 // 通知格式错误，请检查数据格式
	CodeNotifyRepeat      = 2704 // 重复通知，已处理过该通知
)

// 网关交互错误码
const (
	CodeGatewayProtocol  = 2800 // 网关通信层拒绝，return_code非SUCCESS
	CodeGatewayBusiness  = 2801 // 网关业务层失败，result_code非SUCCESS
	CodeGatewaySignError = 2802 // 网关响应验签失败
	CodeGatewayTransport = 2803 // 网关网络异常（超时/拒连/TLS）
)

// 对账相关错误码
const (
	CodeReconFileError    = 2810 // 对账单格式错误或无法解析
	CodeReconDownloadFail = 2812 // 对账单下载失败
)
