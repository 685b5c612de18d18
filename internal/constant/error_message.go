package constant

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	// 系统错误
	CodeSuccess:       {"操作成功", "Success"},
	CodeSystemError:   {"系统错误", "System error"},
	CodeDatabaseError: {"数据库错误", "Database error"},
	CodeRedisError:    {"缓存服务错误", "Redis error"},
	CodeTimeout:       {"请求超时", "Request timeout"},

	// 参数错误
	CodeInvalidParams: {"参数格式错误", "Invalid params"},
	CodeMissingParams: {"缺少必要参数", "Missing params"},

	// 订单相关错误
	CodeOrderNotFound:    {"订单不存在", "Order not found"},
	CodeOrderAlreadyPaid: {"订单已支付", "Order already paid"},
	CodeOrderClosed:      {"订单已关闭", "Order closed"},
	CodePrepayMissing:    {"订单无可用预支付单", "Prepay id missing"},

	// 退款相关错误
	CodeRefundFailed:      {"退款失败", "Refund failed"},
	CodeRefundProcessing:  {"退款处理中", "Refund processing"},
	CodeRefundAmountError: {"退款金额超过可退金额", "Refund amount exceeds refundable"},

	// 通知相关错误
	CodeNotifySignError:   {"通知签名验证失败", "Notify sign invalid"},
	CodeNotifyFormatError: {"通知格式错误", "Notify format error"},
	CodeNotifyRepeat:      {"重复通知，已处理过", "Duplicate notify"},

	// 网关交互错误
	CodeGatewayProtocol:  {"网关通信失败", "Gateway protocol error"},
	CodeGatewayBusiness:  {"网关业务失败", "Gateway business error"},
	CodeGatewaySignError: {"网关响应验签失败", "Gateway sign invalid"},
	CodeGatewayTransport: {"网关网络异常", "Gateway transport error"},

	// 对账相关错误
	CodeReconFileError:    {"对账单格式错误", "Bill format error"},
	CodeReconDownloadFail: {"对账单下载失败", "Bill download failed"},
}
