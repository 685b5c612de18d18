package constant

// 网关 v2 业务错误码 err_code

const (
	GwSystemError    = "SYSTEMERROR"       // 系统繁忙，请稍后再试
	GwParamError     = "PARAM_ERROR"       // 参数错误
	GwSignError      = "SIGNERROR"         // 签名错误
	GwLackParams     = "LACK_PARAMS"       // 缺少参数
	GwNoAuth         = "NOAUTH"            // 商户无权限
	GwNotEnough      = "NOTENOUGH"         // 余额不足
	GwUserPaying     = "USERPAYING"        // 用户支付中，需要输入密码
	GwAppIDNotExist  = "APPID_NOT_EXIST"   // APPID不存在
	GwMchIDNotExist  = "MCHID_NOT_EXIST"   // MCHID不存在
	GwOrderNotExist  = "ORDERNOTEXIST"     // 订单不存在
	GwOrderPaid      = "ORDERPAID"         // 订单已支付
	GwOrderClosed    = "ORDERCLOSED"       // 订单已关闭
	GwOrderReversed  = "ORDERREVERSED"     // 订单已撤销
	GwRefundNotExist = "REFUNDNOTEXIST"    // 退款不存在
	GwOutTradeNoUsed = "OUT_TRADE_NO_USED" // 商户订单号重复
	GwXMLFormatError = "XML_FORMAT_ERROR"  // XML格式错误
	GwPostDataEmpty  = "POST_DATA_EMPTY"   // post数据为空
	GwInvalidRequest = "INVALID_REQUEST"   // 无效请求
	GwBillNoExist    = "NO_BILL_EXIST"     // 账单不存在或超出三个月保留期
)
