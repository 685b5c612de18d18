package constant

// 系统级错误码 (1xxx)

const (
	CodeSuccess       = 0    // 操作成功，请求已成功处理并返回预期结果
	CodeSystemError   = 1000 // 系统内部错误，服务器遇到意外情况无法完成请求
	CodeDatabaseError = 1001 // 数据库操作失败，包括连接失败、查询错误、事务异常等
	CodeRedisError    = 1002 // Redis缓存服务错误，包括连接失败、读写超时等
	CodeTimeout       = 1005 // 请求处理超时，在规定时间内未完成处理
)

// 参数错误码
const (
	CodeInvalidParams = 1100 // 参数格式错误，请求参数不符合预期格式或规范
	CodeMissingParams = 1101 // 缺少必要参数，请求中缺失必须提供的参数字段
)
