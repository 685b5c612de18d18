package wxpay

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPayload 报文不是合法的扁平XML
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrSignatureInvalid 签名校验失败
	ErrSignatureInvalid = errors.New("signature invalid")
	// ErrInvalidAmount 退款金额大于订单金额
	ErrInvalidAmount = errors.New("refund_fee exceeds total_fee")
)

// TransportErrorKind 传输层错误分类
type TransportErrorKind string

const (
	TransportTimeout           TransportErrorKind = "TIMEOUT"
	TransportConnectionRefused TransportErrorKind = "CONNECTION_REFUSED"
	TransportTLSError          TransportErrorKind = "TLS_ERROR"
)

// TransportError 网络层失败，由调用方决定是否重试
type TransportError struct {
	Kind TransportErrorKind
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error (%s): %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError 通信层被网关拒绝: return_code != SUCCESS
type ProtocolError struct {
	ReturnCode string
	ReturnMsg  string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("gateway rejected: %s | %s", e.ReturnCode, e.ReturnMsg)
}

// BusinessError 业务层失败: result_code != SUCCESS
// 作为结果值返回给调用方分支处理，不作为 error 抛出
type BusinessError struct {
	ErrCode    string `json:"err_code"`
	ErrCodeDes string `json:"err_code_des"`
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s | %s", e.ErrCode, e.ErrCodeDes)
}

// ValidationError 请求参数在发起网络调用前即不合法
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}
