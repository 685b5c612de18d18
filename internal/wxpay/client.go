package wxpay

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"syscall"
	"time"
)

// 各操作的固定路径
const (
	EndpointUnifiedOrder = "/pay/unifiedorder"
	EndpointOrderQuery   = "/pay/orderquery"
	EndpointRefund       = "/secapi/pay/refund"
	EndpointRefundQuery  = "/pay/refundquery"
	EndpointDownloadBill = "/pay/downloadbill"
)

const defaultTimeout = 10 * time.Second

// Client 网关客户端：签名、编码、单次 HTTPS 调用、验签
// 无内部重试，传输失败由调用方决策
type Client struct {
	cfg        Config
	httpClient *http.Client
	certClient *http.Client // 携带商户证书，退款接口专用
}

// NewClient 创建网关客户端
// 未配置证书时退款接口退化为普通客户端（仅在仿真网关下可用）
func NewClient(cfg Config, timeout time.Duration) (*Client, error) {
	if cfg.AppID == "" || cfg.MchID == "" || cfg.APIKey == "" {
		return nil, &ValidationError{Field: "config", Reason: "appid/mch_id/api_key 不能为空"}
	}
	if cfg.SignType == "" {
		cfg.SignType = SignTypeMD5
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
	c.certClient = c.httpClient
	if cfg.CertFile != "" && cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load merchant cert failed: %w", err)
		}
		c.certClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{Certificates: []tls.Certificate{cert}},
			},
		}
	}
	return c, nil
}

// Config 只读配置
func (c *Client) Config() Config { return c.cfg }

// Send 发送签名报文并返回解码后的响应
// return_code != SUCCESS 返回 ProtocolError；成功响应必须携带合法签名，
// 缺失或不匹配都按验签失败处理。result_code 不在此层判断，由各操作封装处理
func (c *Client) Send(ctx context.Context, endpoint string, params Params) (Params, error) {
	body, err := c.post(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	resp, err := DecodeXML(body)
	if err != nil {
		return nil, err
	}

	if rc := resp.Get("return_code"); rc != ResultSuccess {
		return nil, &ProtocolError{ReturnCode: rc, ReturnMsg: resp.Get("return_msg")}
	}
	if !Verify(resp, c.cfg.APIKey, c.cfg.SignType) {
		return nil, ErrSignatureInvalid
	}
	return resp, nil
}

// SendText 发送签名报文并返回原始文本响应（对账单下载）
// 网关出错时返回XML报文，此处识别并转为对应错误
func (c *Client) SendText(ctx context.Context, endpoint string, params Params) (string, error) {
	body, err := c.post(ctx, endpoint, params)
	if err != nil {
		return "", err
	}

	trimmed := bytes.TrimSpace(body)
	if bytes.HasPrefix(trimmed, []byte("<xml")) {
		resp, derr := DecodeXML(trimmed)
		if derr != nil {
			return "", derr
		}
		if rc := resp.Get("return_code"); rc != ResultSuccess {
			return "", &ProtocolError{ReturnCode: rc, ReturnMsg: resp.Get("return_msg")}
		}
		if resp.Get("result_code") != ResultSuccess {
			return "", &BusinessError{ErrCode: resp.Get("error_code"), ErrCodeDes: resp.Get("return_msg")}
		}
	}
	return string(body), nil
}

func (c *Client) post(ctx context.Context, endpoint string, params Params) ([]byte, error) {
	payload := EncodeXML(params)
	url := strings.TrimRight(c.cfg.GatewayURL, "/") + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("new request error: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	hc := c.httpClient
	if endpoint == EndpointRefund {
		hc = c.certClient
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProtocolError{
			ReturnCode: ResultFail,
			ReturnMsg:  fmt.Sprintf("bad status code: %d", resp.StatusCode),
		}
	}
	return body, nil
}

// classifyTransportError 网络错误归类为超时/拒连/TLS三类
func classifyTransportError(err error) *TransportError {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &TransportError{Kind: TransportTimeout, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return &TransportError{Kind: TransportTimeout, Err: err}
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return &TransportError{Kind: TransportConnectionRefused, Err: err}
	}
	var certErr *tls.CertificateVerificationError
	var hostErr x509.HostnameError
	var unkErr x509.UnknownAuthorityError
	var recErr tls.RecordHeaderError
	if errors.As(err, &certErr) || errors.As(err, &hostErr) || errors.As(err, &unkErr) || errors.As(err, &recErr) {
		return &TransportError{Kind: TransportTLSError, Err: err}
	}
	if strings.Contains(err.Error(), "tls:") || strings.Contains(err.Error(), "x509:") {
		return &TransportError{Kind: TransportTLSError, Err: err}
	}
	return &TransportError{Kind: TransportConnectionRefused, Err: err}
}
