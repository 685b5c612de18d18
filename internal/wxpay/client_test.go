package wxpay

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testAPIKey = "192006250b4c09247ec02edce69f6a2d"

func testConfig(gatewayURL string) Config {
	return Config{
		AppID:      "wx2421b1c4370ec43b",
		MchID:      "10000100",
		APIKey:     testAPIKey,
		SignType:   SignTypeMD5,
		NotifyURL:  "https://merchant.example.com/notify",
		GatewayURL: gatewayURL,
	}
}

// newTestGateway 启动仿真网关：校验请求签名后按 respond 返回签名报文
// 每次请求把解码后的请求参数写入 captured
func newTestGateway(t *testing.T, captured *Params, respond func(req Params) Params) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request: %v", err)
			return
		}
		req, err := DecodeXML(body)
		if err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if !Verify(req, testAPIKey, SignTypeMD5) {
			t.Error("request signature invalid")
		}
		if captured != nil {
			*captured = req
		}
		resp := respond(req)
		if resp.Get("sign") == "" {
			resp.Set("sign", Sign(resp, testAPIKey, SignTypeMD5))
		}
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write(EncodeXML(resp))
	}))
}

func newTestClient(t *testing.T, gatewayURL string) *Client {
	t.Helper()
	c, err := NewClient(testConfig(gatewayURL), 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientRejectsIncompleteConfig(t *testing.T) {
	cfg := testConfig("https://example.com")
	cfg.APIKey = ""
	if _, err := NewClient(cfg, 0); err == nil {
		t.Fatal("expected error for missing api_key")
	}
}

func TestUnifiedOrderNative(t *testing.T) {
	var captured Params
	srv := newTestGateway(t, &captured, func(req Params) Params {
		return Params{
			"return_code": "SUCCESS",
			"result_code": "SUCCESS",
			"appid":       req.Get("appid"),
			"mch_id":      req.Get("mch_id"),
			"nonce_str":   "srvnonce",
			"trade_type":  "NATIVE",
			"prepay_id":   "wx20260829pp001",
			"code_url":    "weixin://wxpay/bizpayurl?pr=abc",
		}
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	resp, err := c.UnifiedOrder(context.Background(), UnifiedOrderReq{
		Body:           "测试商品",
		OutTradeNo:     "P20260829001",
		TotalFee:       100,
		SpbillCreateIP: "127.0.0.1",
		TradeType:      TradeTypeNative,
	})
	if err != nil {
		t.Fatalf("UnifiedOrder: %v", err)
	}
	if resp.Business != nil {
		t.Fatalf("unexpected business error: %v", resp.Business)
	}
	if resp.PrepayID != "wx20260829pp001" || resp.CodeURL == "" {
		t.Errorf("resp = %+v", resp)
	}

	// 公共字段与回调地址必须随请求上送
	if captured.Get("appid") != "wx2421b1c4370ec43b" ||
		captured.Get("mch_id") != "10000100" ||
		captured.Get("nonce_str") == "" ||
		captured.Get("notify_url") != "https://merchant.example.com/notify" {
		t.Errorf("request params = %v", captured)
	}
}

func TestUnifiedOrderBusinessErrorAsValue(t *testing.T) {
	srv := newTestGateway(t, nil, func(req Params) Params {
		return Params{
			"return_code":  "SUCCESS",
			"result_code":  "FAIL",
			"err_code":     "ORDERPAID",
			"err_code_des": "商户订单已支付",
		}
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	resp, err := c.UnifiedOrder(context.Background(), UnifiedOrderReq{
		Body: "x", OutTradeNo: "P1", TotalFee: 100, TradeType: TradeTypeNative,
	})
	if err != nil {
		t.Fatalf("business failure must not surface as error: %v", err)
	}
	if resp.Business == nil || resp.Business.ErrCode != "ORDERPAID" {
		t.Errorf("Business = %+v", resp.Business)
	}
}

func TestSendProtocolError(t *testing.T) {
	srv := newTestGateway(t, nil, func(req Params) Params {
		return Params{"return_code": "FAIL", "return_msg": "签名错误"}
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.UnifiedOrder(context.Background(), UnifiedOrderReq{
		Body: "x", OutTradeNo: "P1", TotalFee: 100, TradeType: TradeTypeNative,
	})
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want ProtocolError", err)
	}
	if perr.ReturnCode != "FAIL" || perr.ReturnMsg != "签名错误" {
		t.Errorf("ProtocolError = %+v", perr)
	}
}

func TestSendRejectsBadResponseSign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := Params{
			"return_code": "SUCCESS",
			"result_code": "SUCCESS",
			"prepay_id":   "pp1",
			"sign":        "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF",
		}
		_, _ = w.Write(EncodeXML(resp))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.UnifiedOrder(context.Background(), UnifiedOrderReq{
		Body: "x", OutTradeNo: "P1", TotalFee: 100, TradeType: TradeTypeNative,
	})
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("err = %v, want ErrSignatureInvalid", err)
	}
}

func TestSendRejectsUnsignedSuccessResponse(t *testing.T) {
	// 成功响应剥掉 sign 字段同样按验签失败处理
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := Params{
			"return_code": "SUCCESS",
			"result_code": "SUCCESS",
			"prepay_id":   "pp1",
		}
		_, _ = w.Write(EncodeXML(resp))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.UnifiedOrder(context.Background(), UnifiedOrderReq{
		Body: "x", OutTradeNo: "P1", TotalFee: 100, TradeType: TradeTypeNative,
	})
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("err = %v, want ErrSignatureInvalid", err)
	}
}

func TestSendMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<xml><return_code>SUCCESS"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.OrderQuery(context.Background(), "T1", "")
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("err = %v, want ErrMalformedPayload", err)
	}
}

func TestSendTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c, err := NewClient(testConfig(srv.URL), 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.OrderQuery(context.Background(), "T1", "")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want TransportError", err)
	}
	if terr.Kind != TransportTimeout {
		t.Errorf("Kind = %s, want %s", terr.Kind, TransportTimeout)
	}
}

func TestSendConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url)
	_, err := c.OrderQuery(context.Background(), "T1", "")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want TransportError", err)
	}
	if terr.Kind != TransportConnectionRefused {
		t.Errorf("Kind = %s, want %s", terr.Kind, TransportConnectionRefused)
	}
}

func TestSendBadStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.OrderQuery(context.Background(), "T1", "")
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want ProtocolError", err)
	}
}
