package wxpay

import (
	"context"
	"errors"
	"testing"
)

func TestUnifiedOrderValidation(t *testing.T) {
	c := newTestClient(t, "http://gateway.invalid")
	base := UnifiedOrderReq{
		Body:       "测试商品",
		OutTradeNo: "P20260829001",
		TotalFee:   100,
		TradeType:  TradeTypeNative,
	}

	cases := []struct {
		name   string
		mutate func(*UnifiedOrderReq)
		field  string
	}{
		{"missing body", func(r *UnifiedOrderReq) { r.Body = "" }, "body"},
		{"missing out_trade_no", func(r *UnifiedOrderReq) { r.OutTradeNo = "" }, "out_trade_no"},
		{"zero total_fee", func(r *UnifiedOrderReq) { r.TotalFee = 0 }, "total_fee"},
		{"negative total_fee", func(r *UnifiedOrderReq) { r.TotalFee = -1 }, "total_fee"},
		{"jsapi without openid", func(r *UnifiedOrderReq) { r.TradeType = TradeTypeJSAPI }, "openid"},
		{"mweb without openid", func(r *UnifiedOrderReq) { r.TradeType = TradeTypeMWeb }, "openid"},
		{"unknown trade_type", func(r *UnifiedOrderReq) { r.TradeType = "WAP" }, "trade_type"},
	}
	for _, tc := range cases {
		req := base
		tc.mutate(&req)
		_, err := c.UnifiedOrder(context.Background(), req)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: err = %v, want ValidationError", tc.name, err)
			continue
		}
		if verr.Field != tc.field {
			t.Errorf("%s: field = %s, want %s", tc.name, verr.Field, tc.field)
		}
	}
}

func TestUnifiedOrderJSAPIWithOpenID(t *testing.T) {
	var captured Params
	srv := newTestGateway(t, &captured, func(req Params) Params {
		return Params{"return_code": "SUCCESS", "result_code": "SUCCESS", "prepay_id": "pp1"}
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.UnifiedOrder(context.Background(), UnifiedOrderReq{
		Body:       "x",
		OutTradeNo: "P1",
		TotalFee:   100,
		TradeType:  TradeTypeJSAPI,
		OpenID:     "oUpF8uMuAJO_M2pxb1Q9zNjWeS6o",
	})
	if err != nil {
		t.Fatalf("UnifiedOrder: %v", err)
	}
	if captured.Get("openid") != "oUpF8uMuAJO_M2pxb1Q9zNjWeS6o" {
		t.Errorf("openid not sent: %v", captured)
	}
	if captured.Get("trade_type") != "JSAPI" {
		t.Errorf("trade_type = %s", captured.Get("trade_type"))
	}
}
