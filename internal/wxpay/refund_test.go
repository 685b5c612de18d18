package wxpay

import (
	"context"
	"errors"
	"testing"
)

func TestRefundValidation(t *testing.T) {
	c := newTestClient(t, "http://gateway.invalid")
	base := RefundReq{
		TransactionID: "4200001234",
		OutRefundNo:   "R20260829001",
		TotalFee:      100,
		RefundFee:     50,
	}

	// 退款金额超过订单金额在本地即拒绝，不发起网络调用
	over := base
	over.RefundFee = 101
	if _, err := c.Refund(context.Background(), over); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("err = %v, want ErrInvalidAmount", err)
	}

	cases := []struct {
		name   string
		mutate func(*RefundReq)
	}{
		{"no identity", func(r *RefundReq) { r.TransactionID = ""; r.OutTradeNo = "" }},
		{"missing out_refund_no", func(r *RefundReq) { r.OutRefundNo = "" }},
		{"malformed out_refund_no", func(r *RefundReq) { r.OutRefundNo = "R#1" }},
		{"zero total_fee", func(r *RefundReq) { r.TotalFee = 0 }},
		{"zero refund_fee", func(r *RefundReq) { r.RefundFee = 0 }},
	}
	for _, tc := range cases {
		req := base
		tc.mutate(&req)
		_, err := c.Refund(context.Background(), req)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: err = %v, want ValidationError", tc.name, err)
		}
	}
}

func TestRefundFullAmountAllowed(t *testing.T) {
	srv := newTestGateway(t, nil, func(req Params) Params {
		return Params{
			"return_code":   "SUCCESS",
			"result_code":   "SUCCESS",
			"refund_id":     "50000001",
			"out_refund_no": req.Get("out_refund_no"),
			"refund_fee":    req.Get("refund_fee"),
		}
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	res, err := c.Refund(context.Background(), RefundReq{
		TransactionID: "4200001234",
		OutRefundNo:   "R1",
		TotalFee:      100,
		RefundFee:     100,
	})
	if err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if res.RefundID != "50000001" || res.RefundFee != 100 {
		t.Errorf("result = %+v", res)
	}
}

func TestRefundDuplicateSurfacedAsBusiness(t *testing.T) {
	srv := newTestGateway(t, nil, func(req Params) Params {
		return Params{
			"return_code":  "SUCCESS",
			"result_code":  "FAIL",
			"err_code":     "ERROR",
			"err_code_des": "订单已全额退款",
		}
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	res, err := c.Refund(context.Background(), RefundReq{
		TransactionID: "4200001234",
		OutRefundNo:   "R1",
		TotalFee:      100,
		RefundFee:     100,
	})
	if err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if res.Business == nil {
		t.Fatal("business failure must be surfaced, not swallowed")
	}
}
