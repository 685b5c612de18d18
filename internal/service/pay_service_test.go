package service

import (
	"errors"
	"testing"

	"wxpay-gateway-api/internal/constant"
	ordermodel "wxpay-gateway-api/internal/model/order"
	"wxpay-gateway-api/internal/wxpay"
)

func TestPrepayIDOf(t *testing.T) {
	_, err := prepayIDOf(nil)
	var cErr constant.Error
	if !errors.As(err, &cErr) || cErr.Code() != constant.CodeOrderNotFound {
		t.Errorf("nil order: err = %v, want CodeOrderNotFound", err)
	}

	_, err = prepayIDOf(&ordermodel.PaymentOrder{OutTradeNo: "P1"})
	if !errors.As(err, &cErr) || cErr.Code() != constant.CodePrepayMissing {
		t.Errorf("missing prepay_id: err = %v, want CodePrepayMissing", err)
	}

	prepayID := "wx20260829pp001"
	got, err := prepayIDOf(&ordermodel.PaymentOrder{OutTradeNo: "P1", PrepayID: &prepayID})
	if err != nil || got != prepayID {
		t.Errorf("prepayIDOf = %q, %v", got, err)
	}
}

func TestRefundStatusText(t *testing.T) {
	cases := []struct {
		status int8
		want   string
	}{
		{ordermodel.RefundStatusApplied, wxpay.RefundStateProcessing},
		{ordermodel.RefundStatusProcessing, wxpay.RefundStateProcessing},
		{ordermodel.RefundStatusSuccess, wxpay.RefundStateSuccess},
		{ordermodel.RefundStatusFail, wxpay.RefundStateChange},
	}
	for _, tc := range cases {
		if got := refundStatusText(tc.status); got != tc.want {
			t.Errorf("refundStatusText(%d) = %s, want %s", tc.status, got, tc.want)
		}
	}
}
