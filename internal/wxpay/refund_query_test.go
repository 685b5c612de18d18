package wxpay

import (
	"context"
	"errors"
	"testing"
)

func TestRefundQueryRequiresIdentity(t *testing.T) {
	c := newTestClient(t, "http://gateway.invalid")
	_, err := c.RefundQuery(context.Background(), "", "", "", "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestRefundQueryIdentityPrecedence(t *testing.T) {
	var captured Params
	srv := newTestGateway(t, &captured, func(req Params) Params {
		return Params{"return_code": "SUCCESS", "result_code": "SUCCESS"}
	})
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	cases := []struct {
		name string
		args [4]string // refund_id, out_refund_no, transaction_id, out_trade_no
		sent string
	}{
		{"refund_id wins", [4]string{"RID", "RNO", "TID", "PNO"}, "refund_id"},
		{"out_refund_no next", [4]string{"", "RNO", "TID", "PNO"}, "out_refund_no"},
		{"transaction_id next", [4]string{"", "", "TID", "PNO"}, "transaction_id"},
		{"out_trade_no last", [4]string{"", "", "", "PNO"}, "out_trade_no"},
	}
	identityFields := []string{"refund_id", "out_refund_no", "transaction_id", "out_trade_no"}
	for _, tc := range cases {
		captured = nil
		_, err := c.RefundQuery(context.Background(), tc.args[0], tc.args[1], tc.args[2], tc.args[3])
		if err != nil {
			t.Fatalf("%s: RefundQuery: %v", tc.name, err)
		}
		for _, f := range identityFields {
			got := captured.Get(f)
			if f == tc.sent && got == "" {
				t.Errorf("%s: %s not sent", tc.name, f)
			}
			if f != tc.sent && got != "" {
				t.Errorf("%s: %s must be omitted, got %s", tc.name, f, got)
			}
		}
	}
}

func TestRefundQueryReadsIndexedFields(t *testing.T) {
	srv := newTestGateway(t, nil, func(req Params) Params {
		return Params{
			"return_code":     "SUCCESS",
			"result_code":     "SUCCESS",
			"refund_count":    "1",
			"refund_id_0":     "50000001",
			"out_refund_no_0": "R1",
			"refund_status_0": RefundStateSuccess,
			"refund_fee_0":    "100",
		}
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	st, err := c.RefundQuery(context.Background(), "50000001", "", "", "")
	if err != nil {
		t.Fatalf("RefundQuery: %v", err)
	}
	if st.RefundID != "50000001" || st.OutRefundNo != "R1" ||
		st.RefundStatus != RefundStateSuccess || st.RefundFee != 100 {
		t.Errorf("status = %+v", st)
	}
}
