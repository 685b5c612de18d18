package wxpay

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

const sampleBill = `交易时间,公众账号ID,商户号,子商户号,设备号,微信订单号,商户订单号,用户标识,交易类型,交易状态,付款银行,货币种类,总金额,企业红包金额,商户数据包,手续费,费率
` + "`" + `2026-08-29 10:00:00,` + "`" + `wx2421b1c4370ec43b,` + "`" + `10000100,` + "`" + `0,` + "`" + `1000,` + "`" + `4200001234,` + "`" + `P20260829001,` + "`" + `oUpF8uX,` + "`" + `NATIVE,` + "`" + `SUCCESS,` + "`" + `CFT,` + "`" + `CNY,` + "`" + `1.00,` + "`" + `0.00,` + "`" + `attach,` + "`" + `0.01,` + "`" + `1.00%
` + "`" + `2026-08-29 11:00:00,` + "`" + `wx2421b1c4370ec43b,` + "`" + `10000100,` + "`" + `0,` + "`" + `1000,` + "`" + `4200001235,` + "`" + `P20260829002,` + "`" + `oUpF8uY,` + "`" + `JSAPI,` + "`" + `SUCCESS,` + "`" + `OTHERS,` + "`" + `CNY,` + "`" + `2.50,` + "`" + `0.00,` + "`" + `attach,` + "`" + `0.02,` + "`" + `1.00%
总交易单数,应结订单总金额,退款总金额,充值券退款总金额,手续费总金额
` + "`" + `2,` + "`" + `3.50,` + "`" + `0.00,` + "`" + `0.00,` + "`" + `0.03
`

func TestParseBill(t *testing.T) {
	bill, err := ParseBill(sampleBill)
	if err != nil {
		t.Fatalf("ParseBill: %v", err)
	}
	if len(bill.Columns) != 17 {
		t.Fatalf("column count = %d, want 17", len(bill.Columns))
	}
	if len(bill.Records) != 2 {
		t.Fatalf("record count = %d, want 2", len(bill.Records))
	}

	r := bill.Records[0]
	if r["微信订单号"] != "4200001234" || r["商户订单号"] != "P20260829001" || r["总金额"] != "1.00" {
		t.Errorf("record = %v", r)
	}

	if bill.Summary.TotalCount != 2 {
		t.Errorf("TotalCount = %d", bill.Summary.TotalCount)
	}
	if !bill.Summary.SettlementAmount.Equal(decimal.RequireFromString("3.50")) {
		t.Errorf("SettlementAmount = %s", bill.Summary.SettlementAmount)
	}
	if !bill.Summary.HandlingFeeAmount.Equal(decimal.RequireFromString("0.03")) {
		t.Errorf("HandlingFeeAmount = %s", bill.Summary.HandlingFeeAmount)
	}
}

func TestParseBillFieldCountMismatch(t *testing.T) {
	broken := "a,b,c\n`1,`2\n"
	if _, err := ParseBill(broken); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("err = %v, want ErrMalformedPayload", err)
	}
}

func TestParseBillEmpty(t *testing.T) {
	if _, err := ParseBill(""); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("err = %v, want ErrMalformedPayload", err)
	}
}
