package wxpay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// BillRecord 对账单明细行，按表头列名取值
type BillRecord map[string]string

// BillSummary 对账单汇总行，金额字段单位为元
type BillSummary struct {
	TotalCount        int64           `json:"total_count"`
	SettlementAmount  decimal.Decimal `json:"settlement_amount"`   // 应结订单总金额
	RefundAmount      decimal.Decimal `json:"refund_amount"`       // 退款总金额
	CouponRefund      decimal.Decimal `json:"coupon_refund"`       // 充值券退款总金额
	HandlingFeeAmount decimal.Decimal `json:"handling_fee_amount"` // 手续费总金额
}

// Bill 解析后的对账单
type Bill struct {
	Columns []string     `json:"columns"`
	Records []BillRecord `json:"records"`
	Summary BillSummary  `json:"summary"`
}

// ParseBill 解析网关对账单文本
// 格式：首行为明细表头，明细行各字段以 ` 前缀防止被表格工具转数字；
// 随后是汇总表头与汇总行
func ParseBill(text string) (*Bill, error) {
	lines := splitBillLines(text)
	if len(lines) < 1 {
		return nil, fmt.Errorf("%w: empty bill", ErrMalformedPayload)
	}

	bill := &Bill{Columns: splitBillFields(lines[0])}

	i := 1
	for ; i < len(lines); i++ {
		fields := splitBillFields(lines[i])
		// 汇总表头：第一列不再是明细数据
		if !strings.HasPrefix(lines[i], "`") {
			break
		}
		if len(fields) != len(bill.Columns) {
			return nil, fmt.Errorf("%w: record field count %d != header %d", ErrMalformedPayload, len(fields), len(bill.Columns))
		}
		rec := BillRecord{}
		for j, col := range bill.Columns {
			rec[col] = fields[j]
		}
		bill.Records = append(bill.Records, rec)
	}

	// 汇总表头 + 汇总行
	if i+1 < len(lines) {
		sum := splitBillFields(lines[i+1])
		if len(sum) >= 5 {
			bill.Summary.TotalCount, _ = strconv.ParseInt(sum[0], 10, 64)
			bill.Summary.SettlementAmount = parseYuan(sum[1])
			bill.Summary.RefundAmount = parseYuan(sum[2])
			bill.Summary.CouponRefund = parseYuan(sum[3])
			bill.Summary.HandlingFeeAmount = parseYuan(sum[4])
		}
	}
	return bill, nil
}

func splitBillLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func splitBillFields(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimPrefix(strings.TrimSpace(p), "`")
	}
	return parts
}

func parseYuan(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
