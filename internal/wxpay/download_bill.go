package wxpay

import (
	"context"
	"time"
)

// DownloadBill 下载对账单
// billDate 格式 yyyyMMdd；billType 为空时默认 ALL
// 网关只保留三个月内的账单，过旧日期由网关拒绝，此处不做预校验
func (c *Client) DownloadBill(ctx context.Context, billDate string, billType BillType) (string, error) {
	if _, err := time.Parse("20060102", billDate); err != nil {
		return "", &ValidationError{Field: "bill_date", Reason: "格式须为 yyyyMMdd"}
	}
	switch billType {
	case "":
		billType = BillTypeAll
	case BillTypeAll, BillTypeSuccess, BillTypeRefund, BillTypeRevoked:
	default:
		return "", &ValidationError{Field: "bill_type", Reason: "不支持的账单类型 " + string(billType)}
	}

	p := c.newRequest()
	p.Set("bill_date", billDate)
	p.Set("bill_type", string(billType))

	return c.SendText(ctx, EndpointDownloadBill, c.signed(p))
}
