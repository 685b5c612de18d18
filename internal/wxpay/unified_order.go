package wxpay

import (
	"context"
	"strconv"
)

// UnifiedOrderReq 统一下单请求
type UnifiedOrderReq struct {
	Body           string    // 商品描述
	OutTradeNo     string    // 商户订单号
	TotalFee       int64     // 订单总金额，单位为分
	SpbillCreateIP string    // 终端IP
	TradeType      TradeType // 交易类型
	OpenID         string    // JSAPI/H5 必填
	ProductID      string    // NATIVE 扫码支付的商品ID
	Attach         string    // 附加数据，原样返回
}

// UnifiedOrderResp 统一下单结果
// Business 非空表示网关业务层失败（result_code != SUCCESS），由调用方分支处理
type UnifiedOrderResp struct {
	PrepayID string
	CodeURL  string // NATIVE 交易的二维码链接
	MWebURL  string // H5 交易的跳转链接
	Business *BusinessError
	Raw      Params
}

// UnifiedOrder 统一下单
// 在网关侧生成预支付交易单，按交易类型返回 prepay_id / code_url / mweb_url
func (c *Client) UnifiedOrder(ctx context.Context, req UnifiedOrderReq) (*UnifiedOrderResp, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	p := c.newRequest()
	p.Set("body", req.Body)
	p.Set("out_trade_no", req.OutTradeNo)
	p.Set("total_fee", strconv.FormatInt(req.TotalFee, 10))
	p.Set("spbill_create_ip", req.SpbillCreateIP)
	p.Set("notify_url", c.cfg.NotifyURL)
	p.Set("trade_type", string(req.TradeType))
	if req.OpenID != "" {
		p.Set("openid", req.OpenID)
	}
	if req.ProductID != "" {
		p.Set("product_id", req.ProductID)
	}
	if req.Attach != "" {
		p.Set("attach", req.Attach)
	}

	resp, err := c.Send(ctx, EndpointUnifiedOrder, c.signed(p))
	if err != nil {
		return nil, err
	}

	out := &UnifiedOrderResp{Raw: resp}
	if biz := businessResult(resp); biz != nil {
		out.Business = biz
		return out, nil
	}
	out.PrepayID = resp.Get("prepay_id")
	out.CodeURL = resp.Get("code_url")
	out.MWebURL = resp.Get("mweb_url")
	return out, nil
}

func (r UnifiedOrderReq) validate() error {
	if r.Body == "" {
		return &ValidationError{Field: "body", Reason: "必填"}
	}
	if r.OutTradeNo == "" {
		return &ValidationError{Field: "out_trade_no", Reason: "必填"}
	}
	if r.TotalFee <= 0 {
		return &ValidationError{Field: "total_fee", Reason: "必须为正整数（分）"}
	}
	switch r.TradeType {
	case TradeTypeNative, TradeTypeApp:
	case TradeTypeJSAPI, TradeTypeMWeb:
		// JSAPI 与 H5 缺少 openid 直接拒绝，不做静默忽略
		if r.OpenID == "" {
			return &ValidationError{Field: "openid", Reason: "交易类型 " + string(r.TradeType) + " 必填"}
		}
	default:
		return &ValidationError{Field: "trade_type", Reason: "不支持的交易类型 " + string(r.TradeType)}
	}
	return nil
}

// businessResult result_code != SUCCESS 时构造业务错误值
func businessResult(resp Params) *BusinessError {
	if resp.Get("result_code") == ResultSuccess {
		return nil
	}
	return &BusinessError{
		ErrCode:    resp.Get("err_code"),
		ErrCodeDes: resp.Get("err_code_des"),
	}
}
