package wxpay

import (
	"strconv"
	"time"
)

// AppPayParams APP 端调起支付所需参数，二次签名后下发给客户端
type AppPayParams struct {
	AppID     string `json:"appid"`
	PartnerID string `json:"partnerid"`
	PrepayID  string `json:"prepayid"`
	Package   string `json:"package"`
	NonceStr  string `json:"noncestr"`
	Timestamp string `json:"timestamp"`
	Sign      string `json:"sign"`
}

// JSAPIPayParams 公众号/H5 调起支付所需参数
type JSAPIPayParams struct {
	AppID     string `json:"appId"`
	Timestamp string `json:"timeStamp"`
	NonceStr  string `json:"nonceStr"`
	Package   string `json:"package"`
	SignType  string `json:"signType"`
	PaySign   string `json:"paySign"`
}

// AppPayParams 由 prepay_id 组装 APP 调起支付参数
func (c *Client) AppPayParams(prepayID string) AppPayParams {
	p := AppPayParams{
		AppID:     c.cfg.AppID,
		PartnerID: c.cfg.MchID,
		PrepayID:  prepayID,
		Package:   "Sign=WXPay",
		NonceStr:  NonceStr(),
		Timestamp: strconv.FormatInt(time.Now().Unix(), 10),
	}
	p.Sign = Sign(Params{
		"appid":     p.AppID,
		"partnerid": p.PartnerID,
		"prepayid":  p.PrepayID,
		"package":   p.Package,
		"noncestr":  p.NonceStr,
		"timestamp": p.Timestamp,
	}, c.cfg.APIKey, c.cfg.SignType)
	return p
}

// JSAPIPayParams 由 prepay_id 组装 JSAPI 调起支付参数
func (c *Client) JSAPIPayParams(prepayID string) JSAPIPayParams {
	signType := c.cfg.SignType
	if signType == "" {
		signType = SignTypeMD5
	}
	p := JSAPIPayParams{
		AppID:     c.cfg.AppID,
		Timestamp: strconv.FormatInt(time.Now().Unix(), 10),
		NonceStr:  NonceStr(),
		Package:   "prepay_id=" + prepayID,
		SignType:  string(signType),
	}
	p.PaySign = Sign(Params{
		"appId":     p.AppID,
		"timeStamp": p.Timestamp,
		"nonceStr":  p.NonceStr,
		"package":   p.Package,
		"signType":  p.SignType,
	}, c.cfg.APIKey, signType)
	return p
}
