package wxpay

import (
	"crypto/rand"
	"encoding/hex"
)

// Config 网关客户端配置，显式传入，不依赖全局状态
type Config struct {
	AppID      string
	MchID      string
	APIKey     string
	SignType   SignType
	NotifyURL  string
	GatewayURL string // 例如 https://api.mch.weixin.qq.com
	CertFile   string // 退款接口要求的商户证书
	KeyFile    string
}

// NonceStr 生成 32 位随机字符串，参与签名以降低重放可预测性
func NonceStr() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// newRequest 公共请求字段：appid + mch_id + nonce_str（HMAC 方式额外带 sign_type）
func (c *Client) newRequest() Params {
	p := Params{
		"appid":     c.cfg.AppID,
		"mch_id":    c.cfg.MchID,
		"nonce_str": NonceStr(),
	}
	if c.cfg.SignType == SignTypeHMACSHA256 {
		p.Set("sign_type", string(SignTypeHMACSHA256))
	}
	return p
}

// signed 计算并写入 sign 字段，签名永远最后生成
func (c *Client) signed(p Params) Params {
	p.Set("sign", Sign(p, c.cfg.APIKey, c.cfg.SignType))
	return p
}
