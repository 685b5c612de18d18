package wxpay

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// SignType 网关签名算法
type SignType string

const (
	SignTypeMD5        SignType = "MD5"
	SignTypeHMACSHA256 SignType = "HMAC-SHA256"
)

// Sign 生成签名（用于请求或验证）
// 规则：剔除 sign 字段与空值字段，按字段名 ASCII 排序拼接 k=v&...&key=密钥，
// 摘要后转大写十六进制。字段全为空时仍对 key=密钥 单独签名（网关协议如此约定）
func Sign(params Params, secretKey string, signType SignType) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if k == "sign" || strings.TrimSpace(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(params[k])
		sb.WriteString("&")
	}
	sb.WriteString("key=")
	sb.WriteString(secretKey)

	var sum []byte
	switch signType {
	case SignTypeHMACSHA256:
		mac := hmac.New(sha256.New, []byte(secretKey))
		mac.Write([]byte(sb.String()))
		sum = mac.Sum(nil)
	default:
		h := md5.Sum([]byte(sb.String()))
		sum = h[:]
	}
	return strings.ToUpper(hex.EncodeToString(sum))
}

// Verify 验证签名是否匹配，常量时间比较
func Verify(params Params, secretKey string, signType SignType) bool {
	receivedSign := params.Get("sign")
	if receivedSign == "" {
		return false
	}
	expectedSign := Sign(params, secretKey, signType)
	return hmac.Equal([]byte(strings.ToUpper(receivedSign)), []byte(expectedSign))
}
