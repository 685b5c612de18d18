package wxpay

import (
	"strings"
	"testing"
)

func TestSignKnownValue(t *testing.T) {
	p := Params{
		"appid":     "wx2421b1c4370ec43b",
		"mch_id":    "10000100",
		"nonce_str": "abc",
	}
	got := Sign(p, "testkey", SignTypeMD5)
	want := strings.ToUpper("5aa66c2e9fe21b6c6dbb3ec2fd960ad9")
	if got != want {
		t.Errorf("Sign = %s, want %s", got, want)
	}
}

func TestSignDeterministicAndOrderIndependent(t *testing.T) {
	a := Params{"b": "2", "a": "1", "c": "3"}
	b := Params{"c": "3", "a": "1", "b": "2"}
	s1 := Sign(a, "k", SignTypeMD5)
	s2 := Sign(b, "k", SignTypeMD5)
	if s1 != s2 {
		t.Errorf("sign depends on map order: %s != %s", s1, s2)
	}
	if s1 != Sign(a, "k", SignTypeMD5) {
		t.Error("sign not deterministic")
	}
}

func TestSignSkipsSignFieldAndEmptyValues(t *testing.T) {
	base := Params{"a": "1", "b": "2"}
	extended := Params{"a": "1", "b": "2", "sign": "FFFF", "empty": "", "blank": "  "}
	if Sign(base, "k", SignTypeMD5) != Sign(extended, "k", SignTypeMD5) {
		t.Error("sign/empty fields must not affect signature")
	}
}

func TestSignEmptyFieldSet(t *testing.T) {
	// 无可签名字段时仍对 key=密钥 签名，网关协议如此约定
	got := Sign(Params{}, "testkey", SignTypeMD5)
	want := strings.ToUpper("cc0d96290ace0cd08b95d4621c62185a")
	if got != want {
		t.Errorf("Sign(empty) = %s, want %s", got, want)
	}
}

func TestSignHMACSHA256DiffersFromMD5(t *testing.T) {
	p := Params{"a": "1"}
	md5Sig := Sign(p, "k", SignTypeMD5)
	hmacSig := Sign(p, "k", SignTypeHMACSHA256)
	if md5Sig == hmacSig {
		t.Error("HMAC-SHA256 and MD5 must differ")
	}
	if len(hmacSig) != 64 {
		t.Errorf("HMAC-SHA256 hex length = %d, want 64", len(hmacSig))
	}
}

func TestVerify(t *testing.T) {
	p := Params{"transaction_id": "T1", "out_trade_no": "P1", "total_fee": "100"}
	p.Set("sign", Sign(p, "secret", SignTypeMD5))
	if !Verify(p, "secret", SignTypeMD5) {
		t.Fatal("valid signature rejected")
	}

	// 签名后篡改任一字段必须验签失败
	tampered := p.Clone()
	tampered.Set("total_fee", "1")
	if Verify(tampered, "secret", SignTypeMD5) {
		t.Error("tampered payload passed verify")
	}

	// 密钥不符
	if Verify(p, "other", SignTypeMD5) {
		t.Error("wrong key passed verify")
	}

	// 缺失签名
	missing := Params{"a": "1"}
	if Verify(missing, "secret", SignTypeMD5) {
		t.Error("missing sign passed verify")
	}
}

func TestVerifyLowercaseSignAccepted(t *testing.T) {
	p := Params{"a": "1"}
	p.Set("sign", strings.ToLower(Sign(p, "k", SignTypeMD5)))
	if !Verify(p, "k", SignTypeMD5) {
		t.Error("lowercase signature should verify")
	}
}
