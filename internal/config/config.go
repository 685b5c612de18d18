package config

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SecurityCfg struct {
	HMACSecret string `mapstructure:"hmacSecret"`
}

// WxpayCfg 网关接入配置：商户凭据、签名方式、回调地址与证书
type WxpayCfg struct {
	AppID      string        `mapstructure:"appId"`
	MchID      string        `mapstructure:"mchId"`
	APIKey     string        `mapstructure:"apiKey"`
	SignType   string        `mapstructure:"signType"` // MD5 | HMAC-SHA256
	GatewayURL string        `mapstructure:"gatewayUrl"`
	NotifyURL  string        `mapstructure:"notifyUrl"`
	CertFile   string        `mapstructure:"certFile"` // 退款接口商户证书
	KeyFile    string        `mapstructure:"keyFile"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// NotifyCfg 通知幂等存储选择
type NotifyCfg struct {
	Store string `mapstructure:"store"` // memory | redis | mysql
}

// ReconcileCfg 对账补单配置
type ReconcileCfg struct {
	Enabled       bool          `mapstructure:"enabled"`
	Interval      time.Duration `mapstructure:"interval"`
	GraceAge      time.Duration `mapstructure:"graceAge"` // 下单后多久仍未支付才参与补单
	BatchSize     int           `mapstructure:"batchSize"`
	RetryTimes    int           `mapstructure:"retryTimes"`
	RetryInterval time.Duration `mapstructure:"retryInterval"`
}

type Root struct {
	Server    ServerCfg    `mapstructure:"server"`
	MysqlMain MysqlCfg     `mapstructure:"mysql_main"`
	RabbitMQ  RabbitCfg    `mapstructure:"rabbitmq"`
	Redis     RedisCfg     `mapstructure:"redis"`
	Security  SecurityCfg  `mapstructure:"security"`
	Wxpay     WxpayCfg     `mapstructure:"wxpay"`
	Notify    NotifyCfg    `mapstructure:"notify"`
	Reconcile ReconcileCfg `mapstructure:"reconcile"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if C.Wxpay.GatewayURL == "" {
		C.Wxpay.GatewayURL = "https://api.mch.weixin.qq.com"
	}
	if C.Wxpay.SignType == "" {
		C.Wxpay.SignType = "MD5"
	}
	if C.Wxpay.Timeout <= 0 {
		C.Wxpay.Timeout = 10 * time.Second
	}
	if C.Notify.Store == "" {
		C.Notify.Store = "memory"
	}
	if C.Reconcile.Interval <= 0 {
		C.Reconcile.Interval = 5 * time.Minute
	}
	if C.Reconcile.GraceAge <= 0 {
		C.Reconcile.GraceAge = 10 * time.Minute
	}
	if C.Reconcile.BatchSize <= 0 {
		C.Reconcile.BatchSize = 100
	}
	if C.Reconcile.RetryTimes <= 0 {
		C.Reconcile.RetryTimes = 3
	}
	if C.Reconcile.RetryInterval <= 0 {
		C.Reconcile.RetryInterval = 2 * time.Second
	}
}
