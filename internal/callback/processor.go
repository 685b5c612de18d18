package callback

import (
	"context"

	"github.com/sirupsen/logrus"

	"wxpay-gateway-api/internal/wxpay"
)

// ConfirmedHook 业务状态迁移扩展点，每个业务单号至多调用一次
// 由上层应用实现（本仓库默认实现：更新订单并投递 MQ 事件）
type ConfirmedHook func(ctx context.Context, bizID string, payload wxpay.Params) error

// Processor 异步通知处理器
// 网关按 15/15/30/180/1800×4/3600 秒的节奏最多重发约8次，同一通知
// 必然重复到达；幂等依靠 NotificationStore 的原子置位 + 单号级互斥
type Processor struct {
	apiKey      string
	signType    wxpay.SignType
	store       NotificationStore
	onConfirmed ConfirmedHook
	keyMu       *keyedMutex
	log         *logrus.Logger
}

func NewProcessor(apiKey string, signType wxpay.SignType, store NotificationStore, hook ConfirmedHook, log *logrus.Logger) *Processor {
	if signType == "" {
		signType = wxpay.SignTypeMD5
	}
	return &Processor{
		apiKey:      apiKey,
		signType:    signType,
		store:       store,
		onConfirmed: hook,
		keyMu:       newKeyedMutex(),
		log:         log,
	}
}

// Handle 处理一次入站通知，永远返回合法的应答XML
// 非 SUCCESS 应答（或超时）会触发网关按既定节奏重发
func (p *Processor) Handle(ctx context.Context, rawBody []byte) string {
	payload, err := wxpay.DecodeXML(rawBody)
	if err != nil {
		p.log.WithError(err).Warn("回调报文解析失败")
		return ack(wxpay.ResultFail, "Malformed")
	}

	// 验签失败视为假通知：不落状态、不执行业务
	if !wxpay.Verify(payload, p.apiKey, p.signType) {
		p.log.WithField("out_trade_no", payload.Get("out_trade_no")).Warn("回调验签失败")
		return ack(wxpay.ResultFail, "Sign Fail")
	}

	bizID := businessIdentity(payload)
	if bizID == "" {
		p.log.Warn("回调缺少业务单号")
		return ack(wxpay.ResultFail, "Lack Params")
	}

	first, err := p.Confirm(ctx, bizID, payload)
	if err != nil && !first {
		// 存储不可用时应答 FAIL，等网关重发
		p.log.WithError(err).WithField("biz_id", bizID).Error("幂等存储写入失败")
		return ack(wxpay.ResultFail, "Server Error")
	}
	if err != nil {
		// 钩子失败不回滚状态：补偿交给对账（主动查单）路径
		p.log.WithError(err).WithField("biz_id", bizID).Error("业务钩子执行失败")
		return ack(wxpay.ResultSuccess, "OK")
	}
	if !first {
		// 重复投递：跳过业务钩子，直接应答成功
		p.log.WithField("biz_id", bizID).Info("重复通知，已处理过")
	}
	return ack(wxpay.ResultSuccess, "OK")
}

// Confirm 确认一笔业务单号并触发钩子，回调与对账补单共用此入口
// 幂等存储保证同一单号无论从哪条路径进入，钩子至多执行一次
// 返回值 first 表示本次调用完成了首次迁移；first 为 true 时的 err 来自钩子
func (p *Processor) Confirm(ctx context.Context, bizID string, payload wxpay.Params) (bool, error) {
	unlock := p.keyMu.Lock(bizID)
	defer unlock()

	first, err := p.store.MarkProcessed(ctx, bizID)
	if err != nil {
		return false, err
	}
	if !first {
		return false, nil
	}
	if p.onConfirmed != nil {
		if err := p.onConfirmed(ctx, bizID, payload); err != nil {
			return true, err
		}
	}
	return true, nil
}

// businessIdentity 推导通知的业务单号
// 退款通知优先取退款单号，支付通知取网关交易号，兜底商户单号
func businessIdentity(p wxpay.Params) string {
	for _, k := range []string{"refund_id", "out_refund_no", "transaction_id", "out_trade_no"} {
		if v := p.Get(k); v != "" {
			return v
		}
	}
	return ""
}

// ack 构造应答报文
func ack(code, msg string) string {
	return string(wxpay.EncodeXML(wxpay.Params{
		"return_code": code,
		"return_msg":  msg,
	}))
}
