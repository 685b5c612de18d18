package mq

import (
	"encoding/json"
	"log"

	"wxpay-gateway-api/internal/dal"

	"github.com/streadway/amqp"
)

// PayConfirmedEvent 支付确认事件，回调验签通过且首次处理时发布
type PayConfirmedEvent struct {
	BizID         string `json:"biz_id"`
	TransactionID string `json:"transaction_id"`
	OutTradeNo    string `json:"out_trade_no"`
	TotalFee      int64  `json:"total_fee"`
	ResultCode    string `json:"result_code"`
	TimeEnd       string `json:"time_end"`
	ConfirmedAt   int64  `json:"confirmed_at"`
}

// RefundConfirmedEvent 退款确认事件
type RefundConfirmedEvent struct {
	BizID       string `json:"biz_id"`
	RefundID    string `json:"refund_id"`
	OutRefundNo string `json:"out_refund_no"`
	RefundFee   int64  `json:"refund_fee"`
	ConfirmedAt int64  `json:"confirmed_at"`
}

func PublishPayConfirmed(evt PayConfirmedEvent) error {
	return publish("pay.confirmed", evt)
}

func PublishRefundConfirmed(evt RefundConfirmedEvent) error {
	return publish("refund.confirmed", evt)
}

func publish(routingKey string, evt interface{}) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, _ := json.Marshal(evt)
	err := dal.RabbitCh.Publish(
		"pay_events",
		routingKey,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
	if err != nil {
		log.Printf("publish %s failed: %v", routingKey, err)
	}
	return err
}
