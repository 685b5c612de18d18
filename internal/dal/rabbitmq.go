package dal

import (
	"log"

	"wxpay-gateway-api/internal/config"

	"github.com/streadway/amqp"
)

var RabbitConn *amqp.Connection
var RabbitCh *amqp.Channel

func InitRabbitMQ() {
	url := config.C.RabbitMQ.URL
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("rabbitmq dial failed: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbitmq channel failed: %v", err)
	}

	// exchange & queues
	if err := ch.ExchangeDeclare("pay_events", "topic", true, false, false, false, nil); err != nil {
		log.Fatalf("exchange declare failed: %v", err)
	}
	if _, err := ch.QueueDeclare("pay_confirmed", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare pay_confirmed failed: %v", err)
	}
	if _, err := ch.QueueDeclare("refund_confirmed", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare refund_confirmed failed: %v", err)
	}
	if err := ch.QueueBind("pay_confirmed", "pay.confirmed", "pay_events", false, nil); err != nil {
		log.Fatalf("queue bind pay_confirmed failed: %v", err)
	}
	if err := ch.QueueBind("refund_confirmed", "refund.confirmed", "pay_events", false, nil); err != nil {
		log.Fatalf("queue bind refund_confirmed failed: %v", err)
	}

	RabbitConn = conn
	RabbitCh = ch
}
