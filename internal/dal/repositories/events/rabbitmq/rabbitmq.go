package rabbitmqrepo

import (
	"github.com/streadway/amqp"

	"github.com/kittiBank/order-manage-web/internal/dal/rabbitmq"
)

// OrderEventsQueue is the queue order mutation events are published to.
const OrderEventsQueue = "oms.orders.events"

// RabbitMQPublisher publishes order events to the events queue.
type RabbitMQPublisher struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

func NewRabbitMQPublisher(client *rabbitmq.Client) *RabbitMQPublisher {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       OrderEventsQueue,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &RabbitMQPublisher{
		client: client,
		queue:  queue,
	}
}

// Publish sends one event body to the events queue.
func (p *RabbitMQPublisher) Publish(contentType string, body []byte) error {
	return p.client.Channel().Publish(
		"",
		p.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: contentType,
			Body:        body,
		},
	)
}
