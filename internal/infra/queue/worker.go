package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// SalesNotifier turns a qualified lead into an email for the sales inbox.
type SalesNotifier interface {
	SendSalesNotification(payload QualifiedLeadPayload) error
}

// Worker consumes qualified-lead messages and notifies sales. It is fully
// decoupled from the database: the payload carries everything it needs.
type Worker struct {
	Channel  *amqp.Channel
	Notifier SalesNotifier
}

func NewWorker(ch *amqp.Channel, notifier SalesNotifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("[WORKER] failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload QualifiedLeadPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] invalid JSON, rejecting: %s", err)
				// Malformed message. Reject without requeue so it goes to the DLQ.
				d.Nack(false, false)
				continue
			}

			log.Printf("[WORKER] qualified lead received: %s (%s, score %d)", payload.Name, payload.Company, payload.Score)

			if err := w.Notifier.SendSalesNotification(payload); err != nil {
				log.Printf("[WORKER] sales notification failed: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf("[WORKER] waiting for qualified leads on queue '%s'", queueName)
	<-forever
}
