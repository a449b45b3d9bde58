package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DebtRecordedPayload é publicado a cada consulta gravada.
type DebtRecordedPayload struct {
	DebtID       string    `json:"debtId"`
	PersonID     string    `json:"personId"`
	CPF          string    `json:"cpf"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	TotalAmount  float64   `json:"totalAmount"`
	RecordsCount int       `json:"recordsCount"`
	Origin       string    `json:"origin"`
	ConsultedAt  time.Time `json:"consultedAt"`
}

// amqp.Channel não é seguro para publish concorrente
type RabbitMQProducer struct {
	mu sync.Mutex
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishDebtRecorded(ctx context.Context, payload DebtRecordedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    payload.DebtID,
			Timestamp:    payload.ConsultedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}

// NoopProducer é usado quando RABBITMQ_URL não está configurado.
type NoopProducer struct{}

func (NoopProducer) PublishDebtRecorded(context.Context, DebtRecordedPayload) error {
	return nil
}
