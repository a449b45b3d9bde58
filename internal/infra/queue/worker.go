package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xavierca1/inadimplencia-api/internal/cpf"
	"github.com/xavierca1/inadimplencia-api/internal/entity"
)

var ErrMalformedMessage = errors.New("malformed message")

// Notifier define o contrato do alerta de inadimplência (email, etc)
type Notifier interface {
	SendDefaultAlert(to, name string, totalAmount float64, recordsCount int) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
	logger   *zap.Logger
}

func NewWorker(ch *amqp.Channel, notifier Notifier, logger *zap.Logger) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
		logger:   logger,
	}
}

// Start consome a fila até o ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.ConsumeWithContext(ctx,
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.logger.Info("👷 worker aguardando mensagens", zap.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("⚠️ worker encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("canal de consumo fechado")
			}
			w.handleDelivery(d)
		}
	}
}

func (w *Worker) handleDelivery(d amqp.Delivery) {
	if err := w.HandleMessage(d.Body); err != nil {
		// sem requeue: mensagem podre ou falha de envio vai pra DLQ
		w.logger.Error("❌ erro ao processar mensagem", zap.String("messageId", d.MessageId), zap.Error(err))
		d.Nack(false, false)
		return
	}
	d.Ack(false)
}

// HandleMessage decodifica o evento e dispara o alerta quando o registro é INADIMPLENTE.
func (w *Worker) HandleMessage(body []byte) error {
	var payload DebtRecordedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if payload.PersonID == "" || payload.Status == "" {
		return ErrMalformedMessage
	}

	if !entity.DebtStatus(payload.Status).IsDefaulting() {
		return nil
	}
	if payload.Email == "" {
		w.logger.Warn("pessoa sem email, alerta ignorado", zap.String("cpf", cpf.Mask(payload.CPF)))
		return nil
	}

	if err := w.Notifier.SendDefaultAlert(payload.Email, payload.Name, payload.TotalAmount, payload.RecordsCount); err != nil {
		return fmt.Errorf("falha ao enviar alerta: %w", err)
	}

	w.logger.Info("📧 alerta de inadimplência enviado",
		zap.String("cpf", cpf.Mask(payload.CPF)),
		zap.String("origin", payload.Origin),
	)
	return nil
}
