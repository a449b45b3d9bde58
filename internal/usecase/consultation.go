package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/inadimplencia-api/internal/cpf"
	"github.com/xavierca1/inadimplencia-api/internal/entity"
	"github.com/xavierca1/inadimplencia-api/internal/infra/integration/bureau"
	"github.com/xavierca1/inadimplencia-api/internal/infra/queue"
)

// consultation é o fluxo comum de ConsultBureau e UpdateStatus:
// consulta o gateway, grava um Debt novo e publica o evento.
type consultation struct {
	debts   entity.DebtRepository
	gateway BureauGateway
	events  EventPublisher
	logger  *zap.Logger
	now     func() time.Time
}

func newConsultation(debts entity.DebtRepository, gateway BureauGateway, events EventPublisher, logger *zap.Logger) *consultation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &consultation{
		debts:   debts,
		gateway: gateway,
		events:  events,
		logger:  logger,
		now:     time.Now,
	}
}

func (c *consultation) record(ctx context.Context, person *entity.Person, origin string) (*bureau.Response, *entity.Debt, error) {
	resp, err := c.gateway.ConsultCPF(ctx, person.CPF)
	if err != nil {
		return nil, nil, NewGatewayError(err)
	}

	debt, err := debtFromResponse(person, resp, origin, c.now().UTC())
	if err != nil {
		c.logger.Error("resposta inválida do bureau",
			zap.String("cpf", cpf.Mask(person.CPF)),
			zap.Error(err),
		)
		return nil, nil, NewGatewayError(err)
	}

	if err := c.debts.Create(ctx, debt); err != nil {
		return nil, nil, NewDatabaseError("failed to record consultation", err)
	}

	c.logger.Info("consulta registrada",
		zap.String("cpf", cpf.Mask(person.CPF)),
		zap.String("status", string(debt.Status)),
		zap.String("origin", origin),
	)

	c.publish(ctx, person, debt)
	return resp, debt, nil
}

// publish não falha a requisição: o registro já está gravado.
func (c *consultation) publish(ctx context.Context, person *entity.Person, debt *entity.Debt) {
	if c.events == nil {
		return
	}
	payload := queue.DebtRecordedPayload{
		DebtID:       debt.ID,
		PersonID:     person.ID,
		CPF:          person.CPF,
		Name:         person.Name,
		Email:        person.Email,
		Status:       string(debt.Status),
		TotalAmount:  debt.TotalAmount,
		RecordsCount: debt.RecordsCount,
		Origin:       debt.Origin,
		ConsultedAt:  debt.ConsultedAt,
	}
	if err := c.events.PublishDebtRecorded(ctx, payload); err != nil {
		c.logger.Warn("⚠️ consulta gravada, mas falha ao publicar evento",
			zap.String("debtId", debt.ID),
			zap.Error(err),
		)
	}
}

func debtFromResponse(person *entity.Person, resp *bureau.Response, origin string, now time.Time) (*entity.Debt, error) {
	debt := &entity.Debt{
		PersonID:     person.ID,
		CPF:          person.CPF,
		Status:       resp.Status,
		TotalAmount:  resp.TotalAmount,
		RecordsCount: resp.RecordsCount,
		Origin:       origin,
		ConsultedAt:  now,
		Summary:      resp.Summary,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if resp.LastNegativationDate != nil && *resp.LastNegativationDate != "" {
		t, err := time.Parse(time.RFC3339, *resp.LastNegativationDate)
		if err != nil {
			return nil, fmt.Errorf("invalid lastNegativationDate %q: %w", *resp.LastNegativationDate, err)
		}
		t = t.UTC()
		debt.LastNegativationDate = &t
	}

	if err := entity.ValidateDebt(debt); err != nil {
		return nil, err
	}
	return debt, nil
}
