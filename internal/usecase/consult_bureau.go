package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/inadimplencia-api/internal/entity"
	"github.com/xavierca1/inadimplencia-api/internal/infra/integration/bureau"
)

type ConsultBureauUseCase struct {
	People entity.PersonRepository
	flow   *consultation
}

func NewConsultBureauUseCase(
	people entity.PersonRepository,
	debts entity.DebtRepository,
	gateway BureauGateway,
	events EventPublisher,
	logger *zap.Logger,
) *ConsultBureauUseCase {
	return &ConsultBureauUseCase{
		People: people,
		flow:   newConsultation(debts, gateway, events, logger),
	}
}

// Execute devolve a resposta do bureau como veio; o Debt gravado é um append.
func (uc *ConsultBureauUseCase) Execute(ctx context.Context, document string) (*bureau.Response, error) {
	person, err := findPerson(ctx, uc.People, document)
	if err != nil {
		return nil, err
	}

	resp, _, err := uc.flow.record(ctx, person, entity.OriginBureau)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
