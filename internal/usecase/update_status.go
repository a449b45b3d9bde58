package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xavierca1/inadimplencia-api/internal/entity"
)

type UpdateStatusUseCase struct {
	People entity.PersonRepository
	Debts  entity.DebtRepository
	flow   *consultation
}

func NewUpdateStatusUseCase(
	people entity.PersonRepository,
	debts entity.DebtRepository,
	gateway BureauGateway,
	events EventPublisher,
	logger *zap.Logger,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		People: people,
		Debts:  debts,
		flow:   newConsultation(debts, gateway, events, logger),
	}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, document string) (*UpdateStatusOutput, error) {
	person, err := findPerson(ctx, uc.People, document)
	if err != nil {
		return nil, err
	}

	previous := entity.StatusAdimplente
	latest, err := uc.Debts.FindLatestByPersonID(ctx, person.ID)
	switch {
	case err == nil:
		previous = latest.Status
	case !errors.Is(err, entity.ErrDebtNotFound):
		return nil, NewDatabaseError("failed to load latest consultation", err)
	}

	_, debt, err := uc.flow.record(ctx, person, entity.OriginLocalSimulator)
	if err != nil {
		return nil, err
	}

	return &UpdateStatusOutput{
		PreviousStatus: previous,
		NewStatus:      debt.Status,
	}, nil
}
