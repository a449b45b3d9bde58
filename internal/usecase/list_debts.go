package usecase

import (
	"context"

	"github.com/xavierca1/inadimplencia-api/internal/entity"
)

type ListDebtsUseCase struct {
	People entity.PersonRepository
	Debts  entity.DebtRepository
}

func NewListDebtsUseCase(people entity.PersonRepository, debts entity.DebtRepository) *ListDebtsUseCase {
	return &ListDebtsUseCase{People: people, Debts: debts}
}

// Execute lista o histórico de consultas, mais recente primeiro.
func (uc *ListDebtsUseCase) Execute(ctx context.Context, document string) ([]DebtResponse, error) {
	person, err := findPerson(ctx, uc.People, document)
	if err != nil {
		return nil, err
	}

	debts, err := uc.Debts.FindByPersonID(ctx, person.ID)
	if err != nil {
		return nil, NewDatabaseError("failed to list consultations", err)
	}

	out := make([]DebtResponse, 0, len(debts))
	for _, d := range debts {
		out = append(out, NewDebtResponse(d))
	}
	return out, nil
}
