package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/inadimplencia-api/internal/cpf"
	"github.com/xavierca1/inadimplencia-api/internal/entity"
)

type CreatePersonUseCase struct {
	Repo entity.PersonRepository
	Now  func() time.Time
}

func NewCreatePersonUseCase(repo entity.PersonRepository) *CreatePersonUseCase {
	return &CreatePersonUseCase{
		Repo: repo,
		Now:  time.Now,
	}
}

func (uc *CreatePersonUseCase) Execute(ctx context.Context, input CreatePersonInput) (*PersonResponse, error) {
	document := cpf.Normalize(input.CPF)
	if !cpf.Validate(document) {
		return nil, NewValidationError("invalid CPF")
	}

	_, err := uc.Repo.FindByCPF(ctx, document)
	if err == nil {
		return nil, NewConflictError(entity.ErrCPFAlreadyRegistered.Error())
	}
	if !errors.Is(err, entity.ErrPersonNotFound) {
		return nil, NewDatabaseError("failed to check CPF", err)
	}

	birthDate, err := parseBirthDate(input.BirthDate)
	if err != nil {
		return nil, err
	}

	now := uc.Now().UTC()
	person, err := entity.NewPerson(document, input.Name, birthDate, input.Email, input.Phone, input.Address, now)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	if err := uc.Repo.Create(ctx, person); err != nil {
		// corrida entre o FindByCPF e o INSERT cai na unique constraint
		if errors.Is(err, entity.ErrCPFAlreadyRegistered) {
			return nil, NewConflictError(entity.ErrCPFAlreadyRegistered.Error())
		}
		return nil, NewDatabaseError("failed to create person", err)
	}

	return NewPersonResponse(person), nil
}

func parseBirthDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, NewValidationError("birthDate is required")
	}
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		return time.Time{}, NewValidationError("birthDate must be a valid date (YYYY-MM-DD)")
	}
	return t, nil
}
