package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/inadimplencia-api/internal/entity"
)

// UpdatePersonUseCase aplica atualização parcial. CPF e data de nascimento não mudam.
type UpdatePersonUseCase struct {
	Repo entity.PersonRepository
	Now  func() time.Time
}

func NewUpdatePersonUseCase(repo entity.PersonRepository) *UpdatePersonUseCase {
	return &UpdatePersonUseCase{
		Repo: repo,
		Now:  time.Now,
	}
}

func (uc *UpdatePersonUseCase) Execute(ctx context.Context, input UpdatePersonInput) (*PersonResponse, error) {
	person, err := findPerson(ctx, uc.Repo, input.CPF)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		person.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		person.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Phone != nil {
		person.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		person.Address = strings.TrimSpace(*input.Address)
	}

	now := uc.Now().UTC()
	if err := entity.ValidatePerson(person, now); err != nil {
		return nil, NewValidationError(err.Error())
	}
	person.UpdatedAt = now

	if err := uc.Repo.Update(ctx, person); err != nil {
		if errors.Is(err, entity.ErrPersonNotFound) {
			return nil, NewNotFoundError(entity.ErrPersonNotFound.Error())
		}
		return nil, NewDatabaseError("failed to update person", err)
	}

	return NewPersonResponse(person), nil
}
