package usecase

import (
	"context"

	"github.com/xavierca1/inadimplencia-api/internal/entity"
)

type GetPersonUseCase struct {
	Repo entity.PersonRepository
}

func NewGetPersonUseCase(repo entity.PersonRepository) *GetPersonUseCase {
	return &GetPersonUseCase{Repo: repo}
}

func (uc *GetPersonUseCase) Execute(ctx context.Context, document string) (*PersonResponse, error) {
	person, err := findPerson(ctx, uc.Repo, document)
	if err != nil {
		return nil, err
	}
	return NewPersonResponse(person), nil
}
