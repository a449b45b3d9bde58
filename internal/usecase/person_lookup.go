package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/inadimplencia-api/internal/cpf"
	"github.com/xavierca1/inadimplencia-api/internal/entity"
)

// findPerson normaliza o CPF e traduz os erros do repositório.
func findPerson(ctx context.Context, repo entity.PersonRepository, document string) (*entity.Person, error) {
	person, err := repo.FindByCPF(ctx, cpf.Normalize(document))
	if err != nil {
		if errors.Is(err, entity.ErrPersonNotFound) {
			return nil, NewNotFoundError(entity.ErrPersonNotFound.Error())
		}
		return nil, NewDatabaseError("failed to load person", err)
	}
	return person, nil
}
