package entity

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/xavierca1/inadimplencia-api/internal/cpf"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

var (
	ErrPersonNotFound       = errors.New("person not found")
	ErrCPFAlreadyRegistered = errors.New("CPF already registered")
)

// DateLayout é o formato date-only usado em birthDate.
const DateLayout = "2006-01-02"

// Entidade: Person
type Person struct {
	ID        string    `json:"id"`
	CPF       string    `json:"cpf"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birthDate"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPerson monta a pessoa com CPF normalizado, email em minúsculas e timestamps.
// O ID fica vazio: quem atribui é o repositório no Create.
func NewPerson(document, name string, birthDate time.Time, email, phone, address string, now time.Time) (*Person, error) {
	p := &Person{
		CPF:       cpf.Normalize(document),
		Name:      strings.TrimSpace(name),
		BirthDate: birthDate,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Phone:     strings.TrimSpace(phone),
		Address:   strings.TrimSpace(address),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := ValidatePerson(p, now); err != nil {
		return nil, err
	}
	return p, nil
}

// ValidatePerson checks the invariants a Person must hold before it is persisted.
func ValidatePerson(p *Person, now time.Time) error {
	if !cpf.Validate(p.CPF) {
		return errors.New("invalid CPF")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return errors.New("email is invalid")
	}
	if p.BirthDate.IsZero() {
		return errors.New("birthDate is required")
	}
	if p.BirthDate.After(now) {
		return errors.New("birthDate must not be in the future")
	}
	return nil
}

type PersonRepository interface {
	// Create atribui p.ID. Retorna ErrCPFAlreadyRegistered se o CPF já existir.
	Create(ctx context.Context, p *Person) error
	FindByCPF(ctx context.Context, cpf string) (*Person, error)
	FindByID(ctx context.Context, id string) (*Person, error)
	Update(ctx context.Context, p *Person) error
}
