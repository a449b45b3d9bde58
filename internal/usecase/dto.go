package usecase

import (
	"time"

	"github.com/xavierca1/inadimplencia-api/internal/entity"
)

type CreatePersonInput struct {
	CPF       string `json:"cpf"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// UpdatePersonInput: campos nil não são alterados.
type UpdatePersonInput struct {
	CPF     string  `json:"-"`
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type PersonResponse struct {
	ID        string `json:"id"`
	CPF       string `json:"cpf"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type UpdateStatusOutput struct {
	PreviousStatus entity.DebtStatus `json:"previousStatus"`
	NewStatus      entity.DebtStatus `json:"newStatus"`
}

type DebtResponse struct {
	ID                   string            `json:"id"`
	PersonID             string            `json:"personId"`
	CPF                  string            `json:"cpf"`
	Status               entity.DebtStatus `json:"status"`
	TotalAmount          float64           `json:"totalAmount"`
	RecordsCount         int               `json:"recordsCount"`
	LastNegativationDate *string           `json:"lastNegativationDate"`
	Origin               string            `json:"origin"`
	ConsultedAt          string            `json:"consultedAt"`
	Summary              string            `json:"summary,omitempty"`
	CreatedAt            string            `json:"createdAt"`
}

func NewPersonResponse(p *entity.Person) *PersonResponse {
	return &PersonResponse{
		ID:        p.ID,
		CPF:       p.CPF,
		Name:      p.Name,
		BirthDate: p.BirthDate.Format(entity.DateLayout),
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func NewDebtResponse(d *entity.Debt) DebtResponse {
	var neg *string
	if d.LastNegativationDate != nil {
		s := d.LastNegativationDate.UTC().Format(time.RFC3339)
		neg = &s
	}
	return DebtResponse{
		ID:                   d.ID,
		PersonID:             d.PersonID,
		CPF:                  d.CPF,
		Status:               d.Status,
		TotalAmount:          d.TotalAmount,
		RecordsCount:         d.RecordsCount,
		LastNegativationDate: neg,
		Origin:               d.Origin,
		ConsultedAt:          d.ConsultedAt.UTC().Format(time.RFC3339),
		Summary:              d.Summary,
		CreatedAt:            d.CreatedAt.UTC().Format(time.RFC3339),
	}
}
