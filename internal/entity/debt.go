package entity

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrDebtNotFound = errors.New("debt not found")

type DebtStatus string

const (
	StatusAdimplente   DebtStatus = "ADIMPLENTE"
	StatusInadimplente DebtStatus = "INADIMPLENTE"
)

// Tags de origem gravadas em cada consulta
const (
	OriginBureau         = "BUREAU"
	OriginLocalSimulator = "LOCAL_SIMULATOR"
)

func (s DebtStatus) Valid() bool {
	return s == StatusAdimplente || s == StatusInadimplente
}

func (s DebtStatus) IsDefaulting() bool {
	return s == StatusInadimplente
}

// Debt é o resultado de uma consulta ao bureau. Cada consulta gera um registro novo.
type Debt struct {
	ID                   string     `json:"id"`
	PersonID             string     `json:"personId"`
	CPF                  string     `json:"cpf"`
	Status               DebtStatus `json:"status"`
	TotalAmount          float64    `json:"totalAmount"`
	RecordsCount         int        `json:"recordsCount"`
	LastNegativationDate *time.Time `json:"lastNegativationDate"`
	Origin               string     `json:"origin"`
	ConsultedAt          time.Time  `json:"consultedAt"`
	Summary              string     `json:"summary,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// ValidateDebt enforces the status-dependent invariants of a consultation record.
func ValidateDebt(d *Debt) error {
	if d.PersonID == "" {
		return errors.New("personId is required")
	}
	if !d.Status.Valid() {
		return fmt.Errorf("invalid status %q", d.Status)
	}
	if d.TotalAmount < 0 {
		return errors.New("totalAmount must not be negative")
	}
	if d.RecordsCount < 0 {
		return errors.New("recordsCount must not be negative")
	}
	if d.Origin == "" {
		return errors.New("origin is required")
	}

	if !d.Status.IsDefaulting() {
		if d.TotalAmount != 0 || d.RecordsCount != 0 {
			return errors.New("compliant record must have zero amount and records")
		}
		if d.LastNegativationDate != nil {
			return errors.New("compliant record must not have a negativation date")
		}
	}
	return nil
}

type DebtRepository interface {
	// Create atribui d.ID
	Create(ctx context.Context, d *Debt) error
	// FindByPersonID retorna os registros do mais recente para o mais antigo (consulted_at).
	FindByPersonID(ctx context.Context, personID string) ([]*Debt, error)
	// FindLatestByPersonID retorna ErrDebtNotFound quando a pessoa nunca foi consultada.
	FindLatestByPersonID(ctx context.Context, personID string) (*Debt, error)
	Update(ctx context.Context, d *Debt) error
}
