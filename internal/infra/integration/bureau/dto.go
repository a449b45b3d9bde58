package bureau

import (
	"errors"

	"github.com/xavierca1/inadimplencia-api/internal/entity"
)

// ErrQueryFailed é o único erro exposto pelos gateways; o detalhe fica só no log.
var ErrQueryFailed = errors.New("failed to query bureau")

// TimestampLayout segue o toISOString do bureau (UTC com milissegundos).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Response é devolvida sem alteração para quem chamou a consulta.
type Response struct {
	CPF                  string            `json:"cpf"`
	Status               entity.DebtStatus `json:"status"`
	TotalAmount          float64           `json:"totalAmount"`
	RecordsCount         int               `json:"recordsCount"`
	LastNegativationDate *string           `json:"lastNegativationDate"`
	Summary              string            `json:"summary,omitempty"`
	ConsultedAt          string            `json:"consultedAt"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
