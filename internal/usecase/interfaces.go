package usecase

import (
	"context"

	"github.com/xavierca1/inadimplencia-api/internal/infra/integration/bureau"
	"github.com/xavierca1/inadimplencia-api/internal/infra/queue"
)

// BureauGateway é implementado pelo simulador e pelo client HTTP.
type BureauGateway interface {
	ConsultCPF(ctx context.Context, cpf string) (*bureau.Response, error)
}

type EventPublisher interface {
	PublishDebtRecorded(ctx context.Context, payload queue.DebtRecordedPayload) error
}
