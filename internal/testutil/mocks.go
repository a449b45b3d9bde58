// Package testutil reúne os mocks testify compartilhados entre pacotes.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/inadimplencia-api/internal/entity"
	"github.com/xavierca1/inadimplencia-api/internal/infra/integration/bureau"
	"github.com/xavierca1/inadimplencia-api/internal/infra/queue"
)

// MockPersonRepository
type MockPersonRepository struct {
	mock.Mock
}

func (m *MockPersonRepository) Create(ctx context.Context, p *entity.Person) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPersonRepository) FindByCPF(ctx context.Context, cpf string) (*entity.Person, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Person), args.Error(1)
}

func (m *MockPersonRepository) FindByID(ctx context.Context, id string) (*entity.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Person), args.Error(1)
}

func (m *MockPersonRepository) Update(ctx context.Context, p *entity.Person) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockDebtRepository
type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) Create(ctx context.Context, d *entity.Debt) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDebtRepository) FindByPersonID(ctx context.Context, personID string) ([]*entity.Debt, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindLatestByPersonID(ctx context.Context, personID string) (*entity.Debt, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Debt), args.Error(1)
}

func (m *MockDebtRepository) Update(ctx context.Context, d *entity.Debt) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

// MockBureauGateway
type MockBureauGateway struct {
	mock.Mock
}

func (m *MockBureauGateway) ConsultCPF(ctx context.Context, cpf string) (*bureau.Response, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bureau.Response), args.Error(1)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishDebtRecorded(ctx context.Context, payload queue.DebtRecordedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
