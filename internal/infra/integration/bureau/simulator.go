package bureau

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/inadimplencia-api/internal/cpf"
	"github.com/xavierca1/inadimplencia-api/internal/entity"
)

const (
	maxSimulatedAmount  = 50000.0
	maxSimulatedRecords = 5
	negativationWindow  = 90 * 24 * time.Hour
)

type SimulatorConfig struct {
	Delay              time.Duration
	DefaultProbability float64
	// Random retorna valores em [0, 1). Nil usa math/rand/v2.
	Random func() float64
	Now    func() time.Time
}

// Simulator gera respostas aleatórias no lugar do bureau real.
type Simulator struct {
	delay       time.Duration
	probability float64
	random      func() float64
	now         func() time.Time
	logger      *zap.Logger
}

func NewSimulator(cfg SimulatorConfig, logger *zap.Logger) *Simulator {
	s := &Simulator{
		delay:       cfg.Delay,
		probability: cfg.DefaultProbability,
		random:      cfg.Random,
		now:         cfg.Now,
		logger:      logger,
	}
	if s.random == nil {
		s.random = rand.Float64
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Simulator) ConsultCPF(ctx context.Context, document string) (resp *Response, err error) {
	start := time.Now()
	s.logger.Info("🔎 consultando simulador", zap.String("cpf", cpf.Mask(document)))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			s.logger.Error("❌ falha no simulador",
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			resp, err = nil, ErrQueryFailed
			return
		}
		s.logger.Info("✅ resposta do simulador gerada",
			zap.Duration("elapsed", time.Since(start)),
			zap.String("status", string(resp.Status)),
		)
	}()

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return s.simulate(document), nil
}

func (s *Simulator) simulate(document string) *Response {
	now := s.now().UTC()
	resp := &Response{
		CPF:         document,
		Status:      entity.StatusAdimplente,
		Summary:     "Sem pendências financeiras",
		ConsultedAt: now.Format(TimestampLayout),
	}

	if s.random() >= s.probability {
		return resp
	}

	// valor em (0, 50000] com centavos
	amount := math.Round((1-s.random())*maxSimulatedAmount*100) / 100
	if amount <= 0 {
		amount = 0.01
	}
	records := int(s.random()*maxSimulatedRecords) + 1
	if records > maxSimulatedRecords {
		records = maxSimulatedRecords
	}
	negativatedAt := now.Add(-time.Duration(s.random() * float64(negativationWindow))).Format(TimestampLayout)

	resp.Status = entity.StatusInadimplente
	resp.TotalAmount = amount
	resp.RecordsCount = records
	resp.LastNegativationDate = &negativatedAt
	resp.Summary = fmt.Sprintf("%d pendências financeiras encontradas", records)
	return resp
}
