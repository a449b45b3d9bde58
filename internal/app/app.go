package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/inadimplencia-api/internal/config"
	"github.com/xavierca1/inadimplencia-api/internal/infra/database"
	"github.com/xavierca1/inadimplencia-api/internal/infra/http/handlers"
	"github.com/xavierca1/inadimplencia-api/internal/infra/integration/bureau"
	"github.com/xavierca1/inadimplencia-api/internal/infra/mail"
	"github.com/xavierca1/inadimplencia-api/internal/infra/queue"
	"github.com/xavierca1/inadimplencia-api/internal/infra/security"
	"github.com/xavierca1/inadimplencia-api/internal/usecase"
)

// App é o contexto da aplicação: montado uma vez no startup e passado adiante.
type App struct {
	Config config.Config
	Logger *zap.Logger

	DB     *sql.DB
	Broker *queue.RabbitMQ // nil quando RABBITMQ_URL está vazio

	People  *database.PersonRepository
	Debts   *database.DebtRepository
	Gateway usecase.BureauGateway
	Events  usecase.EventPublisher
	Tokens  *security.TokenService
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL, database.Options{
		Driver:          cfg.DBDriver,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		People:  database.NewPersonRepository(db),
		Debts:   database.NewDebtRepository(db),
		Gateway: NewGateway(cfg, logger),
		Events:  queue.NoopProducer{},
		Tokens:  security.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL),
	}

	if cfg.EventsEnabled() {
		broker, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			db.Close()
			return nil, err
		}
		a.Broker = broker
		a.Events = queue.NewProducer(broker.Ch)
	}

	return a, nil
}

// NewGateway escolhe o simulador ou o client HTTP conforme BUREAU_MODE.
func NewGateway(cfg config.Config, logger *zap.Logger) usecase.BureauGateway {
	if cfg.BureauMode == config.BureauModeHTTP {
		return bureau.NewClient(cfg.BureauURL, cfg.BureauClientID, cfg.BureauClientSecret, cfg.BureauTimeout, logger)
	}
	return bureau.NewSimulator(bureau.SimulatorConfig{
		Delay:              cfg.SimulatorDelay,
		DefaultProbability: cfg.SimulatorDefaultProbability,
	}, logger)
}

func (a *App) Router() http.Handler {
	person := &handlers.PersonHandler{
		CreatePersonUC:  usecase.NewCreatePersonUseCase(a.People),
		GetPersonUC:     usecase.NewGetPersonUseCase(a.People),
		UpdatePersonUC:  usecase.NewUpdatePersonUseCase(a.People),
		ConsultBureauUC: usecase.NewConsultBureauUseCase(a.People, a.Debts, a.Gateway, a.Events, a.Logger),
		UpdateStatusUC:  usecase.NewUpdateStatusUseCase(a.People, a.Debts, a.Gateway, a.Events, a.Logger),
		ListDebtsUC:     usecase.NewListDebtsUseCase(a.People, a.Debts),
		Logger:          a.Logger,
	}

	// interface nil de verdade, não ponteiro nil embrulhado
	var broker handlers.BrokerStatus
	if a.Broker != nil {
		broker = a.Broker
	}

	rc := handlers.RouterConfig{
		Person:         person,
		Health:         handlers.NewHealthHandler(a.DB, broker),
		Logger:         a.Logger,
		AllowedOrigins: a.Config.CORSAllowedOrigins,
	}
	if a.Config.AuthEnabled {
		rc.Auth = a.Tokens
	}
	return handlers.NewRouter(rc)
}

// StartWorker consome q.debt.recorded até o ctx ser cancelado.
// Sem broker ou sem SMTP não há o que fazer.
func (a *App) StartWorker(ctx context.Context) error {
	if a.Broker == nil || !a.Config.MailEnabled() {
		a.Logger.Info("worker de alertas desabilitado",
			zap.Bool("events", a.Broker != nil),
			zap.Bool("mail", a.Config.MailEnabled()),
		)
		return nil
	}

	// canal separado do publisher
	ch, err := a.Broker.Conn.Channel()
	if err != nil {
		return fmt.Errorf("falha ao abrir canal do worker: %w", err)
	}
	defer ch.Close()

	sender := mail.NewEmailSender(a.Config.MailHost, a.Config.MailPort, a.Config.MailUser, a.Config.MailPass, a.Config.MailFrom)
	return queue.NewWorker(ch, sender, a.Logger).Start(ctx, queue.QueueName)
}

func (a *App) Close() {
	if a.Broker != nil {
		a.Broker.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
	a.Logger.Sync()
}
