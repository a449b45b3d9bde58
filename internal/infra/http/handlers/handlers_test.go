package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xavierca1/inadimplencia-api/internal/entity"
	"github.com/xavierca1/inadimplencia-api/internal/infra/http/handlers"
	"github.com/xavierca1/inadimplencia-api/internal/infra/integration/bureau"
	"github.com/xavierca1/inadimplencia-api/internal/infra/security"
	"github.com/xavierca1/inadimplencia-api/internal/testutil"
	"github.com/xavierca1/inadimplencia-api/internal/usecase"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type fakeBroker struct{ closed bool }

func (f fakeBroker) IsClosed() bool { return f.closed }

type env struct {
	people  *testutil.MockPersonRepository
	debts   *testutil.MockDebtRepository
	gateway *testutil.MockBureauGateway
	events  *testutil.MockEventPublisher
	router  http.Handler
}

func newEnv(t *testing.T, auth *security.TokenService) *env {
	t.Helper()
	return newEnvWithLogger(t, auth, zap.NewNop())
}

func newEnvWithLogger(t *testing.T, auth *security.TokenService, log *zap.Logger) *env {
	t.Helper()
	e := &env{
		people:  new(testutil.MockPersonRepository),
		debts:   new(testutil.MockDebtRepository),
		gateway: new(testutil.MockBureauGateway),
		events:  new(testutil.MockEventPublisher),
	}
	e.events.On("PublishDebtRecorded", mock.Anything, mock.Anything).Return(nil).Maybe()

	person := &handlers.PersonHandler{
		CreatePersonUC:  usecase.NewCreatePersonUseCase(e.people),
		GetPersonUC:     usecase.NewGetPersonUseCase(e.people),
		UpdatePersonUC:  usecase.NewUpdatePersonUseCase(e.people),
		ConsultBureauUC: usecase.NewConsultBureauUseCase(e.people, e.debts, e.gateway, e.events, log),
		UpdateStatusUC:  usecase.NewUpdateStatusUseCase(e.people, e.debts, e.gateway, e.events, log),
		ListDebtsUC:     usecase.NewListDebtsUseCase(e.people, e.debts),
		Logger:          log,
	}

	cfg := handlers.RouterConfig{
		Person:         person,
		Health:         handlers.NewHealthHandler(fakePinger{}, nil),
		Logger:         log,
		AllowedOrigins: []string{"*"},
	}
	if auth != nil {
		cfg.Auth = auth
	}
	e.router = handlers.NewRouter(cfg)
	return e
}

func (e *env) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func person() *entity.Person {
	return &entity.Person{
		ID:        "person-1",
		CPF:       "12345678909",
		Name:      "João Silva",
		BirthDate: time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
		Email:     "joao@example.com",
		CreatedAt: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreatePersonHandler(t *testing.T) {
	e := newEnv(t, nil)
	e.people.On("FindByCPF", mock.Anything, "12345678909").Return(nil, entity.ErrPersonNotFound).Once()
	e.people.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Person).ID = "new-id" }).
		Return(nil)

	rec := e.do(http.MethodPost, "/persons",
		`{"cpf":"123.456.789-09","name":"João Silva","birthDate":"1990-05-17","email":"JOAO@example.com"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "new-id", body["id"])
	assert.Equal(t, "12345678909", body["cpf"])
	assert.Equal(t, "1990-05-17", body["birthDate"])
	assert.Equal(t, "joao@example.com", body["email"])
	assert.NotEmpty(t, body["createdAt"])
}

func TestCreatePersonHandlerErrors(t *testing.T) {
	e := newEnv(t, nil)
	e.people.On("FindByCPF", mock.Anything, "12345678909").Return(person(), nil)

	rec := e.do(http.MethodPost, "/persons", `{"cpf":"123","name":"X","birthDate":"1990-05-17","email":"x@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid CPF", decode(t, rec)["error"])

	rec = e.do(http.MethodPost, "/persons", `{"cpf":"12345678909","name":"X","birthDate":"1990-05-17","email":"x@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CPF already registered", decode(t, rec)["error"])

	rec = e.do(http.MethodPost, "/persons", `{"cpf":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid JSON body", decode(t, rec)["error"])
}

func TestGetPersonHandler(t *testing.T) {
	e := newEnv(t, nil)
	e.people.On("FindByCPF", mock.Anything, "12345678909").Return(person(), nil)
	e.people.On("FindByCPF", mock.Anything, "11144477735").Return(nil, entity.ErrPersonNotFound)

	rec := e.do(http.MethodGet, "/persons/12345678909", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1990-05-17", decode(t, rec)["birthDate"])

	rec = e.do(http.MethodGet, "/persons/111.444.777-35", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "person not found", decode(t, rec)["error"])
}

func TestUpdatePersonHandler(t *testing.T) {
	e := newEnv(t, nil)
	e.people.On("FindByCPF", mock.Anything, "12345678909").Return(person(), nil)
	e.people.On("Update", mock.Anything, mock.Anything).Return(nil)

	rec := e.do(http.MethodPatch, "/persons/12345678909", `{"phone":"11988887777"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "11988887777", body["phone"])
	assert.Equal(t, "João Silva", body["name"])
}

func TestConsultBureauHandler(t *testing.T) {
	e := newEnv(t, nil)
	e.people.On("FindByCPF", mock.Anything, "12345678909").Return(person(), nil)
	e.gateway.On("ConsultCPF", mock.Anything, "12345678909").Return(&bureau.Response{
		CPF:         "12345678909",
		Status:      entity.StatusAdimplente,
		Summary:     "Sem pendências financeiras",
		ConsultedAt: "2025-12-24T12:00:00.000Z",
	}, nil)
	e.debts.On("Create", mock.Anything, mock.Anything).Return(nil)

	rec := e.do(http.MethodGet, "/persons/12345678909/bureau", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ADIMPLENTE", body["status"])
	assert.Nil(t, body["lastNegativationDate"])
	assert.Equal(t, "2025-12-24T12:00:00.000Z", body["consultedAt"])
}

func TestConsultBureauHandlerGatewayFailure(t *testing.T) {
	e := newEnv(t, nil)
	e.people.On("FindByCPF", mock.Anything, "12345678909").Return(person(), nil)
	e.gateway.On("ConsultCPF", mock.Anything, "12345678909").Return(nil, errors.New("tcp reset by 10.1.2.3"))

	rec := e.do(http.MethodGet, "/persons/12345678909/bureau", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to query bureau", decode(t, rec)["error"])
	assert.NotContains(t, rec.Body.String(), "10.1.2.3")
}

func TestUpdateStatusHandler(t *testing.T) {
	e := newEnv(t, nil)
	neg := "2025-12-01T00:00:00.000Z"
	e.people.On("FindByCPF", mock.Anything, "12345678909").Return(person(), nil)
	e.debts.On("FindLatestByPersonID", mock.Anything, "person-1").Return(nil, entity.ErrDebtNotFound)
	e.gateway.On("ConsultCPF", mock.Anything, "12345678909").Return(&bureau.Response{
		CPF:                  "12345678909",
		Status:               entity.StatusInadimplente,
		TotalAmount:          99.9,
		RecordsCount:         1,
		LastNegativationDate: &neg,
		ConsultedAt:          "2025-12-24T12:00:00.000Z",
	}, nil)
	e.debts.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	rec := e.do(http.MethodPut, "/persons/12345678909/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ADIMPLENTE", body["previousStatus"])
	assert.Equal(t, "INADIMPLENTE", body["newStatus"])
	e.debts.AssertNumberOfCalls(t, "Create", 1)
}

func TestListDebtsHandler(t *testing.T) {
	e := newEnv(t, nil)
	e.people.On("FindByCPF", mock.Anything, "12345678909").Return(person(), nil)
	e.debts.On("FindByPersonID", mock.Anything, "person-1").Return([]*entity.Debt{}, nil)

	rec := e.do(http.MethodGet, "/persons/12345678909/debts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHealthHandlers(t *testing.T) {
	e := newEnv(t, nil)

	rec := e.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err)

	rec = e.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyDegraded(t *testing.T) {
	h := handlers.NewHealthHandler(fakePinger{err: errors.New("down")}, fakeBroker{closed: true})

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "degraded", body["status"])
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "unhealthy", deps["database"])
	assert.Equal(t, "unhealthy: connection closed", deps["rabbitmq"])
}

func TestPersonsRequireAuthWhenEnabled(t *testing.T) {
	tokens := security.NewTokenService("segredo", "inadimplencia-api", time.Hour)
	e := newEnv(t, tokens)
	e.people.On("FindByCPF", mock.Anything, "12345678909").Return(person(), nil)

	rec := e.do(http.MethodGet, "/persons/12345678909", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := tokens.Generate("u-1", "ops@example.com", "admin")
	require.NoError(t, err)
	rec = e.do(http.MethodGet, "/persons/12345678909", "", "Authorization", "Bearer "+tok)
	assert.Equal(t, http.StatusOK, rec.Code)

	// health continua aberto
	rec = e.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestConsultationLogsRequester(t *testing.T) {
	tokens := security.NewTokenService("segredo", "inadimplencia-api", time.Hour)
	core, logs := observer.New(zapcore.InfoLevel)
	e := newEnvWithLogger(t, tokens, zap.New(core))
	e.people.On("FindByCPF", mock.Anything, "12345678909").Return(person(), nil)
	e.gateway.On("ConsultCPF", mock.Anything, "12345678909").Return(nil, errors.New("tcp reset"))

	tok, err := tokens.Generate("u-1", "ops@example.com", "admin")
	require.NoError(t, err)
	e.do(http.MethodGet, "/persons/12345678909/bureau", "", "Authorization", "Bearer "+tok)

	entries := logs.FilterMessage("consulta solicitada").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "u-1", fields["userId"])
	assert.Equal(t, entity.OriginBureau, fields["origin"])
	assert.NotContains(t, fields["cpf"], "12345678909")
}

func TestConsultationLogsAnonymousWithoutAuth(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := newEnvWithLogger(t, nil, zap.New(core))
	e.people.On("FindByCPF", mock.Anything, "12345678909").Return(person(), nil)
	e.debts.On("FindLatestByPersonID", mock.Anything, "person-1").Return(nil, entity.ErrDebtNotFound)
	e.gateway.On("ConsultCPF", mock.Anything, "12345678909").Return(nil, errors.New("tcp reset"))

	e.do(http.MethodPut, "/persons/12345678909/status", "")

	entries := logs.FilterMessage("consulta solicitada").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "anonymous", entries[0].ContextMap()["userId"])
	assert.Equal(t, entity.OriginLocalSimulator, entries[0].ContextMap()["origin"])
}

func TestMetricsEndpoint(t *testing.T) {
	e := newEnv(t, nil)
	e.do(http.MethodGet, "/health", "")

	rec := e.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
