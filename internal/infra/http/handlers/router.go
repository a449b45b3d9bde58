package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/inadimplencia-api/internal/infra/http/middleware"
)

type RouterConfig struct {
	Person         *PersonHandler
	Health         *HealthHandler
	Logger         *zap.Logger
	AllowedOrigins []string
	// Auth nil deixa /persons aberto
	Auth middleware.TokenVerifier
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", cfg.Health.Health)
	r.Get("/ready", cfg.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/persons", func(r chi.Router) {
		if cfg.Auth != nil {
			r.Use(middleware.RequireAuth(cfg.Auth))
		}
		r.Post("/", cfg.Person.Create)
		r.Get("/{cpf}", cfg.Person.Get)
		r.Patch("/{cpf}", cfg.Person.Update)
		r.Get("/{cpf}/bureau", cfg.Person.ConsultBureau)
		r.Put("/{cpf}/status", cfg.Person.UpdateStatus)
		r.Get("/{cpf}/debts", cfg.Person.ListDebts)
	})

	return r
}
