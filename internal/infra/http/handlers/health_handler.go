package handlers

import (
	"context"
	"net/http"
	"time"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type BrokerStatus interface {
	IsClosed() bool
}

type HealthHandler struct {
	DB        Pinger
	Broker    BrokerStatus
	StartTime time.Time
	Now       func() time.Time
}

type ReadyResponse struct {
	Status       string            `json:"status"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler aceita broker nil quando o RabbitMQ não está configurado.
func NewHealthHandler(db Pinger, broker BrokerStatus) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		Broker:    broker,
		StartTime: time.Now(),
		Now:       time.Now,
	}
}

// Health (GET /health) é só liveness.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": h.Now().UTC().Format(time.RFC3339),
	})
}

// Ready (GET /ready) checa as dependências.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)
	healthy := true

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			deps["database"] = "unhealthy"
			healthy = false
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
		healthy = false
	}

	if h.Broker != nil {
		if h.Broker.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
			healthy = false
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	resp := ReadyResponse{
		Status:       "ready",
		Uptime:       h.Now().Sub(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}
	status := http.StatusOK
	if !healthy {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
