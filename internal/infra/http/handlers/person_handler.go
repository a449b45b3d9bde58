package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/inadimplencia-api/internal/cpf"
	"github.com/xavierca1/inadimplencia-api/internal/entity"
	"github.com/xavierca1/inadimplencia-api/internal/infra/http/middleware"
	"github.com/xavierca1/inadimplencia-api/internal/usecase"
)

type PersonHandler struct {
	CreatePersonUC  *usecase.CreatePersonUseCase
	GetPersonUC     *usecase.GetPersonUseCase
	UpdatePersonUC  *usecase.UpdatePersonUseCase
	ConsultBureauUC *usecase.ConsultBureauUseCase
	UpdateStatusUC  *usecase.UpdateStatusUseCase
	ListDebtsUC     *usecase.ListDebtsUseCase
	Logger          *zap.Logger
}

// Create (POST /persons)
func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreatePersonInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	out, err := h.CreatePersonUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	middleware.RecordPersonCreated()
	writeJSON(w, http.StatusCreated, out)
}

// Get (GET /persons/{cpf})
func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.GetPersonUC.Execute(r.Context(), chi.URLParam(r, "cpf"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Update (PATCH /persons/{cpf})
func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdatePersonInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	input.CPF = chi.URLParam(r, "cpf")

	out, err := h.UpdatePersonUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ConsultBureau (GET /persons/{cpf}/bureau)
func (h *PersonHandler) ConsultBureau(w http.ResponseWriter, r *http.Request) {
	h.logConsultation(r, entity.OriginBureau)
	out, err := h.ConsultBureauUC.Execute(r.Context(), chi.URLParam(r, "cpf"))
	if err != nil {
		if usecase.IsGatewayError(err) {
			middleware.RecordIntegrationError("bureau")
		}
		writeUseCaseError(w, h.Logger, err)
		return
	}

	middleware.RecordConsultation(entity.OriginBureau, string(out.Status))
	writeJSON(w, http.StatusOK, out)
}

// UpdateStatus (PUT /persons/{cpf}/status)
func (h *PersonHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	h.logConsultation(r, entity.OriginLocalSimulator)
	out, err := h.UpdateStatusUC.Execute(r.Context(), chi.URLParam(r, "cpf"))
	if err != nil {
		if usecase.IsGatewayError(err) {
			middleware.RecordIntegrationError("bureau")
		}
		writeUseCaseError(w, h.Logger, err)
		return
	}

	middleware.RecordConsultation(entity.OriginLocalSimulator, string(out.NewStatus))
	writeJSON(w, http.StatusOK, out)
}

// ListDebts (GET /persons/{cpf}/debts)
func (h *PersonHandler) ListDebts(w http.ResponseWriter, r *http.Request) {
	out, err := h.ListDebtsUC.Execute(r.Context(), chi.URLParam(r, "cpf"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// logConsultation registra quem pediu a consulta. Sem auth o usuário fica "anonymous".
func (h *PersonHandler) logConsultation(r *http.Request, origin string) {
	userID := "anonymous"
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		userID = claims.UserID
	}
	h.Logger.Info("consulta solicitada",
		zap.String("cpf", cpf.Mask(chi.URLParam(r, "cpf"))),
		zap.String("origin", origin),
		zap.String("userId", userID),
	)
}
