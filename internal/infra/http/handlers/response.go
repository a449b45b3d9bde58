package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/inadimplencia-api/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeUseCaseError traduz a taxonomia de erros dos use cases em status HTTP.
func writeUseCaseError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case usecase.IsValidationError(err), usecase.IsConflictError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case usecase.IsNotFoundError(err):
		writeError(w, http.StatusNotFound, err.Error())
	case usecase.IsGatewayError(err):
		logger.Error("falha no bureau", zap.Error(err), zap.NamedError("cause", unwrapCause(err)))
		writeError(w, http.StatusInternalServerError, err.Error())
	case usecase.IsTechnicalError(err):
		logger.Error("falha de infraestrutura", zap.Error(err), zap.NamedError("cause", unwrapCause(err)))
		writeError(w, http.StatusInternalServerError, "internal server error")
	case usecase.IsDomainError(err):
		// código de domínio sem mapeamento próprio
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("erro interno", zap.Error(err), zap.NamedError("cause", unwrapCause(err)))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func unwrapCause(err error) error {
	if u, ok := err.(interface{ Unwrap() error }); ok && u.Unwrap() != nil {
		return u.Unwrap()
	}
	return err
}
