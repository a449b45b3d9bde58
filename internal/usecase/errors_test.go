package usecase_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/inadimplencia-api/internal/usecase"
)

func TestDomainErrorPredicates(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", usecase.NewConflictError("CPF already registered"))

	assert.True(t, usecase.IsDomainError(wrapped))
	assert.True(t, usecase.IsConflictError(wrapped))
	assert.False(t, usecase.IsValidationError(wrapped))
	assert.False(t, usecase.IsNotFoundError(wrapped))
	assert.False(t, usecase.IsTechnicalError(wrapped))
	assert.Equal(t, "handler: CPF already registered", wrapped.Error())
}

func TestGatewayErrorHidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.7:443: connection refused")
	err := usecase.NewGatewayError(cause)

	assert.Equal(t, "failed to query bureau", err.Error())
	assert.True(t, usecase.IsGatewayError(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, usecase.IsDomainError(err))
}
