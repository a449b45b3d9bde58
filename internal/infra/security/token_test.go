package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	svc := NewTokenService("segredo", "inadimplencia-api", time.Hour)

	tok, err := svc.Generate("u-1", "ops@example.com", "admin")
	require.NoError(t, err)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "u-1", claims.Subject)
}

func TestVerifyRejects(t *testing.T) {
	svc := NewTokenService("segredo", "inadimplencia-api", time.Hour)
	tok, err := svc.Generate("u-1", "ops@example.com", "admin")
	require.NoError(t, err)

	other := NewTokenService("outro-segredo", "inadimplencia-api", time.Hour)
	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := NewTokenService("segredo", "outro-servico", time.Hour)
	_, err = wrongIssuer.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Verify("nao.e.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	svc := NewTokenService("segredo", "inadimplencia-api", time.Minute)
	svc.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	tok, err := svc.Generate("u-1", "", "")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2025, 1, 1, 0, 2, 0, 0, time.UTC) }
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	svc := NewTokenService("segredo", "inadimplencia-api", time.Hour)

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID:           "u-1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "inadimplencia-api"},
	})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateWithoutSecret(t *testing.T) {
	_, err := NewTokenService("", "x", time.Hour).Generate("u", "", "")
	assert.Error(t, err)
}
