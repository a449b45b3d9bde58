package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/inadimplencia-api/internal/infra/security"
)

func TestRootRegistersCommands(t *testing.T) {
	root := NewRootCommand()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["token"])
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo")
	t.Setenv("JWT_ISSUER", "inadimplencia-api")

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"token", "--user", "u-9", "--email", "ops@example.com", "--role", "admin"})

	require.NoError(t, root.Execute())

	claims, err := security.NewTokenService("segredo", "inadimplencia-api", 0).Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "u-9", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenCommandRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"token"})

	assert.ErrorContains(t, root.Execute(), "JWT_SECRET")
}

func TestMigrateRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	root := NewRootCommand()
	root.SetArgs([]string{"migrate"})

	assert.ErrorContains(t, root.Execute(), "DATABASE_URL")
}
