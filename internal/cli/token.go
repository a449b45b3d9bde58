package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xavierca1/inadimplencia-api/internal/config"
	"github.com/xavierca1/inadimplencia-api/internal/infra/security"
)

type tokenOptions struct {
	UserID string
	Email  string
	Role   string
	TTL    time.Duration
}

// NewTokenCommand emite um token assinado com JWT_SECRET.
func NewTokenCommand() *cobra.Command {
	opts := &tokenOptions{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Gera um token de acesso",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is required")
			}

			ttl := cfg.JWTTTL
			if opts.TTL > 0 {
				ttl = opts.TTL
			}

			tok, err := security.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, ttl).Generate(opts.UserID, opts.Email, opts.Role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.UserID, "user", "admin", "user id (sub)")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email claim")
	cmd.Flags().StringVar(&opts.Role, "role", "operator", "role claim")
	cmd.Flags().DurationVar(&opts.TTL, "ttl", 0, "token lifetime (default JWT_TTL)")

	return cmd
}
