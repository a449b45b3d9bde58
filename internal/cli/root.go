package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand monta o CLI. Sem subcomando, sobe o servidor.
func NewRootCommand() *cobra.Command {
	serve := NewServeCommand()

	cmd := &cobra.Command{
		Use:           "api",
		Short:         "API de cadastro de pessoas e consulta de inadimplência",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewTokenCommand())

	return cmd
}
