package main

import (
	"fmt"
	"os"

	"github.com/xavierca1/inadimplencia-api/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}
