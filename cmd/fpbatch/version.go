package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Se sobrescriben con -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "fpbatch %s (%s)\n", version, commit)
			return nil
		},
	}
}
