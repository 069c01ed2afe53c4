package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newValidateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <FPBATCH.txt>",
		Short: "Valida un FPBATCH existente (longitudes, tipos de campo y ternas 01/02/03)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			report, err := c.useCase().Validate(b)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report.Errors, report.Warnings)
			if !report.OK {
				return fmt.Errorf("%s: %d errores de formato", args[0], len(report.Errors))
			}
			return nil
		},
	}
}
