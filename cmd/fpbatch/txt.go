package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newTxtCmd(c *cli) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "txt <xml|zip|dir>...",
		Short: "Genera la variante TXT legible (un bloque por factura)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readSources(args)
			if err != nil {
				return err
			}
			res, err := c.useCase().ExportText(cmd.Context(), files)
			out := cmd.OutOrStdout()
			if res != nil {
				printFailures(out, res.Failures)
			}
			if err != nil {
				return err
			}
			if output == "-" {
				_, err = out.Write(res.Text)
				return err
			}
			if err := os.WriteFile(output, res.Text, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", output, err)
			}
			fmt.Fprintf(out, "Facturas: %d (con error: %d)\nArchivo: %s\n", len(res.Invoices), len(res.Failures), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "facturas.txt", `archivo de salida ("-" = salida estándar)`)
	return cmd
}
