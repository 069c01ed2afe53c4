package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/fpbatch-converter/internal/application/conversion"
	"github.com/jhoicas/fpbatch-converter/internal/domain"
	"github.com/jhoicas/fpbatch-converter/internal/infrastructure/txt"
)

func newConvertCmd(c *cli) *cobra.Command {
	var (
		output  string
		txtPath string
		strict  bool
	)
	cmd := &cobra.Command{
		Use:   "convert <xml|zip|dir>...",
		Short: "Genera el FPBATCH a partir de facturas XML o ZIP",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readSources(args)
			if err != nil {
				return err
			}
			res, err := c.useCase().Convert(cmd.Context(), conversion.SourceCLI, files)
			out := cmd.OutOrStdout()
			if res != nil {
				printFailures(out, res.Failures)
			}
			if err != nil {
				if errors.Is(err, domain.ErrNoInvoices) {
					return fmt.Errorf("%w: no se generó %s", err, output)
				}
				return err
			}

			if err := os.WriteFile(output, res.FPBatch, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", output, err)
			}
			fmt.Fprintf(out, "Lote %s\n", res.BatchID)
			fmt.Fprintf(out, "Facturas procesadas: %d (con error: %d)\n", len(res.Invoices), len(res.Failures))
			fmt.Fprintf(out, "Registros: %d\n", res.Records)
			fmt.Fprintf(out, "Archivo: %s (%d bytes)\n", output, len(res.FPBatch))

			if txtPath != "" {
				if err := writeText(txtPath, res); err != nil {
					return err
				}
				fmt.Fprintf(out, "TXT: %s\n", txtPath)
			}

			printReport(out, res.Validation.Errors, res.Validation.Warnings)
			if strict && !res.Validation.OK {
				return fmt.Errorf("el FPBATCH generado no pasó la validación (%d errores)", len(res.Validation.Errors))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "FPBATCH.txt", "archivo FPBATCH de salida (ISO-8859-1, CRLF)")
	cmd.Flags().StringVar(&txtPath, "txt", "", "además escribe la variante TXT legible en esta ruta")
	cmd.Flags().BoolVar(&strict, "strict", false, "termina con error si la validación encuentra errores")
	return cmd
}

func writeText(path string, res *conversion.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear %s: %w", path, err)
	}
	if err := txt.NewGenerator().Write(f, res.Invoices); err != nil {
		f.Close()
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	return f.Close()
}

func printFailures(w io.Writer, failures []conversion.FileError) {
	for _, f := range failures {
		fmt.Fprintf(w, "ERROR %s: %s\n", f.File, f.Message)
	}
}

func printReport(w io.Writer, errs, warnings []string) {
	if len(errs) == 0 {
		fmt.Fprintln(w, "Validación: sin errores")
	} else {
		fmt.Fprintf(w, "Validación: %d errores\n", len(errs))
		for _, e := range errs {
			fmt.Fprintln(w, "  -", e)
		}
	}
	for _, wn := range warnings {
		fmt.Fprintln(w, "  advertencia:", wn)
	}
}
