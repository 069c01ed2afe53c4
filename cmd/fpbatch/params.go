package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/fpbatch-converter/internal/infrastructure/params"
)

func newParamsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Parametrización de empresas, ciudades, servicios y cuentas",
	}
	cmd.AddCommand(newParamsInitCmd(), newParamsShowCmd(c))
	return cmd
}

func newParamsInitCmd() *cobra.Command {
	var (
		output string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Escribe una plantilla con los valores por defecto (.xlsx o .yaml según la extensión)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(output); err == nil && !force {
				return fmt.Errorf("%s ya existe (use --force para sobrescribir)", output)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := writeTemplate(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plantilla escrita en %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "parametrizacion_empresas.xlsx", "ruta de la plantilla")
	cmd.Flags().BoolVar(&force, "force", false, "sobrescribe si ya existe")
	return cmd
}

// writeTemplate escribe las tablas por defecto como YAML o como libro Excel según la extensión.
func writeTemplate(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err := params.MarshalYAML(params.Defaults())
		if err != nil {
			return err
		}
		return os.WriteFile(path, b, 0o644)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := params.WriteWorkbook(f, params.Defaults()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newParamsShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Muestra en YAML la parametrización efectiva (con valores por defecto aplicados)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := c.paramRepository().Load(cmd.Context())
			if err != nil {
				return err
			}
			b, err := params.MarshalYAML(tables)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
