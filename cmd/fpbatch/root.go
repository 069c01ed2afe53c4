package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/fpbatch-converter/internal/application/conversion"
	"github.com/jhoicas/fpbatch-converter/internal/domain/repository"
	infradian "github.com/jhoicas/fpbatch-converter/internal/infrastructure/dian"
	"github.com/jhoicas/fpbatch-converter/internal/infrastructure/params"
	"github.com/jhoicas/fpbatch-converter/internal/infrastructure/txt"
	"github.com/jhoicas/fpbatch-converter/pkg/config"
	"github.com/jhoicas/fpbatch-converter/pkg/logger"
)

// cli estado compartido por los subcomandos. Se llena en PersistentPreRunE.
type cli struct {
	cfg *config.Config
	log *logger.Logger

	paramsPath string
	workers    int
	logLevel   string
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "fpbatch",
		Short: "Conversor de facturas electrónicas DIAN a FPBATCH (SIESA UNO 8.5C)",
		Long: `fpbatch lee facturas UBL 2.1 (Invoice o AttachedDocument, sueltas o dentro de ZIP)
y genera el plano FPBATCH de registros de 512 posiciones para la importación de
cuentas por pagar. La parametrización (empresas, ciudades, servicios, cuentas y
config) se toma de un libro Excel o un YAML; si falta se usan valores por defecto.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&c.paramsPath, "params", "", "libro .xlsx o .yaml de parametrización (por defecto FPBATCH_PARAMS_PATH)")
	f.IntVar(&c.workers, "workers", 0, "facturas procesadas en paralelo (por defecto FPBATCH_WORKERS)")
	f.StringVar(&c.logLevel, "log-level", "", "trace, debug, info, warn, error (por defecto LOG_LEVEL)")

	root.AddCommand(
		newConvertCmd(c),
		newValidateCmd(c),
		newTxtCmd(c),
		newTokenCmd(c),
		newParamsCmd(c),
		newVersionCmd(),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.paramsPath != "" {
		cfg.FPBatch.ParamsPath = c.paramsPath
	}
	if c.workers > 0 {
		cfg.FPBatch.Workers = c.workers
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	c.cfg = cfg
	c.log = logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		Out:   cmd.ErrOrStderr(),
	})
	return nil
}

func (c *cli) paramRepository() repository.ParameterRepository {
	return params.NewRepository(c.cfg.FPBatch.ParamsPath, c.log)
}

func (c *cli) useCase() *conversion.ConvertUseCase {
	return conversion.NewConvertUseCase(
		c.paramRepository(),
		infradian.NewExtractor(c.log),
		infradian.ZipReader{},
		txt.NewGenerator(),
		nil,
		c.log,
		c.cfg.FPBatch.Workers,
	)
}
