// Package conversion orquesta el lote: expande ZIP, extrae cada factura en paralelo,
// resuelve las reglas de negocio, codifica el FPBATCH y lo valida.
package conversion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/fpbatch-converter/internal/domain"
	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
	"github.com/jhoicas/fpbatch-converter/internal/domain/fpbatch"
	"github.com/jhoicas/fpbatch-converter/internal/domain/repository"
	"github.com/jhoicas/fpbatch-converter/internal/domain/rules"
	"github.com/jhoicas/fpbatch-converter/pkg/logger"
)

// Origen del lote (etiqueta de métricas y logs).
const (
	SourceAPI = "api"
	SourceCLI = "cli"
)

// FileError falla de un archivo puntual; no detiene el lote.
type FileError struct {
	File    string `json:"archivo"`
	Message string `json:"error"`
}

// Result resultado de una conversión a FPBATCH.
type Result struct {
	BatchID    string
	Invoices   []entity.Invoice // en el orden de entrada
	Failures   []FileError
	Records    int
	FPBatch    []byte // ISO-8859-1, CRLF
	Validation fpbatch.Report
	Duration   time.Duration
}

// TextResult resultado de la exportación TXT.
type TextResult struct {
	BatchID  string
	Invoices []entity.Invoice
	Failures []FileError
	Text     []byte
}

// ConvertUseCase convierte lotes de XML/ZIP en FPBATCH o TXT.
type ConvertUseCase struct {
	params    repository.ParameterRepository
	extractor InvoiceExtractor
	archives  ArchiveExpander
	exporter  TextExporter
	recorder  Recorder
	log       *logger.Logger
	workers   int
}

// NewConvertUseCase construye el caso de uso. workers < 1 se toma como 1; recorder y log pueden ser nil.
func NewConvertUseCase(
	params repository.ParameterRepository,
	extractor InvoiceExtractor,
	archives ArchiveExpander,
	exporter TextExporter,
	recorder Recorder,
	log *logger.Logger,
	workers int,
) *ConvertUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if workers < 1 {
		workers = 1
	}
	return &ConvertUseCase{
		params:    params,
		extractor: extractor,
		archives:  archives,
		exporter:  exporter,
		recorder:  recorder,
		log:       log,
		workers:   workers,
	}
}

// Convert genera el FPBATCH del lote. Si ninguna factura se pudo extraer devuelve
// domain.ErrNoInvoices junto con un Result que solo trae las fallas por archivo.
func (uc *ConvertUseCase) Convert(ctx context.Context, source string, files []entity.SourceFile) (*Result, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no se recibieron archivos", domain.ErrInvalidInput)
	}
	start := time.Now()
	res := &Result{BatchID: uuid.NewString()}
	log := uc.log.WithStr("batch_id", res.BatchID)

	tables, err := uc.params.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar parametrización: %w", err)
	}

	res.Invoices, res.Failures, err = uc.extract(ctx, log, files)
	if err != nil {
		return nil, err
	}
	if len(res.Invoices) == 0 {
		res.Duration = time.Since(start)
		uc.recorder.ObserveBatch(source, 0, len(res.Failures), 0, res.Duration)
		log.Warn().Int("errors", len(res.Failures)).Msg("lote sin facturas válidas")
		return res, domain.ErrNoInvoices
	}

	enc := fpbatch.NewEncoder(rules.NewResolver(tables))
	lines := enc.Encode(res.Invoices)
	res.Records = len(lines)
	res.FPBatch, err = fpbatch.Latin1(lines)
	if err != nil {
		return nil, fmt.Errorf("codificar FPBATCH: %w", err)
	}
	res.Validation = fpbatch.Validate(fpbatch.Join(lines))
	res.Duration = time.Since(start)

	uc.recorder.ObserveBatch(source, len(res.Invoices), len(res.Failures), res.Records, res.Duration)
	log.Info().
		Str("source", source).
		Int("invoices", len(res.Invoices)).
		Int("errors", len(res.Failures)).
		Int("records", res.Records).
		Int("bytes", len(res.FPBatch)).
		Bool("valid", res.Validation.OK).
		Dur("duration", res.Duration).
		Msg("lote FPBATCH generado")
	return res, nil
}

// ExportText genera el TXT legible del lote, con el mismo manejo de fallas que Convert.
func (uc *ConvertUseCase) ExportText(ctx context.Context, files []entity.SourceFile) (*TextResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no se recibieron archivos", domain.ErrInvalidInput)
	}
	res := &TextResult{BatchID: uuid.NewString()}
	log := uc.log.WithStr("batch_id", res.BatchID)

	var err error
	res.Invoices, res.Failures, err = uc.extract(ctx, log, files)
	if err != nil {
		return nil, err
	}
	if len(res.Invoices) == 0 {
		return res, domain.ErrNoInvoices
	}
	res.Text = uc.exporter.Generate(res.Invoices)
	log.Info().Int("invoices", len(res.Invoices)).Int("errors", len(res.Failures)).Msg("TXT generado")
	return res, nil
}

// Validate revisa un FPBATCH ya generado (bytes ISO-8859-1).
func (uc *ConvertUseCase) Validate(content []byte) (fpbatch.Report, error) {
	if len(content) == 0 {
		return fpbatch.Report{}, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	return fpbatch.ValidateLatin1(content)
}

// extract expande los ZIP y extrae cada XML con un máximo de uc.workers en paralelo.
// Las facturas y las fallas salen en el orden de entrada.
func (uc *ConvertUseCase) extract(ctx context.Context, log *logger.Logger, files []entity.SourceFile) ([]entity.Invoice, []FileError, error) {
	type slot struct {
		src entity.SourceFile
		inv *entity.Invoice
		err error
	}
	var slots []slot
	for _, f := range files {
		expanded, err := uc.archives.Expand(f)
		if err != nil {
			slots = append(slots, slot{src: f, err: err})
			continue
		}
		for _, x := range expanded {
			slots = append(slots, slot{src: x})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i := range slots {
		if slots[i].err != nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			inv, err := uc.extractor.Extract(slots[i].src.Data)
			if err == nil {
				inv.SourceName = slots[i].src.Name
			}
			slots[i].inv, slots[i].err = inv, err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	invoices := make([]entity.Invoice, 0, len(slots))
	var failures []FileError
	for _, s := range slots {
		if s.err == nil {
			invoices = append(invoices, *s.inv)
			continue
		}
		switch {
		case errors.Is(s.err, domain.ErrExtraction):
			log.Warn().Err(s.err).Str("file", s.src.Name).Msg("factura descartada")
		case errors.Is(s.err, domain.ErrInvalidInput):
			log.Warn().Err(s.err).Str("file", s.src.Name).Msg("archivo comprimido ilegible")
		default:
			log.Error().Err(s.err).Str("file", s.src.Name).Msg("error inesperado al extraer")
		}
		failures = append(failures, FileError{File: s.src.Name, Message: s.err.Error()})
	}
	return invoices, failures, nil
}
