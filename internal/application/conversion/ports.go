package conversion

import (
	"time"

	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
)

// InvoiceExtractor lee un XML (Invoice o AttachedDocument) y devuelve la factura normalizada.
// Debe ser seguro para uso concurrente. Los errores envuelven domain.ErrExtraction.
type InvoiceExtractor interface {
	Extract(raw []byte) (*entity.Invoice, error)
}

// ArchiveExpander abre los contenedores (ZIP) y devuelve sus XML; un XML suelto vuelve tal cual.
type ArchiveExpander interface {
	Expand(f entity.SourceFile) ([]entity.SourceFile, error)
}

// TextExporter genera la variante TXT legible.
type TextExporter interface {
	Generate(invoices []entity.Invoice) []byte
}

// Recorder recibe el resumen de cada lote (métricas).
type Recorder interface {
	ObserveBatch(source string, invoices, failures, records int, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveBatch(string, int, int, int, time.Duration) {}
