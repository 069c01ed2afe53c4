package fpbatch

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
	"github.com/jhoicas/fpbatch-converter/internal/domain/rules"
	"github.com/jhoicas/fpbatch-converter/pkg/dian"
)

// LineSeparator separador de registros (también va después del último).
const LineSeparator = "\r\n"

// Rules reglas de negocio que consume el codificador (implementado por rules.Resolver).
type Rules interface {
	Settings() entity.Settings
	DetectEmpresa(nit, razonSocial string) string
	DetectCostCenter(sigla, ciudad string) string
	DetectService(descripcion string) (codigo, concepto string)
	PayableAccount(sigla string) string
}

// Encoder arma los registros FPBATCH. No guarda estado entre llamadas.
type Encoder struct {
	rules    Rules
	settings entity.Settings
}

// NewEncoder crea un codificador sobre las reglas (y la configuración) de un lote.
func NewEncoder(r Rules) *Encoder {
	return &Encoder{rules: r, settings: r.Settings()}
}

// EncodeInvoice los tres registros (01, 02, 03) de una factura con el número de secuencia dado (1-based).
func (e *Encoder) EncodeInvoice(seq int, inv *entity.Invoice) [3]string {
	d := e.document(seq, inv)
	return [3]string{e.buildHeader(d), e.buildDetail(d), e.buildMovement(d)}
}

// Encode registros de todas las facturas en el orden recibido; la secuencia es la posición (1..N).
func (e *Encoder) Encode(invoices []entity.Invoice) []string {
	lines := make([]string, 0, len(invoices)*3)
	for i := range invoices {
		recs := e.EncodeInvoice(i+1, &invoices[i])
		lines = append(lines, recs[:]...)
	}
	return lines
}

func (e *Encoder) document(seq int, inv *entity.Invoice) *document {
	// NIT del emisor para la búsqueda exacta; razón social del adquiriente para regex y heurística.
	empresa := e.rules.DetectEmpresa(inv.Supplier.NIT, inv.Customer.Name)
	ciudad := rules.NormalizeCity(inv.Customer.City)
	digits := dian.Digits(inv.Number)
	if len(digits) > 6 {
		digits = digits[len(digits)-6:]
	}
	return &document{
		seq:       Num(fmt.Sprint(seq), 8),
		empresa:   empresa,
		co:        e.rules.DetectCostCenter(empresa, ciudad),
		tipoDocto: e.settings.TipoDocumento,
		nroDocto:  Num(digits, 6),
		nitEmisor: freeText(inv.Supplier.NIT),
		inv:       inv,
	}
}

// Join une los registros con CRLF, incluido el final.
func Join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, LineSeparator) + LineSeparator
}

// WriteLatin1 escribe el archivo en ISO-8859-1. Las runas que el juego de caracteres no
// representa se reemplazan por el byte de sustitución, de modo que cada registro sigue
// ocupando RecordLength bytes.
func WriteLatin1(w io.Writer, lines []string) (int64, error) {
	enc := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	var written int64
	for _, l := range lines {
		b, err := enc.String(l + LineSeparator)
		if err != nil {
			return written, fmt.Errorf("fpbatch: codificando registro: %w", err)
		}
		n, err := io.WriteString(w, b)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Latin1 contenido completo del archivo en ISO-8859-1.
func Latin1(lines []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(lines) * (RecordLength + len(LineSeparator)))
	if _, err := WriteLatin1(&buf, lines); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeLatin1 convierte un archivo FPBATCH en ISO-8859-1 a texto.
func DecodeLatin1(b []byte) (string, error) {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("fpbatch: decodificando latin-1: %w", err)
	}
	return string(s), nil
}
