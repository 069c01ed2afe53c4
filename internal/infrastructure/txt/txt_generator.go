// Package txt genera la representación plana legible de las facturas extraídas:
// un bloque delimitado por "|" por factura.
//
//	FACTURA|numero|fecha|hora
//	EMISOR|nit|nombre
//	ADQUIRIENTE|nit|nombre
//	TOTAL|total|moneda
//	ITEMS:
//	descripcion|cantidad|unidad|precio_unitario|total_linea
package txt

import (
	"bytes"
	"io"
	"strings"

	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
)

// Generator implementa el exportador TXT. Sin estado.
type Generator struct{}

// NewGenerator construye el generador.
func NewGenerator() *Generator { return &Generator{} }

// Invoice bloque de una factura, sin salto de línea final.
func (g *Generator) Invoice(inv *entity.Invoice) string {
	lines := []string{
		join("FACTURA", inv.Number, inv.Date, inv.Time),
		join("EMISOR", inv.Supplier.NIT, inv.Supplier.Name),
		join("ADQUIRIENTE", inv.Customer.NIT, inv.Customer.Name),
		join("TOTAL", inv.Total, inv.Currency),
		"ITEMS:",
	}
	for _, it := range inv.Items {
		lines = append(lines, join(it.Description, it.Quantity, it.Unit, it.UnitPrice, it.LineTotal))
	}
	return strings.Join(lines, "\n")
}

// Write escribe los bloques separados por una línea en blanco.
func (g *Generator) Write(w io.Writer, invoices []entity.Invoice) error {
	for i := range invoices {
		sep := "\n\n"
		if i == len(invoices)-1 {
			sep = "\n"
		}
		if _, err := io.WriteString(w, g.Invoice(&invoices[i])+sep); err != nil {
			return err
		}
	}
	return nil
}

// Generate contenido completo en UTF-8.
func (g *Generator) Generate(invoices []entity.Invoice) []byte {
	var buf bytes.Buffer
	_ = g.Write(&buf, invoices)
	return buf.Bytes()
}

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// join une con "|" reemplazando saltos de línea internos para no romper el bloque.
func join(fields ...string) string {
	for i, f := range fields {
		fields[i] = newlines.Replace(f)
	}
	return strings.Join(fields, "|")
}
