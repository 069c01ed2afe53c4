package fpbatch

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
	"github.com/jhoicas/fpbatch-converter/pkg/dian"
)

// Tipos de registro.
const (
	TypeHeader   = "01" // encabezado del documento
	TypeDetail   = "02" // notas del documento
	TypeMovement = "03" // movimiento de servicio
)

// Literales fijos del layout.
const (
	sucursalTercero = "00"
	estadoAprobado  = "1"
	ccostoServicio  = "1001    "
	proyectoVacio   = "0000000000"
	descuentoCero   = "00000"
)

// document valores derivados una vez por factura y compartidos por sus tres registros.
type document struct {
	seq       string
	empresa   string
	co        string
	tipoDocto string
	nroDocto  string
	nitEmisor string
	inv       *entity.Invoice
}

// putHeader posiciones 1-23, comunes a los tres tipos de registro.
func (d *document) putHeader(r *record, tipo string) {
	r.put(1, 8, d.seq)
	r.put(9, 10, tipo)
	r.put(11, 12, Alfa(d.empresa, 2))
	r.put(13, 15, Alfa(d.co, 3))
	r.put(16, 17, Alfa(d.tipoDocto, 2))
	r.put(18, 23, d.nroDocto)
}

func (e *Encoder) buildHeader(d *document) string {
	r := newRecord()
	d.putHeader(r, TypeHeader)

	numero := d.inv.Number
	fecha := Fecha(d.inv.Date)
	uno := Rate(decimal.NewFromInt(1))

	r.put(24, 36, Alfa(d.nitEmisor, 13))
	r.put(37, 38, sucursalTercero)
	r.put(39, 46, fecha)
	r.put(47, 50, Alfa(dian.StripDigits(numero), 4))
	r.put(51, 62, Alfa(dian.StripLetters(numero), 12))
	r.put(63, 70, fecha)
	r.put(71, 71, estadoAprobado)
	r.put(72, 72, Alfa(e.settings.NaturalezaCxP, 1))
	r.put(73, 132, Alfa(freeText(d.inv.FirstDescription()), 60))
	r.put(133, 134, Alfa("", 2)) // moneda: pesos
	r.put(135, 146, uno)         // tasa de conversión
	r.put(147, 158, uno)         // tasa de cambio
	r.put(159, 166, Alfa("", 8)) // documento alterno
	r.put(167, 174, Alfa(e.rules.PayableAccount(d.empresa), 8))
	return r.String()
}

// buildDetail las ocho notas de 60 posiciones (24-503) y el relleno van en blanco.
func (e *Encoder) buildDetail(d *document) string {
	r := newRecord()
	d.putHeader(r, TypeDetail)
	return r.String()
}

func (e *Encoder) buildMovement(d *document) string {
	r := newRecord()
	d.putHeader(r, TypeMovement)

	servicio, _ := e.rules.DetectService(d.inv.FirstDescription())
	tax := invoiceTax(d.inv)
	net := ParseAmount(d.inv.Total).Sub(tax)

	r.put(24, 31, Alfa(servicio, 8))
	r.put(32, 44, Qty(decimal.NewFromInt(1)))
	r.put(45, 62, Mon(net, 18)) // precio unitario
	r.put(63, 80, Mon(net, 18)) // valor bruto
	r.put(81, 85, descuentoCero)
	r.put(86, 90, descuentoCero)
	r.put(91, 91, " ")
	r.put(92, 109, Mon(tax, 18))
	r.put(110, 112, Alfa(d.co, 3))
	r.put(113, 120, ccostoServicio)
	r.put(121, 130, proyectoVacio)
	r.put(171, 183, Alfa(d.nitEmisor, 13))
	r.put(184, 185, sucursalTercero)
	return r.String()
}

// invoiceTax suma los TaxTotal de IVA del documento.
func invoiceTax(inv *entity.Invoice) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range inv.TaxTotals {
		if dian.IsIVA(t.SchemeID) {
			sum = sum.Add(ParseAmount(t.Amount))
		}
	}
	return sum
}

// freeText reemplaza los caracteres de control (saltos de línea incluidos) por espacios
// para que un texto libre no parta el registro.
func freeText(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
}
