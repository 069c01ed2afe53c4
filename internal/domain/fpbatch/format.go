// Package fpbatch genera y valida el archivo plano FPBATCH de cuentas por pagar
// (SIESA UNO 8.5C): registros de 512 posiciones, tres por factura (01, 02, 03).
package fpbatch

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fpbatch-converter/pkg/dian"
)

// RecordLength longitud fija de cada registro.
const RecordLength = 512

var hundred = decimal.NewFromInt(100)

// Alfa alinea a la izquierda, rellena con espacios y trunca a n caracteres.
func Alfa(value string, n int) string {
	if c := utf8.RuneCountInString(value); c < n {
		return value + strings.Repeat(" ", n-c)
	}
	return string([]rune(value)[:n])
}

// Num rellena con ceros a la izquierda y trunca a n caracteres (conserva los de la izquierda).
// No limpia la entrada: se espera que ya sean dígitos.
func Num(value string, n int) string {
	if c := utf8.RuneCountInString(value); c < n {
		return strings.Repeat("0", n-c) + value
	}
	return string([]rune(value)[:n])
}

// Mon monto sin punto decimal: n-3 enteros + 2 decimales + signo final.
// Mon(12345.6, 18) = "00000000001234560+".
func Mon(value decimal.Decimal, n int) string {
	return signed(value.Round(2), n-3, 2)
}

// Qty cantidad de ancho 13: 9 enteros + 3 decimales + signo.
func Qty(value decimal.Decimal) string {
	return signed(value.Round(3), 9, 3)
}

// Rate tasa de ancho 12: 9 enteros + 2 decimales + signo.
// Los decimales son round((v - entero) * 100); si dan 100 se acarrea al entero.
func Rate(value decimal.Decimal) string {
	sign := "+"
	if value.IsNegative() {
		sign = "-"
	}
	abs := value.Abs()
	enteros := abs.Truncate(0)
	decimales := abs.Sub(enteros).Mul(hundred).Round(0)
	if decimales.GreaterThanOrEqual(hundred) {
		enteros = enteros.Add(decimal.NewFromInt(1))
		decimales = decimal.Zero
	}
	return fit(padDigits(enteros.String(), 9)+fmt.Sprintf("%02d", decimales.IntPart())+sign, 12)
}

// signed parte entera rellena a intWidth + fracWidth decimales + signo. Como en el resto de
// campos, lo que exceda el ancho se corta por la derecha tras rellenar.
func signed(v decimal.Decimal, intWidth int, fracWidth int32) string {
	sign := "+"
	if v.IsNegative() {
		sign = "-"
	}
	s := v.Abs().StringFixed(fracWidth)
	entero, frac, _ := strings.Cut(s, ".")
	return fit(padDigits(entero, intWidth)+frac+sign, intWidth+int(fracWidth)+1)
}

func padDigits(digits string, n int) string {
	if len(digits) >= n {
		return digits
	}
	return strings.Repeat("0", n-len(digits)) + digits
}

func fit(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Fecha deja solo dígitos, rellena con ceros a la izquierda y corta a 8 (YYYYMMDD).
// Vacía produce "00000000".
func Fecha(raw string) string {
	d := dian.Digits(raw)
	if d == "" {
		return "00000000"
	}
	return Num(d, 8)
}

// ParseAmount interpreta un monto textual del XML. Vacío o inválido vale cero.
func ParseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
