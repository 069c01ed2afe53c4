package fpbatch_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
	"github.com/jhoicas/fpbatch-converter/internal/domain/fpbatch"
)

func encodeSample(t *testing.T, n int) []string {
	t.Helper()
	invoices := make([]entity.Invoice, 0, n)
	for i := 0; i < n; i++ {
		invoices = append(invoices, sampleInvoice("FEV10"+strings.Repeat("1", i+1)))
	}
	return newEncoder(defaultTables()).Encode(invoices)
}

// replaceAt sobrescribe el registro desde la posición start (1-based).
func replaceAt(line string, start int, value string) string {
	r := []rune(line)
	copy(r[start-1:], []rune(value))
	return string(r)
}

func TestValidate_SalidaDelCodificadorSinErrores(t *testing.T) {
	report := fpbatch.Validate(fpbatch.Join(encodeSample(t, 5)))

	assert.True(t, report.OK, "errores: %v", report.Errors)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
}

func TestValidate_ArchivoVacio(t *testing.T) {
	report := fpbatch.Validate("\r\n  \r\n")
	assert.False(t, report.OK)
	assert.Equal(t, []string{"Archivo vacío"}, report.Errors)
}

func TestValidate_LineaCortaYLongitud(t *testing.T) {
	lines := encodeSample(t, 1)
	lines[1] = lines[1][:300]
	lines = append(lines, "0000")

	report := fpbatch.Validate(fpbatch.Join(lines))
	require.False(t, report.OK)
	assert.Contains(t, report.Errors, "Línea 2: Longitud incorrecta. Esperado: 512, Obtenido: 300")
	assert.Contains(t, report.Errors, "Línea 4: Línea demasiado corta")
}

func TestValidate_TipoDesconocido(t *testing.T) {
	lines := encodeSample(t, 1)
	lines[2] = replaceAt(lines[2], 9, "07")

	report := fpbatch.Validate(fpbatch.Join(lines))
	assert.Contains(t, report.Errors, "Línea 3: Tipo de registro desconocido: '07'")
	assert.Contains(t, report.Errors, "Línea 3: Secuencia incorrecta. Esperado: 03, Obtenido: 07")
}

func TestValidate_TernaIncompleta(t *testing.T) {
	lines := encodeSample(t, 2)
	// Se elimina el 02 de la primera factura.
	lines = append(lines[:1], lines[2:]...)

	report := fpbatch.Validate(fpbatch.Join(lines))
	require.False(t, report.OK)
	assert.Contains(t, report.Errors, "Línea 2: Secuencia incorrecta. Esperado: 02, Obtenido: 03")
	assert.Contains(t, report.Errors, "Línea 3: Secuencia incompleta para consecutivo 00000001. Falta registro tipo 03")
}

func TestValidate_TernaFinalIncompleta(t *testing.T) {
	lines := encodeSample(t, 2)
	lines = lines[:5]

	report := fpbatch.Validate(fpbatch.Join(lines))
	assert.Contains(t, report.Errors, "Secuencia incompleta para consecutivo 00000002 al final del archivo. Falta registro tipo 03")
}

func TestValidate_ConsecutivoConSalto(t *testing.T) {
	lines := encodeSample(t, 2)
	for i := 3; i < 6; i++ {
		lines[i] = replaceAt(lines[i], 1, "00000003")
	}

	report := fpbatch.Validate(fpbatch.Join(lines))
	assert.Equal(t, []string{"Línea 4: Consecutivo fuera de orden. Esperado: 00000002, Obtenido: 00000003"}, report.Errors)
}

func TestValidate_TernaRepetida(t *testing.T) {
	lines := encodeSample(t, 1)
	lines = append(lines, lines...)

	report := fpbatch.Validate(fpbatch.Join(lines))
	require.False(t, report.OK)
	assert.Equal(t, []string{"Línea 4: Consecutivo fuera de orden. Esperado: 00000002, Obtenido: 00000001"}, report.Errors)
}

func TestValidate_CamposDelEncabezado(t *testing.T) {
	lines := encodeSample(t, 1)
	lines[0] = replaceAt(lines[0], 71, "Z")
	lines[0] = replaceAt(lines[0], 72, "Q")
	lines[0] = replaceAt(lines[0], 39, "20241315")
	lines[0] = replaceAt(lines[0], 24, strings.Repeat(" ", 13))

	report := fpbatch.Validate(fpbatch.Join(lines))
	assert.Contains(t, report.Errors, "Línea 1, Campo ESTADO: Valor inválido. Debe ser '1' (Facturado) o 'X' (Anulado). Valor: 'Z'")
	assert.Contains(t, report.Errors, "Línea 1, Campo NAT-CXP: Valor inválido. Debe ser 'C' (Factura) o 'D' (Nota Crédito). Valor: 'Q'")
	assert.Contains(t, report.Errors, "Línea 1, Campo FECHA-DOC: Mes inválido: 13")
	assert.Contains(t, report.Errors, "Línea 1, Campo COD-TER: Campo obligatorio vacío")
}

func TestValidate_CamposDelMovimiento(t *testing.T) {
	lines := encodeSample(t, 1)
	lines[2] = replaceAt(lines[2], 45, "0000000001000000.0")
	lines[2] = replaceAt(lines[2], 63, "000000000100000000")
	lines[2] = replaceAt(lines[2], 81, "12A45")
	lines[2] = replaceAt(lines[2], 18, "00A123")

	report := fpbatch.Validate(fpbatch.Join(lines))
	assert.Contains(t, report.Errors, "Línea 3, Campo PRECIO-UNI: Debe terminar en + o -. Valor: '0000000001000000.0'")
	assert.Contains(t, report.Errors, "Línea 3, Campo VALOR-BRUTO: Debe terminar en + o -. Valor: '000000000100000000'")
	assert.Contains(t, report.Errors, "Línea 3, Campo TASA-DSCTO-1: Formato incorrecto. Debe ser 5 dígitos. Valor: '12A45'")
	assert.Contains(t, report.Errors, "Línea 3, Campo NRO-DOCTO: Debe ser numérico. Valor: '00A123'")
}

func TestValidate_MontoConPunto(t *testing.T) {
	lines := encodeSample(t, 1)
	lines[2] = replaceAt(lines[2], 92, "000000000012345.6+")

	report := fpbatch.Validate(fpbatch.Join(lines))
	assert.Contains(t, report.Errors, "Línea 3, Campo VALOR-IVA: Parte numérica debe ser solo dígitos. Valor: '000000000012345.6+'")
}

func TestValidate_AnioFueraDeRangoEsAdvertencia(t *testing.T) {
	inv := sampleInvoice("FEV1")
	inv.Date = "1890-01-01"
	report := fpbatch.Validate(fpbatch.Join(newEncoder(defaultTables()).Encode([]entity.Invoice{inv})))

	assert.True(t, report.OK)
	assert.Equal(t, []string{
		"Línea 1, Campo FECHA-DOC: Año fuera de rango esperado: 1890",
		"Línea 1, Campo FECHA-DOC-PROV: Año fuera de rango esperado: 1890",
	}, report.Warnings)
}

func TestValidateLatin1(t *testing.T) {
	b, err := fpbatch.Latin1(encodeSample(t, 2))
	require.NoError(t, err)

	report, err := fpbatch.ValidateLatin1(b)
	require.NoError(t, err)
	assert.True(t, report.OK)
}
