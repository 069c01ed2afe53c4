package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fpbatch-converter/internal/domain/fpbatch"
	"github.com/jhoicas/fpbatch-converter/internal/infrastructure/params"
	"github.com/jhoicas/fpbatch-converter/pkg/jwt"
)

const invoiceXML = `<Invoice>
  <ID>FEV77</ID>
  <IssueDate>2024-05-02</IssueDate>
  <AccountingSupplierParty><Party>
    <PartyName><Name>Servicios Andinos</Name></PartyName>
    <PartyTaxScheme><CompanyID>901222333</CompanyID></PartyTaxScheme>
  </Party></AccountingSupplierParty>
  <AccountingCustomerParty><Party>
    <PartyName><Name>Hotel Valle</Name></PartyName>
    <PartyTaxScheme><CompanyID>800111222</CompanyID></PartyTaxScheme>
  </Party></AccountingCustomerParty>
  <LegalMonetaryTotal><PayableAmount currencyID="COP">1500</PayableAmount></LegalMonetaryTotal>
  <InvoiceLine>
    <InvoicedQuantity unitCode="EA">3</InvoicedQuantity>
    <LineExtensionAmount>1500</LineExtensionAmount>
    <Item><Description>Energía eléctrica</Description></Item>
    <Price><PriceAmount>500</PriceAmount></Price>
  </InvoiceLine>
</Invoice>`

// run ejecuta la CLI con los argumentos dados y devuelve la salida estándar.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestConvert_DirectorioYTXT(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "xml")
	require.NoError(t, os.Mkdir(in, 0o755))
	writeFile(t, in, "a.xml", invoiceXML)
	writeFile(t, in, "b.xml", "<Otro/>")
	writeFile(t, in, "notas.pdf", "%PDF")

	yamlPath := writeFile(t, dir, "params.yaml", `
empresas:
  - {nit: "800111222", razon_social_regex: "hotel", sigla_empresa: "HV"}
servicios:
  - {regex: "energia", codigo_servicio: "010", descripcion: "SERVICIOS PUBLICOS"}
`)
	output := filepath.Join(dir, "FPBATCH.txt")
	txtPath := filepath.Join(dir, "facturas.txt")

	out, err := run(t, "convert", in, "-o", output, "--txt", txtPath, "--params", yamlPath, "--strict")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Facturas procesadas: 1 (con error: 1)")
	assert.Contains(t, out, "ERROR b.xml:")
	assert.Contains(t, out, "Validación: sin errores")

	b, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Len(t, b, 3*(fpbatch.RecordLength+2))
	lines := strings.Split(string(b), "\r\n")
	assert.Equal(t, "0000000101HV", lines[0][:12])
	assert.Equal(t, "010", strings.TrimSpace(lines[2][23:31]), "servicio resuelto desde el YAML")

	text, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(text), "FACTURA|FEV77|2024-05-02|\n"))
}

func TestConvert_SinFacturas(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "x.xml", "<Otro/>")
	output := filepath.Join(dir, "FPBATCH.txt")

	out, err := run(t, "convert", p, "-o", output)
	require.Error(t, err)
	assert.Contains(t, out, "ERROR x.xml:")
	assert.NoFileExists(t, output)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "FPBATCH.txt")
	_, err := run(t, "convert", writeFile(t, dir, "a.xml", invoiceXML), "-o", output)
	require.NoError(t, err)

	out, err := run(t, "validate", output)
	require.NoError(t, err)
	assert.Contains(t, out, "sin errores")

	bad := writeFile(t, dir, "malo.txt", "0000000101corto\r\n")
	out, err = run(t, "validate", bad)
	assert.Error(t, err)
	assert.Contains(t, out, "Longitud incorrecta")
}

func TestTxt_SalidaEstandar(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "txt", writeFile(t, dir, "a.xml", invoiceXML), "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "ADQUIRIENTE|800111222|Hotel Valle\n")
	assert.Contains(t, out, "Energía eléctrica|3|EA|500|1500\n")
}

func TestParamsInitYShow(t *testing.T) {
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "p.xlsx")

	_, err := run(t, "params", "init", "-o", xlsx)
	require.NoError(t, err)
	_, err = run(t, "params", "init", "-o", xlsx)
	assert.Error(t, err, "no sobrescribe sin --force")

	out, err := run(t, "params", "show", "--params", xlsx)
	require.NoError(t, err)
	got, err := params.ParseYAML([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, params.Defaults(), got)

	yml := filepath.Join(dir, "p.yaml")
	_, err = run(t, "params", "init", "-o", yml)
	require.NoError(t, err)
	assert.FileExists(t, yml)
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	out, err := run(t, "token", "--user", "tesoreria")
	require.NoError(t, err)

	user, err := jwt.Parse("cli-secret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "tesoreria", user)

	t.Setenv("JWT_SECRET", "")
	_, err = run(t, "token", "--user", "tesoreria")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "fpbatch dev (none)\n", out)
}
