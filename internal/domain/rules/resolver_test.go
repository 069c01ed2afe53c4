package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
	"github.com/jhoicas/fpbatch-converter/internal/domain/rules"
)

func testTables() *entity.ParameterTables {
	return entity.NewParameterTables(
		[]entity.Empresa{
			{NIT: "805007280", RazonSocialRegex: `aladdin.*casino`, Sigla: "AH"},
			{NIT: "900111222", RazonSocialRegex: `(roto`, Sigla: "ZZ"},
			{NIT: "", RazonSocialRegex: `hotel(es)? del valle`, Sigla: "HV"},
		},
		[]entity.Ciudad{
			{Sigla: "AH", Ciudad: "CALI", CentroOperacion: "001"},
			{Sigla: "AH", Ciudad: "BOGOTA D.C.", CentroOperacion: "002"},
			{Sigla: "AH", Ciudad: "CALI", CentroOperacion: "099"},
		},
		[]entity.Servicio{
			{Regex: `(rotas`, Codigo: "999", Descripcion: "ROTA"},
			{Regex: `\b(arriendo|canon)\b`, Codigo: "001", Descripcion: "ARRENDAMIENTOS"},
			{Regex: `energia`, Codigo: "010", Descripcion: "SERVICIOS PUBLICOS"},
			{Regex: `canon`, Codigo: "777", Descripcion: "NO DEBE GANAR"},
		},
		[]entity.Cuenta{{Sigla: "AH", CuentaCxP: "23350501"}},
		map[string]string{entity.ParamCodigoServicioDefault: "050"},
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Detección de empresa: NIT exacto > regex de razón social > heurística.
// ──────────────────────────────────────────────────────────────────────────────

func TestDetectEmpresa_PorNIT(t *testing.T) {
	r := rules.NewResolver(testTables())
	// El NIT llega con puntos y dígito de verificación separado; solo cuentan los dígitos.
	assert.Equal(t, "AH", r.DetectEmpresa("805.007.280", "Cualquier Nombre"))
}

func TestDetectEmpresa_PorRegex(t *testing.T) {
	r := rules.NewResolver(testTables())
	assert.Equal(t, "AH", r.DetectEmpresa("1", "ALADDIN HOTEL Y CASINO S.A.S."))
	assert.Equal(t, "HV", r.DetectEmpresa("", "Hotel del Valle Ltda"))
}

func TestDetectEmpresa_Heuristica(t *testing.T) {
	r := rules.NewResolver(testTables())

	cases := []struct {
		name  string
		razon string
		want  string
	}{
		{"dos palabras", "Comercializadora Andina S.A.S.", "CA"},
		{"ignora conectores", "Y & Perez Gomez LTDA", "PG"},
		{"una palabra", "Inversiones", "IX"},
		{"vacío", "", "XX"},
		{"minúsculas", "tecnologia digital", "TD"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.DetectEmpresa("", tc.razon))
		})
	}
}

func TestNormalizeCity(t *testing.T) {
	assert.Equal(t, "BOGOTA D.C.", rules.NormalizeCity("  Bogotá   D.C. "))
	assert.Equal(t, "SANTA MARTA-MAGDALENA", rules.NormalizeCity("Santa Marta – Magdalena"))
	assert.Equal(t, "MEDELLIN", rules.NormalizeCity("medellín"))
	assert.Equal(t, "", rules.NormalizeCity(""))
}

func TestDetectCostCenter(t *testing.T) {
	r := rules.NewResolver(testTables())

	assert.Equal(t, "001", r.DetectCostCenter("AH", "CALI"), "gana la primera fila coincidente")
	assert.Equal(t, "002", r.DetectCostCenter("AH", rules.NormalizeCity("Bogotá D.C.")))
	assert.Equal(t, "001", r.DetectCostCenter("AH", "PASTO"))
	assert.Equal(t, "001", r.DetectCostCenter("", "CALI"))
	assert.Equal(t, "001", r.DetectCostCenter("AH", ""))
}

func TestDetectService(t *testing.T) {
	r := rules.NewResolver(testTables())

	code, label := r.DetectService("Canon de ARRIENDO local 5")
	assert.Equal(t, "001", code)
	assert.Equal(t, "ARRENDAMIENTOS", label)

	code, label = r.DetectService("Consumo de ENERGÍA marzo")
	assert.Equal(t, "010", code, "la descripción se compara sin tildes")
	assert.Equal(t, "SERVICIOS PUBLICOS", label)

	code, label = r.DetectService("honorarios")
	assert.Equal(t, "050", code)
	assert.Equal(t, rules.ServicioNoClasificado, label)
}

func TestDetectService_DefaultSinConfig(t *testing.T) {
	r := rules.NewResolver(entity.NewParameterTables(nil, nil, nil, nil, nil))
	code, label := r.DetectService("lo que sea")
	assert.Equal(t, "001", code)
	assert.Equal(t, "NO CLASIFICADO", label)
}

func TestPayableAccount(t *testing.T) {
	r := rules.NewResolver(testTables())
	assert.Equal(t, "23350501", r.PayableAccount("AH"))
	assert.Equal(t, rules.DefaultCuentaCxP, r.PayableAccount("QQ"))
}

func TestSettings_Defaults(t *testing.T) {
	r := rules.NewResolver(testTables())
	s := r.Settings()
	assert.Equal(t, "PA", s.TipoDocumento)
	assert.Equal(t, "C", s.NaturalezaCxP)
	assert.Equal(t, "050", s.CodigoServicioDefault)
}
