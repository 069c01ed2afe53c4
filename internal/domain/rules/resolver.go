// Package rules deriva los datos contables del FPBATCH (empresa, centro de operación,
// servicio, cuenta por pagar) a partir de la factura y la parametrización.
// Regla de desempate en todas las búsquedas: gana la primera fila en el orden de la tabla.
package rules

import (
	"regexp"
	"strings"

	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
	"github.com/jhoicas/fpbatch-converter/pkg/dian"
)

// Valores de último recurso.
const (
	DefaultCentroOperacion = "001"
	DefaultCuentaCxP       = "00000000"
	ServicioNoClasificado  = "NO CLASIFICADO"
)

// stopWords palabras que no aportan iniciales a la sigla heurística (se comparan en mayúsculas).
var stopWords = map[string]bool{
	"&": true, "S.A.S.": true, "SAS": true, "LTDA": true, "S.": true, "A.": true, "LTDA.": true, "Y": true,
}

var (
	reSpaces    = regexp.MustCompile(`\s+`)
	reDashes    = regexp.MustCompile(`[–—]`)
	reDashSpace = regexp.MustCompile(`\s*-\s*`)
	reDotComma  = regexp.MustCompile(`[.,]`)
)

type empresaRule struct {
	re    *regexp.Regexp
	sigla string
}

type servicioRule struct {
	re          *regexp.Regexp
	codigo      string
	descripcion string
}

// Resolver aplica las reglas de negocio sobre tablas inmutables. Es seguro para uso concurrente.
type Resolver struct {
	tables    *entity.ParameterTables
	settings  entity.Settings
	empresas  []empresaRule
	servicios []servicioRule
}

// NewResolver compila una sola vez las regex de empresas y servicios.
// Una regex mal formada descarta solo esa fila; las demás reglas siguen aplicando.
func NewResolver(tables *entity.ParameterTables) *Resolver {
	r := &Resolver{tables: tables, settings: tables.Settings()}
	for _, e := range tables.Empresas {
		if e.RazonSocialRegex == "" || e.Sigla == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + e.RazonSocialRegex)
		if err != nil {
			continue
		}
		r.empresas = append(r.empresas, empresaRule{re: re, sigla: e.Sigla})
	}
	for _, s := range tables.Servicios {
		if s.Regex == "" || s.Codigo == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + s.Regex)
		if err != nil {
			continue
		}
		r.servicios = append(r.servicios, servicioRule{re: re, codigo: s.Codigo, descripcion: s.Descripcion})
	}
	return r
}

// Settings configuración escalar usada por el codificador.
func (r *Resolver) Settings() entity.Settings {
	return r.settings
}

// DetectEmpresa resuelve la sigla de la empresa contable:
// 1) NIT exacto (solo dígitos), 2) primera regex de razón social que coincida,
// 3) heurística con las iniciales de las dos primeras palabras significativas.
func (r *Resolver) DetectEmpresa(nit, razonSocial string) string {
	if e, ok := r.tables.EmpresaByNIT(dian.Digits(nit)); ok && e.Sigla != "" {
		return e.Sigla
	}
	for _, rule := range r.empresas {
		if rule.re.MatchString(razonSocial) {
			return rule.sigla
		}
	}
	return siglaHeuristica(razonSocial)
}

func siglaHeuristica(razonSocial string) string {
	var palabras []string
	for _, p := range strings.Fields(reDotComma.ReplaceAllString(razonSocial, "")) {
		if stopWords[strings.ToUpper(p)] {
			continue
		}
		palabras = append(palabras, p)
	}
	inicial := func(i int) string {
		if i >= len(palabras) {
			return "X"
		}
		return string([]rune(palabras[i])[0])
	}
	return strings.ToUpper(inicial(0) + inicial(1))
}

// NormalizeCity quita tildes, colapsa espacios, unifica guiones (– — -> -) sin espacios alrededor y pasa a mayúsculas.
func NormalizeCity(raw string) string {
	if raw == "" {
		return ""
	}
	c := dian.StripDiacritics(raw)
	c = reSpaces.ReplaceAllString(c, " ")
	c = reDashes.ReplaceAllString(c, "-")
	c = reDashSpace.ReplaceAllString(c, "-")
	return strings.ToUpper(strings.TrimSpace(c))
}

// DetectCostCenter centro de operación por (empresa, ciudad normalizada); "001" si no hay fila.
func (r *Resolver) DetectCostCenter(sigla, ciudad string) string {
	if sigla == "" || ciudad == "" {
		return DefaultCentroOperacion
	}
	for _, c := range r.tables.Ciudades {
		if strings.TrimSpace(c.Sigla) == sigla && strings.ToUpper(strings.TrimSpace(c.Ciudad)) == ciudad {
			if c.CentroOperacion == "" {
				return DefaultCentroOperacion
			}
			return c.CentroOperacion
		}
	}
	return DefaultCentroOperacion
}

// DetectService clasifica la descripción (sin tildes, minúsculas) con la primera regex que coincida.
// Sin coincidencia devuelve el servicio por defecto de la configuración y "NO CLASIFICADO".
func (r *Resolver) DetectService(descripcion string) (codigo, concepto string) {
	desc := strings.ToLower(strings.TrimSpace(dian.StripDiacritics(descripcion)))
	for _, rule := range r.servicios {
		if rule.re.MatchString(desc) {
			return rule.codigo, rule.descripcion
		}
	}
	return r.settings.CodigoServicioDefault, ServicioNoClasificado
}

// PayableAccount cuenta por pagar de la empresa; "00000000" si no está parametrizada.
func (r *Resolver) PayableAccount(sigla string) string {
	for _, c := range r.tables.Cuentas {
		if strings.TrimSpace(c.Sigla) == sigla {
			if c.CuentaCxP == "" {
				return DefaultCuentaCxP
			}
			return c.CuentaCxP
		}
	}
	return DefaultCuentaCxP
}
