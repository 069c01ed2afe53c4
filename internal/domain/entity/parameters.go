package entity

// Empresa fila de la hoja "empresas": identifica la empresa contable (sigla) por NIT o razón social.
type Empresa struct {
	NIT              string `yaml:"nit"`
	RazonSocialRegex string `yaml:"razon_social_regex"`
	Sigla            string `yaml:"sigla_empresa"`
}

// Ciudad fila de la hoja "ciudades": centro de operación por (empresa, ciudad normalizada).
type Ciudad struct {
	Sigla           string `yaml:"sigla_empresa"`
	Ciudad          string `yaml:"ciudad_normalizada"`
	CentroOperacion string `yaml:"centro_operacion"`
}

// Servicio fila de la hoja "servicios": clasificación de la descripción por regex. El orden importa.
type Servicio struct {
	Regex       string `yaml:"regex"`
	Codigo      string `yaml:"codigo_servicio"`
	Descripcion string `yaml:"descripcion"`
}

// Cuenta fila de la hoja "cuentas": cuenta por pagar de cada empresa.
type Cuenta struct {
	Sigla     string `yaml:"sigla_empresa"`
	CuentaCxP string `yaml:"cuenta_cxp"`
}

// Parámetros escalares conocidos de la hoja "config".
const (
	ParamTipoDocumento         = "TIPO_DOCUMENTO"
	ParamNaturalezaCxP         = "NAT_CXP"
	ParamCodigoServicioDefault = "CODIGO_SERVICIO_DEFAULT"
)

// Settings configuración de negocio derivada de la hoja "config".
type Settings struct {
	TipoDocumento         string // TIPO-DOCTO del FPBATCH (ej. PA)
	NaturalezaCxP         string // C = factura, D = nota crédito
	CodigoServicioDefault string // servicio cuando ninguna regex coincide
}

// ParameterTables tablas de parametrización. Se cargan una vez por lote y no se modifican.
type ParameterTables struct {
	Empresas  []Empresa
	Ciudades  []Ciudad
	Servicios []Servicio
	Cuentas   []Cuenta
	Config    map[string]string

	empresasByNIT map[string]int
}

// NewParameterTables arma las tablas preservando el orden recibido y construye el índice por NIT.
// Ante NIT repetidos gana la primera fila.
func NewParameterTables(empresas []Empresa, ciudades []Ciudad, servicios []Servicio, cuentas []Cuenta, config map[string]string) *ParameterTables {
	t := &ParameterTables{
		Empresas:      empresas,
		Ciudades:      ciudades,
		Servicios:     servicios,
		Cuentas:       cuentas,
		Config:        make(map[string]string, len(config)),
		empresasByNIT: make(map[string]int, len(empresas)),
	}
	for k, v := range config {
		t.Config[k] = v
	}
	for i, e := range empresas {
		if e.NIT == "" {
			continue
		}
		if _, ok := t.empresasByNIT[e.NIT]; !ok {
			t.empresasByNIT[e.NIT] = i
		}
	}
	return t
}

// EmpresaByNIT búsqueda exacta por NIT (ya normalizado a dígitos).
func (t *ParameterTables) EmpresaByNIT(nit string) (Empresa, bool) {
	i, ok := t.empresasByNIT[nit]
	if !ok {
		return Empresa{}, false
	}
	return t.Empresas[i], true
}

// Settings valores de la hoja config con sus defaults (PA, C, 001).
func (t *ParameterTables) Settings() Settings {
	get := func(key, def string) string {
		if v, ok := t.Config[key]; ok && v != "" {
			return v
		}
		return def
	}
	return Settings{
		TipoDocumento:         get(ParamTipoDocumento, "PA"),
		NaturalezaCxP:         get(ParamNaturalezaCxP, "C"),
		CodigoServicioDefault: get(ParamCodigoServicioDefault, "001"),
	}
}
