package params

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
	"github.com/jhoicas/fpbatch-converter/pkg/dian"
	"github.com/jhoicas/fpbatch-converter/pkg/logger"
)

// Encabezados de columna por hoja, en el orden en que se escribe la plantilla.
var sheetColumns = map[string][]string{
	SheetEmpresas:  {"NIT", "RAZON_SOCIAL_REGEX", "SIGLA_EMPRESA"},
	SheetCiudades:  {"SIGLA_EMPRESA", "CIUDAD_NORMALIZADA", "CENTRO_OPERACION"},
	SheetServicios: {"REGEX", "CODIGO_SERVICIO", "DESCRIPCION"},
	SheetCuentas:   {"SIGLA_EMPRESA", "CUENTA_CXP"},
	SheetConfig:    {"PARAMETRO", "VALOR"},
}

var sheetOrder = []string{SheetEmpresas, SheetCiudades, SheetServicios, SheetCuentas, SheetConfig}

// ExcelRepository lee parametrizacion_empresas.xlsx (una hoja por tabla, primera fila = encabezados).
type ExcelRepository struct {
	path string
	log  *logger.Logger
}

// NewExcelRepository crea el repositorio sobre la ruta del libro.
func NewExcelRepository(path string, log *logger.Logger) *ExcelRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &ExcelRepository{path: path, log: log}
}

// Load abre el libro y arma las tablas. Un libro ausente o ilegible no es un error:
// se registra y se devuelven las tablas por defecto. Lo mismo aplica por hoja.
func (r *ExcelRepository) Load(ctx context.Context) (*entity.ParameterTables, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("parametrización no disponible; usando valores por defecto")
		return Defaults(), nil
	}
	defer f.Close()
	return r.fromWorkbook(f), nil
}

func (r *ExcelRepository) fromWorkbook(f *excelize.File) *entity.ParameterTables {
	var (
		empresas  = defaultEmpresas()
		ciudades  = defaultCiudades()
		servicios = defaultServicios()
		cuentas   = defaultCuentas()
		config    = defaultConfig()
	)

	if rows, ok := r.sheet(f, SheetEmpresas); ok {
		empresas = nil
		for _, row := range rows {
			empresas = append(empresas, entity.Empresa{
				NIT:              dian.Digits(row["NIT"]),
				RazonSocialRegex: row["RAZON_SOCIAL_REGEX"],
				Sigla:            row["SIGLA_EMPRESA"],
			})
		}
	}
	if rows, ok := r.sheet(f, SheetCiudades); ok {
		ciudades = nil
		for _, row := range rows {
			ciudades = append(ciudades, entity.Ciudad{
				Sigla:           row["SIGLA_EMPRESA"],
				Ciudad:          row["CIUDAD_NORMALIZADA"],
				CentroOperacion: row["CENTRO_OPERACION"],
			})
		}
	}
	if rows, ok := r.sheet(f, SheetServicios); ok {
		servicios = nil
		for _, row := range rows {
			servicios = append(servicios, entity.Servicio{
				Regex:       row["REGEX"],
				Codigo:      row["CODIGO_SERVICIO"],
				Descripcion: row["DESCRIPCION"],
			})
		}
	}
	if rows, ok := r.sheet(f, SheetCuentas); ok {
		cuentas = nil
		for _, row := range rows {
			cuentas = append(cuentas, entity.Cuenta{Sigla: row["SIGLA_EMPRESA"], CuentaCxP: row["CUENTA_CXP"]})
		}
	}
	if rows, ok := r.sheet(f, SheetConfig); ok {
		config = make(map[string]string, len(rows))
		for _, row := range rows {
			if p := row["PARAMETRO"]; p != "" {
				config[p] = row["VALOR"]
			}
		}
	}

	r.log.Info().
		Int("empresas", len(empresas)).
		Int("ciudades", len(ciudades)).
		Int("servicios", len(servicios)).
		Int("cuentas", len(cuentas)).
		Msg("parametrización cargada")
	return entity.NewParameterTables(empresas, ciudades, servicios, cuentas, config)
}

// sheet filas de la hoja como mapas encabezado -> valor recortado. ok=false si la hoja
// no existe o no se pudo leer (el llamador usa la tabla por defecto).
func (r *ExcelRepository) sheet(f *excelize.File, name string) ([]map[string]string, bool) {
	actual := ""
	for _, s := range f.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			actual = s
			break
		}
	}
	if actual == "" {
		r.log.Warn().Str("sheet", name).Msg("hoja no encontrada; usando fila por defecto")
		return nil, false
	}
	rows, err := f.GetRows(actual)
	if err != nil {
		r.log.Warn().Err(err).Str("sheet", name).Msg("hoja ilegible; usando fila por defecto")
		return nil, false
	}
	if len(rows) == 0 {
		return nil, true
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToUpper(strings.TrimSpace(h))
	}
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		blank := true
		for i, v := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			v = strings.TrimSpace(v)
			if v != "" {
				blank = false
			}
			rec[header[i]] = v
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out, true
}

// WriteWorkbook escribe un libro con las cinco hojas y sus encabezados en negrita,
// listo para editar. Sirve como plantilla inicial a partir de las tablas recibidas.
func WriteWorkbook(w io.Writer, t *entity.ParameterTables) error {
	f := excelize.NewFile()
	defer f.Close()

	rows := map[string][][]any{}
	for _, e := range t.Empresas {
		rows[SheetEmpresas] = append(rows[SheetEmpresas], []any{e.NIT, e.RazonSocialRegex, e.Sigla})
	}
	for _, c := range t.Ciudades {
		rows[SheetCiudades] = append(rows[SheetCiudades], []any{c.Sigla, c.Ciudad, c.CentroOperacion})
	}
	for _, s := range t.Servicios {
		rows[SheetServicios] = append(rows[SheetServicios], []any{s.Regex, s.Codigo, s.Descripcion})
	}
	for _, c := range t.Cuentas {
		rows[SheetCuentas] = append(rows[SheetCuentas], []any{c.Sigla, c.CuentaCxP})
	}
	for _, k := range []string{entity.ParamTipoDocumento, entity.ParamNaturalezaCxP, entity.ParamCodigoServicioDefault} {
		if v, ok := t.Config[k]; ok {
			rows[SheetConfig] = append(rows[SheetConfig], []any{k, v})
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("parametrización: estilo: %w", err)
	}
	// Todas las celdas como texto para que "001" no se convierta en 1.
	text, err := f.NewStyle(&excelize.Style{NumFmt: 49})
	if err != nil {
		return fmt.Errorf("parametrización: estilo: %w", err)
	}

	for i, name := range sheetOrder {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("parametrización: hoja %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("parametrización: hoja %s: %w", name, err)
		}

		cols := sheetColumns[name]
		last, _ := excelize.ColumnNumberToName(len(cols))
		if err := f.SetColStyle(name, "A:"+last, text); err != nil {
			return fmt.Errorf("parametrización: hoja %s: %w", name, err)
		}
		header := make([]any, len(cols))
		for j, c := range cols {
			header[j] = c
		}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return fmt.Errorf("parametrización: hoja %s: %w", name, err)
		}
		if err := f.SetCellStyle(name, "A1", last+"1", bold); err != nil {
			return fmt.Errorf("parametrización: hoja %s: %w", name, err)
		}
		for j, row := range rows[name] {
			cell, _ := excelize.CoordinatesToCellName(1, j+2)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return fmt.Errorf("parametrización: hoja %s: %w", name, err)
			}
		}
		if err := f.SetColWidth(name, "A", last, 24); err != nil {
			return fmt.Errorf("parametrización: hoja %s: %w", name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("parametrización: escribir libro: %w", err)
	}
	return nil
}
