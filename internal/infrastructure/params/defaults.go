// Package params carga las tablas de parametrización (empresas, ciudades, servicios, cuentas
// y config) desde un libro Excel o un YAML. Si la fuente o una de sus tablas falta se usan
// los valores por defecto de una sola fila.
package params

import (
	"context"

	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
)

// Nombres de hoja (y de clave en YAML).
const (
	SheetEmpresas  = "empresas"
	SheetCiudades  = "ciudades"
	SheetServicios = "servicios"
	SheetCuentas   = "cuentas"
	SheetConfig    = "config"
)

func defaultEmpresas() []entity.Empresa {
	return []entity.Empresa{{NIT: "805007280", RazonSocialRegex: `aladdin.*casino`, Sigla: "AH"}}
}

func defaultCiudades() []entity.Ciudad {
	return []entity.Ciudad{{Sigla: "AH", Ciudad: "CALI", CentroOperacion: "001"}}
}

func defaultServicios() []entity.Servicio {
	return []entity.Servicio{{Regex: `\b(arriendo|canon)\b`, Codigo: "001", Descripcion: "ARRENDAMIENTOS"}}
}

func defaultCuentas() []entity.Cuenta {
	return []entity.Cuenta{{Sigla: "AH", CuentaCxP: "00000000"}}
}

func defaultConfig() map[string]string {
	return map[string]string{
		entity.ParamTipoDocumento:         "PA",
		entity.ParamNaturalezaCxP:         "C",
		entity.ParamCodigoServicioDefault: "001",
	}
}

// Defaults tablas por defecto completas.
func Defaults() *entity.ParameterTables {
	return entity.NewParameterTables(defaultEmpresas(), defaultCiudades(), defaultServicios(), defaultCuentas(), defaultConfig())
}

// DefaultRepository siempre devuelve las tablas por defecto.
type DefaultRepository struct{}

// Load implementa repository.ParameterRepository.
func (DefaultRepository) Load(ctx context.Context) (*entity.ParameterTables, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Defaults(), nil
}
