package params

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
	"github.com/jhoicas/fpbatch-converter/internal/domain/repository"
	"github.com/jhoicas/fpbatch-converter/pkg/dian"
	"github.com/jhoicas/fpbatch-converter/pkg/logger"
)

// yamlFile forma del archivo YAML. Una clave ausente usa la tabla por defecto;
// una lista vacía ([]) deja la tabla vacía.
type yamlFile struct {
	Empresas  []entity.Empresa  `yaml:"empresas"`
	Ciudades  []entity.Ciudad   `yaml:"ciudades"`
	Servicios []entity.Servicio `yaml:"servicios"`
	Cuentas   []entity.Cuenta   `yaml:"cuentas"`
	Config    map[string]string `yaml:"config"`
}

// YAMLRepository alternativa en texto plano al libro Excel (útil en despliegues y tests).
type YAMLRepository struct {
	path string
	log  *logger.Logger
}

// NewYAMLRepository crea el repositorio sobre la ruta del archivo.
func NewYAMLRepository(path string, log *logger.Logger) *YAMLRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &YAMLRepository{path: path, log: log}
}

// Load lee el YAML. Archivo ausente, ilegible o inválido -> tablas por defecto y aviso en el log.
func (r *YAMLRepository) Load(ctx context.Context) (*entity.ParameterTables, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.log.Warn().Str("path", r.path).Msg("parametrización no encontrada; usando valores por defecto")
		return Defaults(), nil
	}
	if err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("parametrización ilegible; usando valores por defecto")
		return Defaults(), nil
	}
	t, err := ParseYAML(b)
	if err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("parametrización inválida; usando valores por defecto")
		return Defaults(), nil
	}
	return t, nil
}

// ParseYAML arma las tablas desde el contenido YAML.
func ParseYAML(b []byte) (*entity.ParameterTables, error) {
	var y yamlFile
	if err := yaml.Unmarshal(b, &y); err != nil {
		return nil, fmt.Errorf("parametrización: YAML inválido: %w", err)
	}
	if y.Empresas == nil {
		y.Empresas = defaultEmpresas()
	}
	for i := range y.Empresas {
		y.Empresas[i].NIT = dian.Digits(y.Empresas[i].NIT)
	}
	if y.Ciudades == nil {
		y.Ciudades = defaultCiudades()
	}
	if y.Servicios == nil {
		y.Servicios = defaultServicios()
	}
	if y.Cuentas == nil {
		y.Cuentas = defaultCuentas()
	}
	if y.Config == nil {
		y.Config = defaultConfig()
	}
	return entity.NewParameterTables(y.Empresas, y.Ciudades, y.Servicios, y.Cuentas, y.Config), nil
}

// MarshalYAML serializa las tablas en el formato que lee ParseYAML.
func MarshalYAML(t *entity.ParameterTables) ([]byte, error) {
	b, err := yaml.Marshal(yamlFile{
		Empresas:  t.Empresas,
		Ciudades:  t.Ciudades,
		Servicios: t.Servicios,
		Cuentas:   t.Cuentas,
		Config:    t.Config,
	})
	if err != nil {
		return nil, fmt.Errorf("parametrización: serializar YAML: %w", err)
	}
	return b, nil
}

// NewRepository elige la implementación por extensión: .yaml/.yml -> YAML, vacío -> valores
// por defecto, cualquier otra -> libro Excel.
func NewRepository(path string, log *logger.Logger) repository.ParameterRepository {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLRepository(path, log)
	case "":
		if path == "" {
			return DefaultRepository{}
		}
	}
	return NewExcelRepository(path, log)
}
