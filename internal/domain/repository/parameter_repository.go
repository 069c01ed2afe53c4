package repository

import (
	"context"

	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
)

// ParameterRepository define el puerto de lectura de la parametrización (DIP).
// La implementación vive en infrastructure (Excel, YAML). Load nunca debe dejar
// el lote sin tablas: ante fuente ausente o ilegible devuelve los valores por defecto.
type ParameterRepository interface {
	Load(ctx context.Context) (*entity.ParameterTables, error)
}
