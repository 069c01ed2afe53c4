package dian

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/jhoicas/fpbatch-converter/internal/domain"
	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
)

var zipMagic = []byte("PK\x03\x04")

// IsZip indica si el archivo es un ZIP, por extensión o por firma.
func IsZip(name string, data []byte) bool {
	return strings.EqualFold(path.Ext(name), ".zip") || bytes.HasPrefix(data, zipMagic)
}

// ZipReader expande un archivo a sus XML. Implementa conversion.ArchiveExpander.
type ZipReader struct{}

// Expand devuelve las entradas .xml si el archivo es un ZIP; si no, el archivo tal cual.
func (ZipReader) Expand(f entity.SourceFile) ([]entity.SourceFile, error) {
	if !IsZip(f.Name, f.Data) {
		return []entity.SourceFile{f}, nil
	}
	return ReadXMLFromZip(f.Name, f.Data)
}

// ReadXMLFromZip lee en memoria las entradas cuyo nombre termina en .xml; ignora directorios y
// cualquier otro archivo. El nombre resultante es "zip/entrada".
func ReadXMLFromZip(name string, data []byte) ([]entity.SourceFile, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: zip %s: %w", domain.ErrInvalidInput, name, err)
	}
	var out []entity.SourceFile
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(zf.Name), ".xml") {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: zip %s: abrir %s: %w", domain.ErrInvalidInput, name, zf.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: zip %s: leer %s: %w", domain.ErrInvalidInput, name, zf.Name, err)
		}
		out = append(out, entity.SourceFile{Name: name + "/" + zf.Name, Data: b})
	}
	return out, nil
}
