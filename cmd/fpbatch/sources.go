package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
)

// readSources lee los archivos indicados. Un directorio aporta sus .xml y .zip (sin recursión),
// en orden alfabético.
func readSources(args []string) ([]entity.SourceFile, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if !e.IsDir() && (ext == ".xml" || ext == ".zip") {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no se encontraron archivos .xml o .zip")
	}

	files := make([]entity.SourceFile, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, entity.SourceFile{Name: filepath.Base(p), Data: b})
	}
	return files, nil
}
