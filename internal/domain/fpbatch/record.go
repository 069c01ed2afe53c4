package fpbatch

import (
	"fmt"
	"unicode/utf8"
)

// record línea de RecordLength posiciones en runas; al escribir el archivo cada runa
// se convierte en un byte ISO-8859-1.
type record struct {
	data []rune
}

func newRecord() *record {
	d := make([]rune, RecordLength)
	for i := range d {
		d[i] = ' '
	}
	return &record{data: d}
}

// put coloca s en las posiciones [start, end] (1-based, inclusivas).
// s debe ocupar exactamente ese ancho: los formateadores ya rellenan y truncan,
// así que cualquier diferencia es un error de programación.
func (r *record) put(start, end int, s string) {
	width := end - start + 1
	if start < 1 || end > RecordLength || width < 1 {
		panic(fmt.Sprintf("fpbatch: posiciones fuera de rango [%d,%d]", start, end))
	}
	if n := utf8.RuneCountInString(s); n != width {
		panic(fmt.Sprintf("fpbatch: campo [%d,%d] espera %d posiciones, recibió %d (%q)", start, end, width, n, s))
	}
	copy(r.data[start-1:end], []rune(s))
}

func (r *record) String() string { return string(r.data) }
