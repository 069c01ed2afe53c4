package fpbatch

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Report resultado de validar un archivo FPBATCH. Los mensajes conservan el orden en que se detectan.
type Report struct {
	OK       bool     `json:"ok"`
	Errors   []string `json:"errores"`
	Warnings []string `json:"advertencias"`
}

var recordOrder = [3]string{TypeHeader, TypeDetail, TypeMovement}

type validator struct {
	errors   []string
	warnings []string
}

func (v *validator) errorf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) warnf(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

// Validate revisa el contenido (ya decodificado) campo por campo contra las tablas de posiciones
// y la estructura de ternas 01/02/03 con consecutivos 00000001..N. No se detiene en el primer hallazgo.
func Validate(content string) Report {
	v := &validator{}

	var lines []string
	for _, l := range strings.Split(content, LineSeparator) {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		v.errorf("Archivo vacío")
		return v.report()
	}

	v.structure(lines)

	for i, line := range lines {
		n := i + 1
		if utf8.RuneCountInString(line) < 10 {
			v.errorf("Línea %d: Línea demasiado corta", n)
			continue
		}
		tipo := slice(line, 9, 10)
		fields, ok := layouts[tipo]
		if !ok {
			v.errorf("Línea %d: Tipo de registro desconocido: '%s'", n, tipo)
			continue
		}
		v.record(line, n, tipo, fields)
	}
	return v.report()
}

// ValidateLatin1 decodifica el archivo en ISO-8859-1 y lo valida.
func ValidateLatin1(b []byte) (Report, error) {
	s, err := DecodeLatin1(b)
	if err != nil {
		return Report{}, err
	}
	return Validate(s), nil
}

func (v *validator) report() Report {
	r := Report{OK: len(v.errors) == 0, Errors: v.errors, Warnings: v.warnings}
	if r.Errors == nil {
		r.Errors = []string{}
	}
	if r.Warnings == nil {
		r.Warnings = []string{}
	}
	return r
}

// structure exige ternas (01, 02, 03) con el mismo consecutivo y consecutivos sin saltos.
func (v *validator) structure(lines []string) {
	current := ""
	idx := 0
	prev := 0
	for i, line := range lines {
		n := i + 1
		if utf8.RuneCountInString(line) < 10 {
			continue
		}
		seq := slice(line, 1, 8)
		tipo := slice(line, 9, 10)

		// Una terna completa cierra el consecutivo: el siguiente 01 debe traer prev+1.
		if seq != current || idx == 0 {
			if current != "" && idx != 0 {
				v.errorf("Línea %d: Secuencia incompleta para consecutivo %s. Falta registro tipo %s", n, current, recordOrder[idx])
			}
			if num, err := strconv.Atoi(seq); err == nil {
				if num != prev+1 {
					v.errorf("Línea %d: Consecutivo fuera de orden. Esperado: %08d, Obtenido: %s", n, prev+1, seq)
				}
				prev = num
			}
			current = seq
			idx = 0
		}

		if tipo != recordOrder[idx] {
			v.errorf("Línea %d: Secuencia incorrecta. Esperado: %s, Obtenido: %s", n, recordOrder[idx], tipo)
		}
		idx = (idx + 1) % len(recordOrder)
	}
	if current != "" && idx != 0 {
		v.errorf("Secuencia incompleta para consecutivo %s al final del archivo. Falta registro tipo %s", current, recordOrder[idx])
	}
}

func (v *validator) record(line string, n int, tipo string, fields []field) {
	if l := utf8.RuneCountInString(line); l != RecordLength {
		v.errorf("Línea %d: Longitud incorrecta. Esperado: %d, Obtenido: %d", n, RecordLength, l)
		return
	}
	for _, f := range fields {
		v.field(slice(line, f.start, f.end), f, n)
	}
	if tipo != TypeHeader {
		return
	}
	if estado := slice(line, 71, 71); estado != "1" && estado != "X" && estado != " " {
		v.errorf("Línea %d, Campo ESTADO: Valor inválido. Debe ser '1' (Facturado) o 'X' (Anulado). Valor: '%s'", n, estado)
	}
	if nat := slice(line, 72, 72); nat != "C" && nat != "D" && nat != " " {
		v.errorf("Línea %d, Campo NAT-CXP: Valor inválido. Debe ser 'C' (Factura) o 'D' (Nota Crédito). Valor: '%s'", n, nat)
	}
}

func (v *validator) field(value string, f field, n int) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if f.required {
			v.errorf("Línea %d, Campo %s: Campo obligatorio vacío", n, f.name)
		}
		return
	}
	switch f.kind {
	case kindNum:
		if !isDigits(trimmed) {
			v.errorf("Línea %d, Campo %s: Debe ser numérico. Valor: '%s'", n, f.name, value)
		}
	case kindFecha:
		v.fecha(value, f.name, n)
	case kindMon:
		if !hasSign(trimmed) {
			v.errorf("Línea %d, Campo %s: Debe terminar en + o -. Valor: '%s'", n, f.name, value)
		} else if !isDigits(trimmed[:len(trimmed)-1]) {
			v.errorf("Línea %d, Campo %s: Parte numérica debe ser solo dígitos. Valor: '%s'", n, f.name, value)
		}
	case kindCant:
		if !hasSign(trimmed) {
			v.errorf("Línea %d, Campo %s: Debe terminar en + o -. Valor: '%s'", n, f.name, value)
		} else if l := utf8.RuneCountInString(trimmed); l != 13 {
			v.errorf("Línea %d, Campo %s: Longitud incorrecta. Esperado: 13, Obtenido: %d", n, f.name, l)
		}
	case kindTasa:
		if len(trimmed) != 5 || !isDigits(trimmed) {
			v.errorf("Línea %d, Campo %s: Formato incorrecto. Debe ser 5 dígitos. Valor: '%s'", n, f.name, value)
		}
	}
}

func (v *validator) fecha(value, name string, n int) {
	if len(value) != 8 || !isDigits(value) {
		v.errorf("Línea %d, Campo %s: Formato incorrecto. Debe ser AAAAMMDD. Valor: '%s'", n, name, value)
		return
	}
	year, _ := strconv.Atoi(value[:4])
	month, _ := strconv.Atoi(value[4:6])
	day, _ := strconv.Atoi(value[6:8])
	if year < 1900 || year > 2100 {
		v.warnf("Línea %d, Campo %s: Año fuera de rango esperado: %d", n, name, year)
	}
	if month < 1 || month > 12 {
		v.errorf("Línea %d, Campo %s: Mes inválido: %d", n, name, month)
		return
	}
	if day < 1 || day > 31 {
		v.errorf("Línea %d, Campo %s: Día inválido: %d", n, name, day)
	}
}

// slice posiciones [start, end] (1-based) contadas en caracteres; "" si la línea es más corta.
func slice(line string, start, end int) string {
	r := []rune(line)
	if start > len(r) {
		return ""
	}
	if end > len(r) {
		end = len(r)
	}
	return string(r[start-1 : end])
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func hasSign(s string) bool {
	return strings.HasSuffix(s, "+") || strings.HasSuffix(s, "-")
}
