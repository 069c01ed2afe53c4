package fpbatch

// fieldKind tipo de dato de un campo según el instructivo de importación.
type fieldKind int

const (
	kindAlfa  fieldKind = iota // cualquier carácter
	kindNum                    // solo dígitos
	kindFecha                  // AAAAMMDD
	kindMon                    // dígitos + signo (15.2 + S)
	kindCant                   // dígitos + signo, 13 posiciones (9.3 + S)
	kindTasa                   // 5 dígitos (2.3)
)

// field posición de un campo (1-based, inclusiva).
type field struct {
	name     string
	start    int
	end      int
	kind     fieldKind
	required bool
}

// Tablas de campos por tipo de registro. Se mantienen separadas del codificador:
// son la referencia contra la que se revisa lo generado.
var headerFields = []field{
	{"NRO-REG", 1, 8, kindNum, true},
	{"TIPO-REG", 9, 10, kindNum, true},
	{"EMPRESA", 11, 12, kindAlfa, true},
	{"CO", 13, 15, kindAlfa, true},
	{"TIPO-DOCTO", 16, 17, kindAlfa, true},
	{"NRO-DOCTO", 18, 23, kindNum, true},
	{"COD-TER", 24, 36, kindAlfa, true},
	{"SUC-TER", 37, 38, kindAlfa, true},
	{"FECHA-DOC", 39, 46, kindFecha, true},
	{"PREFIJO-PROV", 47, 50, kindAlfa, false},
	{"NRO-PROV", 51, 62, kindAlfa, true},
	{"FECHA-DOC-PROV", 63, 70, kindFecha, true},
	{"ESTADO", 71, 71, kindAlfa, true},
	{"NAT-CXP", 72, 72, kindAlfa, true},
	{"DETALLE", 73, 132, kindAlfa, false},
	{"MONEDA", 133, 134, kindAlfa, false},
	{"TASA-CONVER", 135, 146, kindMon, false},
	{"TASA-CAMBIO", 147, 158, kindMon, false},
	{"DCTO-ALT", 159, 166, kindAlfa, false},
	{"CUENTA-CXP", 167, 174, kindAlfa, false},
	{"FILLER", 175, 512, kindAlfa, false},
}

var detailFields = []field{
	{"NRO-REG", 1, 8, kindNum, true},
	{"TIPO-REG", 9, 10, kindNum, true},
	{"EMPRESA", 11, 12, kindAlfa, true},
	{"CO", 13, 15, kindAlfa, true},
	{"TIPO-DOCTO", 16, 17, kindAlfa, true},
	{"NRO-DOCTO", 18, 23, kindNum, true},
	{"DETALLE-1", 24, 83, kindAlfa, false},
	{"DETALLE-2", 84, 143, kindAlfa, false},
	{"DETALLE-3", 144, 203, kindAlfa, false},
	{"DETALLE-4", 204, 263, kindAlfa, false},
	{"DETALLE-5", 264, 323, kindAlfa, false},
	{"DETALLE-6", 324, 383, kindAlfa, false},
	{"DETALLE-7", 384, 443, kindAlfa, false},
	{"DETALLE-8", 444, 503, kindAlfa, false},
	{"FILLER", 504, 512, kindAlfa, false},
}

var movementFields = []field{
	{"NRO-REG", 1, 8, kindNum, true},
	{"TIPO-REG", 9, 10, kindNum, true},
	{"EMPRESA", 11, 12, kindAlfa, true},
	{"CO", 13, 15, kindAlfa, true},
	{"TIPO-DOCTO", 16, 17, kindAlfa, true},
	{"NRO-DOCTO", 18, 23, kindNum, true},
	{"SERVICIO", 24, 31, kindAlfa, true},
	{"CANTIDAD", 32, 44, kindCant, true},
	{"PRECIO-UNI", 45, 62, kindMon, false},
	{"VALOR-BRUTO", 63, 80, kindMon, false},
	{"TASA-DSCTO-1", 81, 85, kindTasa, false},
	{"TASA-DSCTO-2", 86, 90, kindTasa, false},
	{"COD-IMPUESTO", 91, 91, kindAlfa, false},
	{"VALOR-IVA", 92, 109, kindMon, false},
	{"CO", 110, 112, kindAlfa, false},
	{"CCOSTO", 113, 120, kindAlfa, false},
	{"PROYECTO", 121, 130, kindAlfa, false},
	{"DETALLE", 131, 170, kindAlfa, false},
	{"TERCERO-COD", 171, 183, kindAlfa, false},
	{"TERCERO-SUC", 184, 185, kindAlfa, false},
	{"DESC-1", 186, 245, kindAlfa, false},
	{"DESC-2", 246, 305, kindAlfa, false},
	{"DESC-3", 306, 365, kindAlfa, false},
	{"DESC-4", 366, 425, kindAlfa, false},
	{"DESC-PROYEC", 426, 465, kindAlfa, false},
	{"FECINI-PROYEC", 466, 473, kindFecha, false},
	{"FILLER", 474, 512, kindAlfa, false},
}

var layouts = map[string][]field{
	TypeHeader:   headerFields,
	TypeDetail:   detailFields,
	TypeMovement: movementFields,
}
