package entity

// SourceFile archivo XML recibido (subido o leído de disco, o extraído de un ZIP).
type SourceFile struct {
	Name string
	Data []byte
}
