package dto

// InvoiceSummary fila del resumen por factura.
type InvoiceSummary struct {
	File      string `json:"archivo"`
	Number    string `json:"numero"`
	Date      string `json:"fecha"`
	Supplier  string `json:"proveedor"`
	NIT       string `json:"nit"`
	Customer  string `json:"cliente"`
	Total     string `json:"total"`
	Currency  string `json:"moneda,omitempty"`
	LineCount int    `json:"items"`
}

// ValidationResponse resultado del validador de formato.
type ValidationResponse struct {
	OK       bool     `json:"ok"`
	Errors   []string `json:"errores"`
	Warnings []string `json:"advertencias"`
}

// ConvertResponse respuesta de POST /api/fpbatch (sin ?download).
// Content lleva el FPBATCH en base64 (bytes ISO-8859-1).
type ConvertResponse struct {
	BatchID    string              `json:"batch_id"`
	Invoices   int                 `json:"facturas"`
	Records    int                 `json:"registros"`
	Bytes      int                 `json:"bytes"`
	DurationMS int64               `json:"duracion_ms"`
	Summary    []InvoiceSummary    `json:"resumen"`
	Errors     []FileErrorResponse `json:"errores"`
	Validation ValidationResponse  `json:"validacion"`
	FileName   string              `json:"archivo"`
	Content    []byte              `json:"contenido"`
}
