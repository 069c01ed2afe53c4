package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FileErrorResponse falla de un archivo del lote.
type FileErrorResponse struct {
	File    string `json:"archivo"`
	Message string `json:"error"`
}

// BatchErrorResponse error de lote con el detalle por archivo (ej. ninguna factura válida).
type BatchErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  []FileErrorResponse `json:"errores"`
}
