// Package dian contiene catálogos y utilidades de texto alineados al Anexo Técnico
// de Factura Electrónica de Venta DIAN (Colombia) v1.9.
package dian

// =============================================================================
// Tabla 11 - Tipos de Impuesto (Anexo 1.9 - 13.2.2)
// Se usan para decidir qué TaxTotal del documento se descuenta del total a pagar.
// =============================================================================

const (
	TaxCodeIVA     = "01" // IVA
	TaxCodeINC     = "04" // Impuesto Nacional al Consumo
	TaxCodeReteIVA = "05" // Retención sobre el IVA
)

// IsIVA indica si el código de esquema tributario corresponde a IVA.
// Un TaxTotal sin TaxScheme explícito se asume IVA (facturas de proveedores pequeños).
func IsIVA(schemeID string) bool {
	return schemeID == "" || schemeID == TaxCodeIVA
}
