package entity

// Invoice factura normalizada extraída del XML UBL/DIAN.
// Todos los valores escalares se guardan como texto recortado; la interpretación
// numérica y de fechas ocurre al codificar el FPBATCH.
type Invoice struct {
	Number     string     `json:"numero"`
	UUID       string     `json:"uuid,omitempty"` // CUFE
	Date       string     `json:"fecha"`
	Time       string     `json:"hora,omitempty"`
	Supplier   Party      `json:"proveedor"` // AccountingSupplierParty (emisor)
	Customer   Party      `json:"cliente"`   // AccountingCustomerParty (adquiriente)
	Total      string     `json:"total,omitempty"`    // LegalMonetaryTotal/PayableAmount
	Currency   string     `json:"currency,omitempty"` // @currencyID de PayableAmount
	TaxTotals  []TaxTotal `json:"impuestos,omitempty"`
	Items      []LineItem `json:"items"`
	SourceName string     `json:"archivo,omitempty"` // nombre del archivo de origen
}

// Party identidad de emisor o adquiriente. Nunca nil: campos vacíos si no se resolvieron.
type Party struct {
	Name string `json:"name"`
	NIT  string `json:"nit"`
	City string `json:"ciudad,omitempty"`
}

// TaxTotal un TaxTotal a nivel de documento (monto y código de esquema, ej. 01 = IVA).
type TaxTotal struct {
	Amount   string `json:"monto"`
	SchemeID string `json:"esquema,omitempty"`
}

// LineItem línea de factura (InvoiceLine). Campos faltantes quedan en "".
type LineItem struct {
	Description string `json:"descripcion"`
	Quantity    string `json:"cantidad"`
	Unit        string `json:"unidad"`
	UnitPrice   string `json:"precio_unitario"`
	LineTotal   string `json:"total_linea"`
}

// FirstDescription descripción de la primera línea ("" si no hay líneas).
func (inv *Invoice) FirstDescription() string {
	if len(inv.Items) == 0 {
		return ""
	}
	return inv.Items[0].Description
}
