// Package dian lee las facturas electrónicas UBL 2.1 de la DIAN (Invoice o AttachedDocument
// que la contiene) y las normaliza al modelo de dominio.
package dian

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/fpbatch-converter/internal/domain"
	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
	"github.com/jhoicas/fpbatch-converter/pkg/logger"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// embeddedXML texto que parece un documento XML completo (declaración o raíz UBL conocida).
var embeddedXML = regexp.MustCompile(`<\?xml|<([A-Za-z0-9_.-]+:)?(Invoice|AttachedDocument|ApplicationResponse)[\s>/]`)

// Nombres aceptados para los bloques de emisor y adquiriente.
var (
	supplierBlocks = []string{"AccountingSupplierParty", "SupplierParty", "AccountingSupplier"}
	customerBlocks = []string{"AccountingCustomerParty", "CustomerParty", "AccountingCustomer"}
)

// Extractor convierte bytes XML en entity.Invoice. No guarda estado; es seguro para uso concurrente.
type Extractor struct {
	log *logger.Logger
}

// NewExtractor crea el extractor. log recibe el detalle de documentos embebidos que no se pudieron leer.
func NewExtractor(log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{log: log}
}

// Extract parsea el XML, expande los documentos embebidos como texto (CDATA del AttachedDocument),
// ubica el nodo Invoice y extrae sus campos como texto recortado.
// Los errores envuelven domain.ErrExtraction.
func (e *Extractor) Extract(raw []byte) (*entity.Invoice, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = decodeCharset
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: XML mal formado: %w", domain.ErrExtraction, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: documento sin elemento raíz", domain.ErrExtraction)
	}

	e.expandEmbedded(root)

	inv := locateInvoice(root)
	if inv == nil {
		return nil, fmt.Errorf("%w: no se encontró la etiqueta Invoice en el XML", domain.ErrExtraction)
	}
	return buildInvoice(inv), nil
}

// decodeCharset soporta los juegos de caracteres de un solo byte que usan algunos proveedores.
func decodeCharset(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1", "l1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-15", "latin-9":
		return transform.NewReader(input, charmap.ISO8859_15.NewDecoder()), nil
	}
	return input, nil
}

// sameCharset el texto embebido ya está decodificado aunque su declaración diga otra cosa.
func sameCharset(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}

// expandEmbedded reemplaza el texto de cada hoja que contenga un documento XML por su árbol
// y sigue buscando dentro de él. Si el texto no parsea se deja como está.
func (e *Extractor) expandEmbedded(el *etree.Element) {
	kids := el.ChildElements()
	if len(kids) == 0 {
		text := charData(el)
		if !embeddedXML.MatchString(text) {
			return
		}
		sub := etree.NewDocument()
		sub.ReadSettings.CharsetReader = sameCharset
		if err := sub.ReadFromString(strings.TrimSpace(text)); err != nil || sub.Root() == nil {
			e.log.Debug().Str("element", el.Tag).Err(err).Msg("texto con forma de XML no parseable; se conserva como texto")
			return
		}
		for len(el.Child) > 0 {
			el.RemoveChildAt(0)
		}
		nested := sub.Root()
		el.AddChild(nested)
		e.expandEmbedded(nested)
		return
	}
	for _, k := range kids {
		e.expandEmbedded(k)
	}
}

// locateInvoice la raíz si es la factura; si no, el primer descendiente cuyo nombre termine en "invoice".
func locateInvoice(root *etree.Element) *etree.Element {
	if strings.HasSuffix(localName(root.Tag), "invoice") {
		return root
	}
	return findSuffix(root, "invoice")
}

func buildInvoice(inv *etree.Element) *entity.Invoice {
	out := &entity.Invoice{
		Number:   value(child(inv, "ID")),
		UUID:     value(child(inv, "UUID")),
		Date:     value(child(inv, "IssueDate")),
		Time:     value(child(inv, "IssueTime")),
		Supplier: buildParty(child(inv, supplierBlocks...)),
		Customer: buildParty(child(inv, customerBlocks...)),
		Items:    []entity.LineItem{},
	}

	if payable := descend(inv, "LegalMonetaryTotal", "PayableAmount"); payable != nil {
		out.Total = strings.TrimSpace(charData(payable))
		out.Currency = attr(payable, "currencyID")
	}
	if out.Currency == "" {
		out.Currency = value(child(inv, "DocumentCurrencyCode"))
	}

	for _, tt := range children(inv, "TaxTotal") {
		out.TaxTotals = append(out.TaxTotals, entity.TaxTotal{
			Amount:   strings.TrimSpace(charData(child(tt, "TaxAmount"))),
			SchemeID: value(descend(tt, "TaxSubtotal", "TaxCategory", "TaxScheme", "ID")),
		})
	}

	for _, line := range children(inv, "InvoiceLine") {
		out.Items = append(out.Items, buildLine(line))
	}
	return out
}

// buildParty Party dentro del bloque (o el bloque mismo si no trae Party).
func buildParty(block *etree.Element) entity.Party {
	if block == nil {
		return entity.Party{}
	}
	party := child(block, "Party")
	if party == nil {
		party = block
	}

	name := value(descend(party, "PartyName", "Name"))
	if name == "" {
		name = value(child(party, "PartyName"))
	}
	if name == "" {
		name = value(descend(party, "PartyTaxScheme", "RegistrationName"))
	}
	if name == "" {
		name = value(descend(party, "PartyLegalEntity", "RegistrationName"))
	}

	nit := value(descend(party, "PartyTaxScheme", "CompanyID"))
	if nit == "" {
		nit = value(descend(party, "PartyLegalEntity", "CompanyID"))
	}

	city := value(descend(party, "PhysicalLocation", "Address", "CityName"))
	if city == "" {
		city = value(descend(party, "PartyTaxScheme", "RegistrationAddress", "CityName"))
	}

	return entity.Party{Name: name, NIT: nit, City: city}
}

func buildLine(line *etree.Element) entity.LineItem {
	desc := value(descend(line, "Item", "Description"))
	if desc == "" {
		desc = value(descend(line, "Item", "Name"))
	}

	qty := child(line, "InvoicedQuantity")

	var price string
	if p := child(line, "Price"); p != nil {
		for _, c := range p.ChildElements() {
			if strings.HasSuffix(localName(c.Tag), "priceamount") {
				price = strings.TrimSpace(charData(c))
				break
			}
		}
	}

	return entity.LineItem{
		Description: desc,
		Quantity:    strings.TrimSpace(charData(qty)),
		Unit:        attr(qty, "unitCode"),
		UnitPrice:   price,
		LineTotal:   strings.TrimSpace(charData(child(line, "LineExtensionAmount"))),
	}
}
