package dian

import (
	"strings"

	"github.com/beevik/etree"
)

// localName nombre sin namespace y en minúsculas: "fe:Invoice" y "{urn:...}Invoice" -> "invoice".
func localName(tag string) string {
	if i := strings.LastIndex(tag, "}"); i >= 0 {
		tag = tag[i+1:]
	} else if i := strings.LastIndex(tag, ":"); i >= 0 {
		tag = tag[i+1:]
	}
	return strings.ToLower(tag)
}

// child primer hijo directo cuyo nombre local coincide con alguno de los candidatos.
// Los candidatos se prueban en orden; nil si ninguno existe.
func child(el *etree.Element, names ...string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, name := range names {
		want := strings.ToLower(name)
		for _, c := range el.ChildElements() {
			if localName(c.Tag) == want {
				return c
			}
		}
	}
	return nil
}

// descend desciende por hijos directos: descend(inv, "Item", "Description").
func descend(el *etree.Element, names ...string) *etree.Element {
	for _, n := range names {
		el = child(el, n)
		if el == nil {
			return nil
		}
	}
	return el
}

// children todos los hijos directos con ese nombre local, en orden de documento.
func children(el *etree.Element, name string) []*etree.Element {
	if el == nil {
		return nil
	}
	want := strings.ToLower(name)
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if localName(c.Tag) == want {
			out = append(out, c)
		}
	}
	return out
}

// findSuffix búsqueda en profundidad (preorden) del primer elemento cuyo nombre local termina en suffix.
func findSuffix(el *etree.Element, suffix string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if strings.HasSuffix(localName(c.Tag), suffix) {
			return c
		}
		if found := findSuffix(c, suffix); found != nil {
			return found
		}
	}
	return nil
}

// value valor escalar de un nodo: su texto; si no tiene, el primer atributo que no sea
// declaración de namespace; si tampoco, el texto del primer hijo que lo tenga. Siempre recortado.
func value(el *etree.Element) string {
	if el == nil {
		return ""
	}
	if t := strings.TrimSpace(charData(el)); t != "" {
		return t
	}
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		if v := strings.TrimSpace(a.Value); v != "" {
			return v
		}
	}
	for _, c := range el.ChildElements() {
		if t := strings.TrimSpace(charData(c)); t != "" {
			return t
		}
	}
	return ""
}

// attr atributo por nombre local, sin distinguir mayúsculas.
func attr(el *etree.Element, key string) string {
	if el == nil {
		return ""
	}
	want := strings.ToLower(key)
	for _, a := range el.Attr {
		if strings.ToLower(a.Key) == want {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

// charData concatena el texto directo (incluido CDATA) del elemento; "" si el es nil.
func charData(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	for _, tok := range el.Child {
		if cd, ok := tok.(*etree.CharData); ok {
			b.WriteString(cd.Data)
		}
	}
	return b.String()
}
