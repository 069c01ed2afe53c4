// fpbatch convierte facturas electrónicas DIAN (XML o ZIP) en el plano FPBATCH de
// SIESA UNO 8.5C, valida planos existentes y genera la variante TXT legible.
//
// Uso:
//
//	fpbatch convert facturas/*.xml lote.zip -o FPBATCH.txt
//	fpbatch validate FPBATCH.txt
//	fpbatch txt facturas/ -o facturas.txt
//	fpbatch params init -o parametrizacion_empresas.xlsx
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
