package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductKey identifies a panel variant by family and thickness.
//
// Lookup is always by this structured key (or by explicit SKU); free-form
// string matching against composite names is deliberately not supported.
type ProductKey struct {
	Familia   string
	EspesorMM int
}

func (k ProductKey) String() string {
	return fmt.Sprintf("%s_%d", k.Familia, k.EspesorMM)
}

// Product is a sellable panel variant as loaded from the catalog.
//
// The catalog is the single source of truth; products are never mutated by
// calculation code. Prices are stored IVA-excluded per m2 unless
// iva_incluido says otherwise.
type Product struct {
	SKU         string          `json:"sku"`
	Familia     string          `json:"familia"`
	EspesorMM   int             `json:"espesor_mm"`
	PrecioM2    decimal.Decimal `json:"precio_m2"`
	IVAIncluido bool            `json:"iva_incluido"`
	AnchoUtilM  float64         `json:"ancho_util_m"`
	LargoMinM   float64         `json:"largo_min_m"`
	LargoMaxM   float64         `json:"largo_max_m"`
	Moneda      string          `json:"moneda"`
}

func (p Product) Key() ProductKey {
	return ProductKey{Familia: p.Familia, EspesorMM: p.EspesorMM}
}

// PrecioUnitario returns the per-m2 price with its tax state attached.
func (p Product) PrecioUnitario() Amount {
	tax := TaxExcluded
	if p.IVAIncluido {
		tax = TaxIncluded
	}
	return Amount{Value: p.PrecioM2, Tax: tax}
}
