package entities

import "github.com/shopspring/decimal"

// CompatUniversal marks an accessory usable with any construction system.
const CompatUniversal = "UNIVERSAL"

// AccessoryEntry is one purchasable line item from the accessory catalog
// (gotera, perfil, anclaje, silicona, ...). Several entries may share a
// Tipo; Compatibilidad tags disambiguate which one fits a given system.
type AccessoryEntry struct {
	SKU              string          `json:"sku"`
	Nombre           string          `json:"nombre"`
	Tipo             string          `json:"tipo"`
	PrecioUnitIVAInc decimal.Decimal `json:"precio_unit_iva_inc"`
	LargoStdM        float64         `json:"largo_std_m,omitempty"`
	Unidad           string          `json:"unidad"`
	Compatibilidad   []string        `json:"compatibilidad,omitempty"`
}

// PrecioUnitario returns the catalog price; accessory prices are published
// IVA-included.
func (e AccessoryEntry) PrecioUnitario() Amount {
	return Amount{Value: e.PrecioUnitIVAInc, Tax: TaxIncluded}
}

func (e AccessoryEntry) CompatibleWith(tag string) bool {
	for _, t := range e.Compatibilidad {
		if t == tag {
			return true
		}
	}
	return false
}
