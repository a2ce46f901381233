package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationStatus represents the lifecycle of a persisted quotation.
//
// Domain notes:
//   - Calculation is stateless; the lifecycle only exists for quotations the
//     caller chose to persist.
//   - A payment can only be created for an approved quotation.
type QuotationStatus string

const (
	QuotationStatusPendiente QuotationStatus = "pendiente"
	QuotationStatusAprobada  QuotationStatus = "aprobada"
	QuotationStatusRechazada QuotationStatus = "rechazada"
	QuotationStatusCancelada QuotationStatus = "cancelada"
)

// PricingMode selects how a line item's total is derived from its unit
// price when the total was not precomputed.
type PricingMode string

const (
	PricingPerUnit        PricingMode = "unidad"
	PricingPerLinearMeter PricingMode = "metro_lineal"
	PricingPerArea        PricingMode = "m2"
)

// LineItem is one priced row of a quotation (panel, accessory or fixing).
//
// Total is nil when the item arrives without a precomputed total; the
// totals engine completes it from Modo. LargoM feeds metro_lineal pricing,
// AreaM2 feeds m2 pricing.
type LineItem struct {
	SKU         string          `json:"sku"`
	Descripcion string          `json:"descripcion"`
	Tipo        string          `json:"tipo"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Modo        PricingMode     `json:"modo"`
	LargoM      float64         `json:"largo_m,omitempty"`
	AreaM2      float64         `json:"area_m2,omitempty"`
	PrecioUnit  Amount          `json:"precio_unit"`
	Total       *Amount         `json:"total,omitempty"`
}

// QuoteTotals is the monetary fold of a quotation. All values are rounded
// half-up at 2 decimals and satisfy:
//
//	Gravado = Subtotal - Descuento
//	Total   = Gravado + IVA + Envio
//
// Subtotal, Descuento and Gravado are IVA-excluded.
type QuoteTotals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Descuento decimal.Decimal `json:"descuento"`
	Gravado   decimal.Decimal `json:"gravado"`
	IVA       decimal.Decimal `json:"iva"`
	Envio     decimal.Decimal `json:"envio"`
	Total     decimal.Decimal `json:"total"`
}

// QuotationRequest is the ephemeral input of one calculation call. Product
// identity is either an explicit SKU or a (familia, espesor) pair.
type QuotationRequest struct {
	ProductoSKU          string
	Familia              string
	EspesorMM            int
	LargoM               float64
	AnchoTotalM          float64
	Cantidad             int
	DescuentoPct         decimal.Decimal
	IncluirAccesorios    bool
	IncluirIVA           bool
	Sistema              string
	ValidarAutoportancia bool
}

// QuotationResult is the ephemeral output of one calculation call.
// Warnings carry structural concerns (span exceeded, cut-to-length) that do
// not block the quote.
type QuotationResult struct {
	Producto             Product         `json:"producto"`
	Paneles              int             `json:"paneles"`
	Apoyos               int             `json:"apoyos"`
	PuntosFijacion       int             `json:"puntos_fijacion"`
	LargoFacturadoM      float64         `json:"largo_facturado_m"`
	AreaM2               float64         `json:"area_m2"`
	Items                []LineItem      `json:"items"`
	Totales              QuoteTotals     `json:"totales"`
	Autoportancia        *SpanValidation `json:"autoportancia,omitempty"`
	ValidacionVerificada bool            `json:"validacion_verificada"`
	Advertencias         []string        `json:"advertencias,omitempty"`
	Moneda               string          `json:"moneda"`
}

// Quotation is a persisted quotation.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Monetary representation: Total is stored as a string-encoded decimal; the
// full calculation snapshot is kept as JSON for traceability.
type Quotation struct {
	ID         string          `json:"id"`
	ClienteRef string          `json:"cliente_ref"`
	Total      decimal.Decimal `json:"total"`
	Moneda     string          `json:"moneda"`
	Status     QuotationStatus `json:"status"`
	Resultado  QuotationResult `json:"resultado"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
