package request

import (
	"errors"
	"strings"

	"cotizador/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var ErrMissingProductIdentity = errors.New("producto_sku or familia+espesor_mm required")

// QuoteRequest is the calculation payload. Product identity is either an
// explicit producto_sku or a familia + espesor_mm pair.
type QuoteRequest struct {
	ProductoSKU          string  `json:"producto_sku"`
	Familia              string  `json:"familia"`
	EspesorMM            int     `json:"espesor_mm"`
	LargoM               float64 `json:"largo_m" binding:"required"`
	AnchoM               float64 `json:"ancho_m" binding:"required"`
	Cantidad             int     `json:"cantidad"`
	DescuentoPct         float64 `json:"descuento_pct"`
	IncluirAccesorios    bool    `json:"incluir_accesorios"`
	IncluirIVA           *bool   `json:"incluir_iva"`
	Sistema              string  `json:"sistema"`
	ValidarAutoportancia *bool   `json:"validar_autoportancia"`
	ClienteRef           string  `json:"cliente_ref"`
}

// Validate checks that the payload identifies a product at all; value
// ranges are the use case's concern.
func (r QuoteRequest) Validate() error {
	if strings.TrimSpace(r.ProductoSKU) == "" && (strings.TrimSpace(r.Familia) == "" || r.EspesorMM <= 0) {
		return ErrMissingProductIdentity
	}
	return nil
}

// ToDomain converts the wire payload to the domain request. An omitted
// cantidad defaults to 1; incluir_iva and validar_autoportancia default to
// true.
func (r QuoteRequest) ToDomain() entities.QuotationRequest {
	cantidad := r.Cantidad
	if cantidad == 0 {
		cantidad = 1
	}
	incluirIVA := true
	if r.IncluirIVA != nil {
		incluirIVA = *r.IncluirIVA
	}
	validar := true
	if r.ValidarAutoportancia != nil {
		validar = *r.ValidarAutoportancia
	}
	return entities.QuotationRequest{
		ProductoSKU:          strings.TrimSpace(r.ProductoSKU),
		Familia:              strings.TrimSpace(r.Familia),
		EspesorMM:            r.EspesorMM,
		LargoM:               r.LargoM,
		AnchoTotalM:          r.AnchoM,
		Cantidad:             cantidad,
		DescuentoPct:         decimal.NewFromFloat(r.DescuentoPct),
		IncluirAccesorios:    r.IncluirAccesorios,
		IncluirIVA:           incluirIVA,
		Sistema:              strings.TrimSpace(r.Sistema),
		ValidarAutoportancia: validar,
	}
}

// SpanValidationRequest is the standalone autoportancia check payload.
// Margen overrides the configured safety margin when set.
type SpanValidationRequest struct {
	Familia   string  `json:"familia" binding:"required"`
	EspesorMM int     `json:"espesor_mm" binding:"required"`
	LuzM      float64 `json:"luz_m" binding:"required"`
	Margen    float64 `json:"margen"`
}
