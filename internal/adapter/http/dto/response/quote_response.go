package response

import (
	"time"

	"cotizador/internal/domain/entities"
)

// Monetary values leave fixed-point representation here, at the JSON edge,
// and nowhere earlier.

type LineItemResponse struct {
	SKU         string  `json:"sku"`
	Descripcion string  `json:"descripcion"`
	Tipo        string  `json:"tipo"`
	Cantidad    float64 `json:"cantidad"`
	Modo        string  `json:"modo"`
	PrecioUnit  float64 `json:"precio_unit"`
	Total       float64 `json:"total"`
}

type TotalsResponse struct {
	Subtotal  float64 `json:"subtotal"`
	Descuento float64 `json:"descuento"`
	Gravado   float64 `json:"gravado"`
	IVA       float64 `json:"iva"`
	Envio     float64 `json:"envio"`
	Total     float64 `json:"total"`
}

type SpanValidationResponse struct {
	Familia        string  `json:"familia"`
	EspesorMM      int     `json:"espesor_mm"`
	LuzSolicitadaM float64 `json:"luz_solicitada_m"`
	LuzMaxM        float64 `json:"luz_max_m"`
	LuzMaxSeguraM  float64 `json:"luz_max_segura_m"`
	EsValida       bool    `json:"es_valida"`
	ExcesoPct      float64 `json:"exceso_pct"`
	AlternativasMM []int   `json:"alternativas_mm,omitempty"`
	Recomendacion  string  `json:"recomendacion"`
	TieneDatos     bool    `json:"tiene_datos"`
}

type QuoteResponse struct {
	ProductoSKU          string                  `json:"producto_sku"`
	Familia              string                  `json:"familia"`
	EspesorMM            int                     `json:"espesor_mm"`
	Paneles              int                     `json:"paneles"`
	Apoyos               int                     `json:"apoyos"`
	PuntosFijacion       int                     `json:"puntos_fijacion"`
	LargoFacturadoM      float64                 `json:"largo_facturado_m"`
	AreaM2               float64                 `json:"area_m2"`
	Items                []LineItemResponse      `json:"items"`
	Totales              TotalsResponse          `json:"totales"`
	Autoportancia        *SpanValidationResponse `json:"autoportancia,omitempty"`
	ValidacionVerificada bool                    `json:"validacion_verificada"`
	Advertencias         []string                `json:"advertencias,omitempty"`
	Moneda               string                  `json:"moneda"`
}

func FromSpanValidation(v entities.SpanValidation) SpanValidationResponse {
	return SpanValidationResponse{
		Familia:        v.Familia,
		EspesorMM:      v.EspesorMM,
		LuzSolicitadaM: v.LuzSolicitadaM,
		LuzMaxM:        v.LuzMaxM,
		LuzMaxSeguraM:  v.LuzMaxSeguraM,
		EsValida:       v.IsValid,
		ExcesoPct:      v.ExcesoPct,
		AlternativasMM: v.AlternativasMM,
		Recomendacion:  v.Recomendacion,
		TieneDatos:     v.HasData,
	}
}

func FromQuotationResult(r entities.QuotationResult) QuoteResponse {
	items := make([]LineItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		li := LineItemResponse{
			SKU:         it.SKU,
			Descripcion: it.Descripcion,
			Tipo:        it.Tipo,
			Cantidad:    it.Cantidad.InexactFloat64(),
			Modo:        string(it.Modo),
			PrecioUnit:  it.PrecioUnit.Value.InexactFloat64(),
		}
		if it.Total != nil {
			li.Total = it.Total.Value.InexactFloat64()
		}
		items = append(items, li)
	}

	resp := QuoteResponse{
		ProductoSKU:     r.Producto.SKU,
		Familia:         r.Producto.Familia,
		EspesorMM:       r.Producto.EspesorMM,
		Paneles:         r.Paneles,
		Apoyos:          r.Apoyos,
		PuntosFijacion:  r.PuntosFijacion,
		LargoFacturadoM: r.LargoFacturadoM,
		AreaM2:          r.AreaM2,
		Items:           items,
		Totales: TotalsResponse{
			Subtotal:  r.Totales.Subtotal.InexactFloat64(),
			Descuento: r.Totales.Descuento.InexactFloat64(),
			Gravado:   r.Totales.Gravado.InexactFloat64(),
			IVA:       r.Totales.IVA.InexactFloat64(),
			Envio:     r.Totales.Envio.InexactFloat64(),
			Total:     r.Totales.Total.InexactFloat64(),
		},
		ValidacionVerificada: r.ValidacionVerificada,
		Advertencias:         r.Advertencias,
		Moneda:               r.Moneda,
	}
	if r.Autoportancia != nil {
		v := FromSpanValidation(*r.Autoportancia)
		resp.Autoportancia = &v
	}
	return resp
}

type QuotationResponse struct {
	QuotationID string        `json:"quotation_id"`
	ID          string        `json:"id"`
	ClienteRef  string        `json:"cliente_ref,omitempty"`
	Total       float64       `json:"total"`
	Moneda      string        `json:"moneda"`
	Status      string        `json:"status"`
	Resultado   QuoteResponse `json:"resultado"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func FromQuotation(q entities.Quotation) QuotationResponse {
	return QuotationResponse{
		QuotationID: q.ID,
		ID:          q.ID,
		ClienteRef:  q.ClienteRef,
		Total:       q.Total.InexactFloat64(),
		Moneda:      q.Moneda,
		Status:      string(q.Status),
		Resultado:   FromQuotationResult(q.Resultado),
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}
