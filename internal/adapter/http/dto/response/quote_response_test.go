package response

import (
	"testing"
	"time"

	"cotizador/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestFromQuotationResult(t *testing.T) {
	total := entities.NewAmount(decimal.NewFromFloat(1260.00), entities.TaxExcluded)
	result := entities.QuotationResult{
		Producto: entities.Product{SKU: "ISODEC-EPS-100", Familia: "ISODEC_EPS", EspesorMM: 100},
		Paneles:  10,
		Apoyos:   2,
		Items: []entities.LineItem{{
			SKU:        "ISODEC-EPS-100",
			Tipo:       "PANEL",
			Cantidad:   decimal.NewFromInt(10),
			Modo:       entities.PricingPerArea,
			AreaM2:     50.4,
			PrecioUnit: entities.NewAmount(decimal.NewFromFloat(25.00), entities.TaxExcluded),
			Total:      &total,
		}},
		Totales: entities.QuoteTotals{
			Subtotal: decimal.NewFromInt(1260),
			IVA:      decimal.NewFromFloat(277.20),
			Total:    decimal.NewFromFloat(1537.20),
		},
		Autoportancia: &entities.SpanValidation{
			Familia:       "ISODEC_EPS",
			EspesorMM:     100,
			LuzMaxM:       5.5,
			LuzMaxSeguraM: 4.675,
			IsValid:       true,
			HasData:       true,
		},
		ValidacionVerificada: true,
		Moneda:               "USD",
	}

	resp := FromQuotationResult(result)
	if resp.ProductoSKU != "ISODEC-EPS-100" || resp.Paneles != 10 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.Items))
	}
	if resp.Items[0].Total != 1260.00 {
		t.Fatalf("expected item total 1260.00, got %v", resp.Items[0].Total)
	}
	if resp.Totales.Total != 1537.20 {
		t.Fatalf("expected total 1537.20, got %v", resp.Totales.Total)
	}
	if resp.Autoportancia == nil || !resp.Autoportancia.EsValida || !resp.Autoportancia.TieneDatos {
		t.Fatalf("unexpected span report: %+v", resp.Autoportancia)
	}
	if !resp.ValidacionVerificada {
		t.Fatalf("expected verified flag")
	}
}

func TestFromQuotationResult_NoSpanReport(t *testing.T) {
	resp := FromQuotationResult(entities.QuotationResult{Moneda: "USD"})
	if resp.Autoportancia != nil {
		t.Fatalf("expected no span report, got %+v", resp.Autoportancia)
	}
}

func TestFromQuotation(t *testing.T) {
	now := time.Now().UTC()
	q := entities.Quotation{
		ID:         "q-1",
		ClienteRef: "obra-42",
		Total:      decimal.NewFromFloat(1537.20),
		Moneda:     "USD",
		Status:     entities.QuotationStatusPendiente,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	resp := FromQuotation(q)
	if resp.QuotationID != "q-1" || resp.ID != "q-1" {
		t.Fatalf("unexpected ids: %+v", resp)
	}
	if resp.Total != 1537.20 {
		t.Fatalf("expected total 1537.20, got %v", resp.Total)
	}
	if resp.Status != "pendiente" {
		t.Fatalf("expected pendiente, got %q", resp.Status)
	}
	if !resp.CreatedAt.Equal(now) {
		t.Fatalf("unexpected created_at: %v", resp.CreatedAt)
	}
}
