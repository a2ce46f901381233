package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cotizador/internal/adapter/http/handlers/mocks"
	"cotizador/internal/domain/entities"
	"cotizador/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestQuoteHandler_CalculateQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotations/calculate", h.CalculateQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations/calculate", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing product identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotations/calculate", h.CalculateQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations/calculate", bytes.NewBufferString(`{"largo_m":4.5,"ancho_m":11.2}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown product maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotations/calculate", h.CalculateQuote)

		uc.EXPECT().Calculate(gomock.Any(), gomock.Any()).Return(entities.QuotationResult{}, usecase.ErrUnknownProduct)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations/calculate", bytes.NewBufferString(`{"producto_sku":"NO-EXISTE","largo_m":4.5,"ancho_m":11.2}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("invalid discount maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotations/calculate", h.CalculateQuote)

		uc.EXPECT().Calculate(gomock.Any(), gomock.Any()).Return(entities.QuotationResult{}, usecase.ErrInvalidDiscount)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations/calculate", bytes.NewBufferString(`{"producto_sku":"ISODEC-EPS-100","largo_m":4.5,"ancho_m":11.2,"descuento_pct":120}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success returns the quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotations/calculate", h.CalculateQuote)

		result := entities.QuotationResult{
			Producto: entities.Product{SKU: "ISODEC-EPS-100", Familia: "ISODEC_EPS", EspesorMM: 100},
			Paneles:  10,
			Apoyos:   2,
			Totales: entities.QuoteTotals{
				Subtotal: decimal.NewFromInt(1260),
				IVA:      decimal.NewFromFloat(277.20),
				Total:    decimal.NewFromFloat(1537.20),
			},
			Moneda: "USD",
		}
		uc.EXPECT().Calculate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, domainReq entities.QuotationRequest) (entities.QuotationResult, error) {
				if domainReq.Cantidad != 1 {
					t.Fatalf("expected cantidad defaulted to 1, got %d", domainReq.Cantidad)
				}
				if !domainReq.IncluirIVA || !domainReq.ValidarAutoportancia {
					t.Fatalf("expected incluir_iva and validar_autoportancia defaulted to true")
				}
				return result, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations/calculate", bytes.NewBufferString(`{"producto_sku":"ISODEC-EPS-100","largo_m":4.5,"ancho_m":11.2}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["producto_sku"] != "ISODEC-EPS-100" {
			t.Fatalf("unexpected producto_sku: %v", body["producto_sku"])
		}
		if body["paneles"].(float64) != 10 {
			t.Fatalf("unexpected paneles: %v", body["paneles"])
		}
		totales := body["totales"].(map[string]interface{})
		if totales["total"].(float64) != 1537.20 {
			t.Fatalf("unexpected total: %v", totales["total"])
		}
	})
}

func TestQuoteHandler_CreateQuotation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotations", h.CreateQuotation)

		uc.EXPECT().CreateQuotation(gomock.Any(), gomock.Any(), "obra-42").Return(entities.Quotation{
			ID:     "q-1",
			Total:  decimal.NewFromFloat(1537.20),
			Moneda: "USD",
			Status: entities.QuotationStatusPendiente,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations", bytes.NewBufferString(`{"producto_sku":"ISODEC-EPS-100","largo_m":4.5,"ancho_m":11.2,"cliente_ref":"obra-42"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["quotation_id"] != "q-1" || body["status"] != "pendiente" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("internal error maps to 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotations", h.CreateQuotation)

		uc.EXPECT().CreateQuotation(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.Quotation{}, errors.New("dynamo down"))

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations", bytes.NewBufferString(`{"producto_sku":"ISODEC-EPS-100","largo_m":4.5,"ancho_m":11.2}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_GetQuotation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.GET("/v1/quotations/:id", h.GetQuotation)

		uc.EXPECT().GetQuotation(gomock.Any(), "q-404").Return(entities.Quotation{}, usecase.ErrQuotationNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotations/q-404", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.GET("/v1/quotations/:id", h.GetQuotation)

		uc.EXPECT().GetQuotation(gomock.Any(), "q-1").Return(entities.Quotation{ID: "q-1", Status: entities.QuotationStatusAprobada}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotations/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_StatusTransitions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("approve", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.PATCH("/v1/quotations/:id/approve", h.ApproveQuotation)

		uc.EXPECT().ApproveByID(gomock.Any(), "q-1").Return(entities.Quotation{ID: "q-1", Status: entities.QuotationStatusAprobada}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotations/q-1/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["status"] != "aprobada" {
			t.Fatalf("expected aprobada, got %v", body["status"])
		}
	})

	t.Run("reject missing quotation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.PATCH("/v1/quotations/:id/reject", h.RejectQuotation)

		uc.EXPECT().RejectByID(gomock.Any(), "q-404").Return(entities.Quotation{}, usecase.ErrQuotationNotFound)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotations/q-404/reject", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("cancel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.PATCH("/v1/quotations/:id/cancel", h.CancelQuotation)

		uc.EXPECT().CancelByID(gomock.Any(), "q-1").Return(entities.Quotation{ID: "q-1", Status: entities.QuotationStatusCancelada}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotations/q-1/cancel", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_ValidateSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/autoportancia/validate", h.ValidateSpan)

		req := httptest.NewRequest(http.MethodPost, "/v1/autoportancia/validate", bytes.NewBufferString(`{"familia":"ISODEC_EPS"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("valid span", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/autoportancia/validate", h.ValidateSpan)

		uc.EXPECT().ValidateSpan("ISODEC_EPS", 100, 4.5, 0.0).Return(entities.SpanValidation{
			Familia:       "ISODEC_EPS",
			EspesorMM:     100,
			LuzMaxM:       5.5,
			LuzMaxSeguraM: 4.675,
			IsValid:       true,
			HasData:       true,
		})

		req := httptest.NewRequest(http.MethodPost, "/v1/autoportancia/validate", bytes.NewBufferString(`{"familia":"ISODEC_EPS","espesor_mm":100,"luz_m":4.5}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["es_valida"] != true || body["tiene_datos"] != true {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}
