package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cotizador/internal/adapter/http/handlers/mocks"
	"cotizador/internal/domain/entities"
	"cotizador/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestPaymentHandler_CreatePaymentByQuotationID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success without body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:quotation_id", h.CreatePaymentByQuotationID)

		uc.EXPECT().CreateForQuotation(gomock.Any(), "q-1", "").Return(entities.QuotePayment{
			ID:          "mp-123",
			QuotationID: "q-1",
			Status:      entities.PaymentStatusAprobado,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["payment_id"] != "mp-123" || body["status"] != "aprobado" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("payer email forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:quotation_id", h.CreatePaymentByQuotationID)

		uc.EXPECT().CreateForQuotation(gomock.Any(), "q-1", "obra@example.com").Return(entities.QuotePayment{ID: "mp-124", QuotationID: "q-1"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/q-1", bytes.NewBufferString(`{"payer_email":"obra@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:quotation_id", h.CreatePaymentByQuotationID)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/q-1", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("quotation not approved maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:quotation_id", h.CreatePaymentByQuotationID)

		uc.EXPECT().CreateForQuotation(gomock.Any(), "q-1", "").Return(entities.QuotePayment{}, usecase.ErrQuotationNotApproved)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("quotation not found maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:quotation_id", h.CreatePaymentByQuotationID)

		uc.EXPECT().CreateForQuotation(gomock.Any(), "q-404", "").Return(entities.QuotePayment{}, usecase.ErrQuotationNotFound)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/q-404", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("gateway unavailable maps to 503", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:quotation_id", h.CreatePaymentByQuotationID)

		uc.EXPECT().CreateForQuotation(gomock.Any(), "q-1", "").Return(entities.QuotePayment{}, usecase.ErrPaymentGatewayNotReady)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("gateway failure maps to 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:quotation_id", h.CreatePaymentByQuotationID)

		uc.EXPECT().CreateForQuotation(gomock.Any(), "q-1", "").Return(entities.QuotePayment{}, errors.New("mp timeout"))

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_GetPaymentByQuotationID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("no payments yet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/payments/:quotation_id", h.GetPaymentByQuotationID)

		uc.EXPECT().ListByQuotationID(gomock.Any(), "q-1").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("latest payment wins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/payments/:quotation_id", h.GetPaymentByQuotationID)

		older := entities.QuotePayment{ID: "mp-1", QuotationID: "q-1", Date: time.Now().Add(-time.Hour), Status: entities.PaymentStatusNegado}
		newer := entities.QuotePayment{ID: "mp-2", QuotationID: "q-1", Date: time.Now(), Status: entities.PaymentStatusAprobado}
		uc.EXPECT().ListByQuotationID(gomock.Any(), "q-1").Return([]entities.QuotePayment{older, newer}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["payment_id"] != "mp-2" {
			t.Fatalf("expected latest payment mp-2, got %v", body["payment_id"])
		}
	})

	t.Run("list error maps to 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/payments/:quotation_id", h.GetPaymentByQuotationID)

		uc.EXPECT().ListByQuotationID(gomock.Any(), "q-1").Return(nil, errors.New("dynamo down"))

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
