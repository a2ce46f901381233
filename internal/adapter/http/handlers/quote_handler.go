package handlers

import (
	"context"
	"errors"
	"net/http"

	request "cotizador/internal/adapter/http/dto/request"
	response "cotizador/internal/adapter/http/dto/response"
	"cotizador/internal/domain/entities"
	"cotizador/internal/usecase"
	"cotizador/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quotation payload", http.StatusBadRequest)

// QuoteHandler handles HTTP requests for quotations and span validation.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CalculateQuote computes a quotation without persisting anything.
func (h *QuoteHandler) CalculateQuote(c *gin.Context) {
	payload, ok := h.bindQuoteRequest(c)
	if !ok {
		return
	}

	result, err := h.usecase.Calculate(c.Request.Context(), payload.ToDomain())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuotationResult(result))
}

// CreateQuotation computes a quotation and persists it as pendiente.
func (h *QuoteHandler) CreateQuotation(c *gin.Context) {
	payload, ok := h.bindQuoteRequest(c)
	if !ok {
		return
	}

	q, err := h.usecase.CreateQuotation(c.Request.Context(), payload.ToDomain(), payload.ClienteRef)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuotation(q))
}

func (h *QuoteHandler) GetQuotation(c *gin.Context) {
	q, err := h.usecase.GetQuotation(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuotation(q))
}

func (h *QuoteHandler) ApproveQuotation(c *gin.Context) {
	h.patchQuotationStatus(c, h.usecase.ApproveByID)
}

func (h *QuoteHandler) RejectQuotation(c *gin.Context) {
	h.patchQuotationStatus(c, h.usecase.RejectByID)
}

func (h *QuoteHandler) CancelQuotation(c *gin.Context) {
	h.patchQuotationStatus(c, h.usecase.CancelByID)
}

// ValidateSpan runs a standalone autoportancia check.
func (h *QuoteHandler) ValidateSpan(c *gin.Context) {
	var payload request.SpanValidationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	v := h.usecase.ValidateSpan(payload.Familia, payload.EspesorMM, payload.LuzM, payload.Margen)
	c.JSON(http.StatusOK, response.FromSpanValidation(v))
}

func (h *QuoteHandler) bindQuoteRequest(c *gin.Context) (request.QuoteRequest, bool) {
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return request.QuoteRequest{}, false
	}
	if err := payload.Validate(); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return request.QuoteRequest{}, false
	}
	return payload, true
}

func (h *QuoteHandler) patchQuotationStatus(
	c *gin.Context,
	updater func(ctx context.Context, id string) (entities.Quotation, error),
) {
	q, err := updater(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuotation(q))
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrUnknownProduct):
		return pkg.NewDomainErrorSimple("PRODUCT_NOT_FOUND", "Product not found in catalog", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrInvalidDiscount),
		errors.Is(err, usecase.ErrInvalidGeometry),
		errors.Is(err, usecase.ErrInvalidQuotationID),
		errors.Is(err, usecase.ErrUnknownSistema):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuotationNotFound):
		return pkg.NewDomainErrorSimple("QUOTATION_NOT_FOUND", "Quotation not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
