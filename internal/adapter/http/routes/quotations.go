package routes

import (
	"cotizador/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotations    = "/quotations"
	PathAutoportancia = "/autoportancia"
	PathPayments      = "/payments"
)

func addQuotationRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler, paymentHandler *handlers.PaymentHandler) {
	quotations := rg.Group(PathQuotations)
	{
		quotations.POST("/calculate", quoteHandler.CalculateQuote)
		quotations.POST("", quoteHandler.CreateQuotation)
		quotations.GET("/:id", quoteHandler.GetQuotation)
		quotations.PATCH("/:id/approve", quoteHandler.ApproveQuotation)
		quotations.PATCH("/:id/reject", quoteHandler.RejectQuotation)
		quotations.PATCH("/:id/cancel", quoteHandler.CancelQuotation)
	}

	autoportancia := rg.Group(PathAutoportancia)
	{
		autoportancia.POST("/validate", quoteHandler.ValidateSpan)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/:quotation_id", paymentHandler.CreatePaymentByQuotationID)
		payments.GET("/:quotation_id", paymentHandler.GetPaymentByQuotationID)
	}
}
