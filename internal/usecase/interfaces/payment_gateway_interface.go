package interfaces

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PaymentCharge is the provider-agnostic payment request built from an
// approved quotation. Amount is the quotation grand total.
type PaymentCharge struct {
	QuotationID string
	Amount      decimal.Decimal
	Currency    string
	Description string
	PayerEmail  string
}

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// The service uses it to create/process a payment and persists the provider
// response payload for traceability.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, charge PaymentCharge) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
