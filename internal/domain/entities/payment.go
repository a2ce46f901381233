package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPendiente PaymentStatus = "pendiente"
	PaymentStatusAprobado  PaymentStatus = "aprobado"
	PaymentStatusNegado    PaymentStatus = "negado"
)

// QuotePayment is a payment taken against an approved quotation.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (quotation_id-index): quotation_id
//
// ProviderPayloadRaw keeps the gateway response body (JSON) for
// traceability/audit.
type QuotePayment struct {
	ID          string        `json:"id"`
	QuotationID string        `json:"quotation_id"`
	Date        time.Time     `json:"date"`
	Status      PaymentStatus `json:"status"`

	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`
}
