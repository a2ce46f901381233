package request

// PaymentCreateRequest is the payload for creating a payment against an
// approved quotation. The charged amount always comes from the stored
// quotation, never from the caller.
type PaymentCreateRequest struct {
	PayerEmail string `json:"payer_email"`
}
