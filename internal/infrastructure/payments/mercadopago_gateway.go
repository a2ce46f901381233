package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"cotizador/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var (
	ErrMissingMercadoPagoAccessToken   = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
)

// MercadoPagoGateway implements interfaces.IPaymentGateway on the Mercado
// Pago SDK. With PAYMENT_GATEWAY_MOCK set, payments are approved locally
// without calling the provider, which keeps local/dev environments
// credential-free.
type MercadoPagoGateway struct {
	client   payment.Client
	mockMode bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if isMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}, nil
	}

	if accessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg)}, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, charge interfaces.PaymentCharge) (string, string, json.RawMessage, error) {
	if g != nil && g.mockMode {
		return g.mockPayment(charge)
	}
	if g == nil || g.client == nil {
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}

	// The decimal amount leaves fixed-point representation only here, at
	// the provider boundary.
	req := payment.Request{
		TransactionAmount: charge.Amount.InexactFloat64(),
		Description:       charge.Description,
		ExternalReference: charge.QuotationID,
	}
	if charge.PayerEmail != "" {
		req.Payer = &payment.PayerRequest{Email: charge.PayerEmail}
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed quotation_id=%s err=%v", charge.QuotationID, err)
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	log.Printf("[payment][gateway] create success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return fmt.Sprintf("%d", resp.ID), resp.Status, b, nil
}

func (g *MercadoPagoGateway) mockPayment(charge interfaces.PaymentCharge) (string, string, json.RawMessage, error) {
	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	resp := map[string]any{
		"id":                 id,
		"status":             "approved",
		"status_detail":      "accredited",
		"transaction_amount": charge.Amount.InexactFloat64(),
		"currency_id":        charge.Currency,
		"external_reference": charge.QuotationID,
		"date_created":       now,
		"date_approved":      now,
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	log.Printf("[payment][gateway] mock create success provider_payment_id=%s", id)
	return id, "approved", b, nil
}

func isMockEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PAYMENT_GATEWAY_MOCK"))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
