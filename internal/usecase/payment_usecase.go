package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cotizador/internal/domain/entities"
	"cotizador/internal/usecase/interfaces"
)

var (
	ErrPaymentNotFound            = errors.New("pago no encontrado")
	ErrInvalidPaymentQuotationID  = errors.New("quotation_id inválido")
	ErrQuotationNotApproved       = errors.New("cotización no aprobada")
	ErrPaymentGatewayNotReady     = errors.New("pasarela de pago no configurada")
	ErrPaymentGatewayBadRequest   = errors.New("pasarela de pago rechazó la solicitud")
	ErrPaymentGatewayUnauthorized = errors.New("pasarela de pago no autorizada")
)

// IPaymentUseCase creates and reads payments taken against quotations.
//
// A payment is only accepted for a quotation in estado aprobada; the amount
// charged is always the persisted quotation total, never a caller-supplied
// figure.
type IPaymentUseCase interface {
	CreateForQuotation(ctx context.Context, quotationID, payerEmail string) (entities.QuotePayment, error)
	GetByID(ctx context.Context, id string) (entities.QuotePayment, error)
	ListByQuotationID(ctx context.Context, quotationID string) ([]entities.QuotePayment, error)
}

type PaymentUseCase struct {
	repo          interfaces.IQuotePaymentRepository
	quotationRepo interfaces.IQuotationRepository
	gateway       interfaces.IPaymentGateway
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IQuotePaymentRepository, quotationRepo interfaces.IQuotationRepository, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, quotationRepo: quotationRepo, gateway: gateway}
}

func (u *PaymentUseCase) CreateForQuotation(ctx context.Context, quotationID, payerEmail string) (entities.QuotePayment, error) {
	quotationID = strings.TrimSpace(quotationID)
	if quotationID == "" {
		return entities.QuotePayment{}, ErrInvalidPaymentQuotationID
	}
	if u.gateway == nil {
		return entities.QuotePayment{}, ErrPaymentGatewayNotReady
	}

	q, err := u.quotationRepo.GetByID(ctx, quotationID)
	if err != nil {
		return entities.QuotePayment{}, err
	}
	if q.ID == "" {
		return entities.QuotePayment{}, ErrQuotationNotFound
	}
	if q.Status != entities.QuotationStatusAprobada {
		return entities.QuotePayment{}, ErrQuotationNotApproved
	}

	charge := interfaces.PaymentCharge{
		QuotationID: q.ID,
		Amount:      q.Total,
		Currency:    q.Moneda,
		Description: fmt.Sprintf("Cotización %s", q.ID),
		PayerEmail:  strings.TrimSpace(payerEmail),
	}
	log.Printf("[payment][usecase] charging quotation id=%s amount=%s %s", q.ID, q.Total.StringFixed(2), q.Moneda)

	providerID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, charge)
	if err != nil {
		log.Printf("[payment][usecase] gateway failed quotation_id=%s err=%v", q.ID, err)
		return entities.QuotePayment{}, err
	}

	p := entities.QuotePayment{
		ID:                 providerID,
		QuotationID:        q.ID,
		Date:               time.Now().UTC(),
		Status:             paymentStatusFromProvider(providerStatus),
		ProviderPayloadRaw: providerResp,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		return entities.QuotePayment{}, err
	}
	log.Printf("[payment][usecase] payment persisted quotation_id=%s payment_id=%s status=%s", q.ID, created.ID, created.Status)
	return created, nil
}

func paymentStatusFromProvider(providerStatus string) entities.PaymentStatus {
	switch strings.ToLower(providerStatus) {
	case "approved", "accredited":
		return entities.PaymentStatusAprobado
	case "rejected", "cancelled":
		return entities.PaymentStatusNegado
	default:
		return entities.PaymentStatusPendiente
	}
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.QuotePayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuotePayment{}, errors.New("id de pago inválido")
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.QuotePayment{}, err
	}
	if p.ID == "" {
		return entities.QuotePayment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByQuotationID(ctx context.Context, quotationID string) ([]entities.QuotePayment, error) {
	quotationID = strings.TrimSpace(quotationID)
	if quotationID == "" {
		return nil, ErrInvalidPaymentQuotationID
	}
	return u.repo.ListByQuotationID(ctx, quotationID)
}
