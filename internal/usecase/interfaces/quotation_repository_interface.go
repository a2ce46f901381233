package interfaces

import (
	"context"

	"cotizador/internal/domain/entities"
)

// IQuotationRepository abstracts DynamoDB persistence for Quotation.
//
// The service must be able to:
//   - persist a calculated quotation when the caller asks to keep it
//   - fetch a quotation by id
//   - update its status (approve/reject/cancel)
type IQuotationRepository interface {
	Create(ctx context.Context, q entities.Quotation) (entities.Quotation, error)
	GetByID(ctx context.Context, id string) (entities.Quotation, error)
	UpdateStatusByID(ctx context.Context, id string, status entities.QuotationStatus) (entities.Quotation, error)
}
