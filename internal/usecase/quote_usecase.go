package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"cotizador/internal/domain/entities"
	"cotizador/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownProduct     = errors.New("producto no encontrado")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrInvalidDiscount    = errors.New("descuento fuera de rango")
	ErrInvalidGeometry    = errors.New("dimensiones inválidas")
	ErrQuotationNotFound  = errors.New("cotización no encontrada")
	ErrInvalidQuotationID = errors.New("id de cotización inválido")
)

// QuoteConfig carries the process-wide pricing/validation parameters.
type QuoteConfig struct {
	TasaIVA           decimal.Decimal
	SafetyMargin      float64
	MissingDataPolicy MissingDataPolicy
	Envio             decimal.Decimal
}

// DefaultQuoteConfig: Uruguayan IVA, standard safety margin, historic
// missing-data behavior, no shipping.
func DefaultQuoteConfig() QuoteConfig {
	return QuoteConfig{
		TasaIVA:           decimal.NewFromFloat(0.22),
		SafetyMargin:      DefaultSafetyMargin,
		MissingDataPolicy: MissingDataAllow,
		Envio:             decimal.Zero,
	}
}

// QuoteConfigFromEnv overlays env vars (IVA_RATE, SAFETY_MARGIN,
// AUTOPORTANCIA_MISSING_DATA, SHIPPING_COST) on the defaults. Malformed
// values are logged and ignored.
func QuoteConfigFromEnv() QuoteConfig {
	cfg := DefaultQuoteConfig()
	if v := os.Getenv("IVA_RATE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.Sign() >= 0 {
			cfg.TasaIVA = d
		} else {
			log.Printf("[quote][config] ignoring invalid IVA_RATE=%q", v)
		}
	}
	if v := os.Getenv("SAFETY_MARGIN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f < 1 {
			cfg.SafetyMargin = f
		} else {
			log.Printf("[quote][config] ignoring invalid SAFETY_MARGIN=%q", v)
		}
	}
	if v := os.Getenv("AUTOPORTANCIA_MISSING_DATA"); v != "" {
		switch MissingDataPolicy(strings.ToLower(v)) {
		case MissingDataAllow:
			cfg.MissingDataPolicy = MissingDataAllow
		case MissingDataReject:
			cfg.MissingDataPolicy = MissingDataReject
		default:
			log.Printf("[quote][config] ignoring invalid AUTOPORTANCIA_MISSING_DATA=%q", v)
		}
	}
	if v := os.Getenv("SHIPPING_COST"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.Sign() >= 0 {
			cfg.Envio = d
		} else {
			log.Printf("[quote][config] ignoring invalid SHIPPING_COST=%q", v)
		}
	}
	return cfg
}

// IQuoteUseCase exposes the quotation operations.
//
// Calculate is pure: same request, same result, no persistence. The
// lifecycle methods only exist for quotations the caller chose to keep.
type IQuoteUseCase interface {
	Calculate(ctx context.Context, req entities.QuotationRequest) (entities.QuotationResult, error)
	ValidateSpan(familia string, espesorMM int, luzM float64, margin float64) entities.SpanValidation
	CreateQuotation(ctx context.Context, req entities.QuotationRequest, clienteRef string) (entities.Quotation, error)
	GetQuotation(ctx context.Context, id string) (entities.Quotation, error)
	ApproveByID(ctx context.Context, id string) (entities.Quotation, error)
	RejectByID(ctx context.Context, id string) (entities.Quotation, error)
	CancelByID(ctx context.Context, id string) (entities.Quotation, error)
}

type QuoteUseCase struct {
	catalog interfaces.ICatalogStore
	rules   *entities.BOMRules
	repo    interfaces.IQuotationRepository
	cfg     QuoteConfig
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(catalog interfaces.ICatalogStore, rules *entities.BOMRules, repo interfaces.IQuotationRepository, cfg QuoteConfig) *QuoteUseCase {
	return &QuoteUseCase{catalog: catalog, rules: rules, repo: repo, cfg: cfg}
}

func (u *QuoteUseCase) Calculate(_ context.Context, req entities.QuotationRequest) (entities.QuotationResult, error) {
	producto, err := u.resolveProduct(req)
	if err != nil {
		return entities.QuotationResult{}, err
	}
	if req.Cantidad <= 0 {
		return entities.QuotationResult{}, ErrInvalidQuantity
	}
	if req.LargoM <= 0 || req.AnchoTotalM <= 0 {
		return entities.QuotationResult{}, ErrInvalidGeometry
	}
	if req.DescuentoPct.IsNegative() || req.DescuentoPct.GreaterThan(cien) {
		return entities.QuotationResult{}, ErrInvalidDiscount
	}

	var warnings []string

	largoFact := req.LargoM
	if producto.LargoMinM > 0 && req.LargoM < producto.LargoMinM {
		largoFact = producto.LargoMinM
		warnings = append(warnings, fmt.Sprintf("Largo %.2f m por debajo del mínimo de producción %.2f m; se cotiza corte a medida sobre el largo mínimo.",
			req.LargoM, producto.LargoMinM))
	}
	if producto.LargoMaxM > 0 && req.LargoM > producto.LargoMaxM {
		warnings = append(warnings, fmt.Sprintf("Largo %.2f m supera el máximo de producción %.2f m; el tramo se entrega empalmado.",
			req.LargoM, producto.LargoMaxM))
	}

	panelesBase, err := PanelsNeeded(req.AnchoTotalM, producto.AnchoUtilM)
	if err != nil {
		return entities.QuotationResult{}, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	paneles := panelesBase * req.Cantidad

	var span *entities.SpanValidation
	verified := false
	luzApoyosM := 0.0
	if req.ValidarAutoportancia {
		v := ValidateAutoportancia(u.rules.Autoportancia, producto.Familia, producto.EspesorMM, req.LargoM, u.cfg.SafetyMargin, u.cfg.MissingDataPolicy)
		span = &v
		if v.HasData {
			luzApoyosM = v.LuzMaxSeguraM
		}
		verified = v.HasData && v.IsValid
		if !verified {
			// Neutral-valid (no data) and invalid spans both surface here.
			warnings = append(warnings, v.Recomendacion)
		}
	} else if rating, ok := u.rules.Autoportancia.Rating(NormalizeFamilia(producto.Familia), producto.EspesorMM); ok {
		luzApoyosM = rating.LuzMaxM * (1 - u.cfg.SafetyMargin)
	}

	// Without span data the panel rests on its two ends.
	if luzApoyosM <= 0 {
		luzApoyosM = largoFact
	}
	apoyos, err := SupportsNeeded(largoFact, luzApoyosM)
	if err != nil {
		return entities.QuotationResult{}, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	puntos := FixationPoints(paneles, apoyos, largoFact)

	area := float64(paneles) * producto.AnchoUtilM * largoFact

	precioM2, err := producto.PrecioUnitario().ExcludingTax(u.cfg.TasaIVA)
	if err != nil {
		return entities.QuotationResult{}, err
	}
	items := []entities.LineItem{{
		SKU:         producto.SKU,
		Descripcion: fmt.Sprintf("%s %d mm", producto.Familia, producto.EspesorMM),
		Tipo:        "PANEL",
		Cantidad:    decimal.NewFromInt(int64(paneles)),
		Modo:        entities.PricingPerArea,
		AreaM2:      area,
		PrecioUnit:  precioM2,
	}}

	if req.IncluirAccesorios {
		tag, err := CompatTagForSistema(u.rules, req.Sistema)
		if err != nil {
			return entities.QuotationResult{}, err
		}
		quantities, err := AccessoryRequirements(paneles, puntos, largoFact, req.AnchoTotalM*float64(req.Cantidad))
		if err != nil {
			return entities.QuotationResult{}, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
		}
		accItems, _, accWarnings, err := ResolveAccessoryPricing(u.catalog, tag, quantities)
		if err != nil {
			return entities.QuotationResult{}, err
		}
		warnings = append(warnings, accWarnings...)
		for _, it := range accItems {
			// Catalog accessory prices are IVA-included; the totals fold
			// works on IVA-excluded bases only.
			unitExc, err := it.PrecioUnit.ExcludingTax(u.cfg.TasaIVA)
			if err != nil {
				return entities.QuotationResult{}, err
			}
			it.PrecioUnit = unitExc
			it.Total = nil
			items = append(items, it)
		}
	}

	tasa := decimal.Zero
	if req.IncluirIVA {
		tasa = u.cfg.TasaIVA
	}
	totales, err := ComputeTotals(items, req.DescuentoPct, tasa, u.cfg.Envio)
	if err != nil {
		return entities.QuotationResult{}, err
	}

	return entities.QuotationResult{
		Producto:             producto,
		Paneles:              paneles,
		Apoyos:               apoyos,
		PuntosFijacion:       puntos,
		LargoFacturadoM:      largoFact,
		AreaM2:               area,
		Items:                items,
		Totales:              totales,
		Autoportancia:        span,
		ValidacionVerificada: verified,
		Advertencias:         warnings,
		Moneda:               producto.Moneda,
	}, nil
}

// ValidateSpan runs the autoportancia check on its own. A non-positive
// margin falls back to the configured one.
func (u *QuoteUseCase) ValidateSpan(familia string, espesorMM int, luzM float64, margin float64) entities.SpanValidation {
	if margin <= 0 || margin >= 1 {
		margin = u.cfg.SafetyMargin
	}
	return ValidateAutoportancia(u.rules.Autoportancia, familia, espesorMM, luzM, margin, u.cfg.MissingDataPolicy)
}

func (u *QuoteUseCase) CreateQuotation(ctx context.Context, req entities.QuotationRequest, clienteRef string) (entities.Quotation, error) {
	res, err := u.Calculate(ctx, req)
	if err != nil {
		return entities.Quotation{}, err
	}

	now := time.Now().UTC()
	q := entities.Quotation{
		ID:         uuid.NewString(),
		ClienteRef: strings.TrimSpace(clienteRef),
		Total:      res.Totales.Total,
		Moneda:     res.Moneda,
		Status:     entities.QuotationStatusPendiente,
		Resultado:  res,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	created, err := u.repo.Create(ctx, q)
	if err != nil {
		return entities.Quotation{}, err
	}
	log.Printf("[quote][usecase] quotation created id=%s total=%s %s", created.ID, created.Total.StringFixed(2), created.Moneda)
	return created, nil
}

func (u *QuoteUseCase) GetQuotation(ctx context.Context, id string) (entities.Quotation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quotation{}, ErrInvalidQuotationID
	}
	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quotation{}, err
	}
	if q.ID == "" {
		return entities.Quotation{}, ErrQuotationNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) ApproveByID(ctx context.Context, id string) (entities.Quotation, error) {
	return u.updateStatus(ctx, id, entities.QuotationStatusAprobada)
}

func (u *QuoteUseCase) RejectByID(ctx context.Context, id string) (entities.Quotation, error) {
	return u.updateStatus(ctx, id, entities.QuotationStatusRechazada)
}

func (u *QuoteUseCase) CancelByID(ctx context.Context, id string) (entities.Quotation, error) {
	return u.updateStatus(ctx, id, entities.QuotationStatusCancelada)
}

func (u *QuoteUseCase) updateStatus(ctx context.Context, id string, status entities.QuotationStatus) (entities.Quotation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quotation{}, ErrInvalidQuotationID
	}
	updated, err := u.repo.UpdateStatusByID(ctx, id, status)
	if err != nil {
		return entities.Quotation{}, err
	}
	if updated.ID == "" {
		return entities.Quotation{}, ErrQuotationNotFound
	}
	return updated, nil
}

func (u *QuoteUseCase) resolveProduct(req entities.QuotationRequest) (entities.Product, error) {
	if sku := strings.TrimSpace(req.ProductoSKU); sku != "" {
		if p, ok := u.catalog.ProductBySKU(sku); ok {
			return p, nil
		}
		return entities.Product{}, fmt.Errorf("%w: sku %q", ErrUnknownProduct, sku)
	}
	fam := NormalizeFamilia(req.Familia)
	if fam == "" || req.EspesorMM <= 0 {
		return entities.Product{}, ErrUnknownProduct
	}
	if p, ok := u.catalog.ProductByKey(fam, req.EspesorMM); ok {
		return p, nil
	}
	return entities.Product{}, fmt.Errorf("%w: %s %d mm", ErrUnknownProduct, fam, req.EspesorMM)
}
