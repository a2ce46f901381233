package usecase

import (
	"errors"
	"fmt"

	"cotizador/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingLength      = errors.New("line item sin largo_m para precio por metro lineal")
	ErrMissingArea        = errors.New("line item sin area_m2 para precio por m2")
	ErrUnknownPricingMode = errors.New("modo de precio desconocido")
	ErrTaxableLineState   = errors.New("line item con IVA incluido en el subtotal gravable")
)

var cien = decimal.NewFromInt(100)

// CompleteLineTotal fills in a missing line total from the item's pricing
// mode. Precomputed totals are left untouched.
func CompleteLineTotal(item *entities.LineItem) error {
	if item.Total != nil {
		return nil
	}
	var total entities.Amount
	switch item.Modo {
	case entities.PricingPerUnit:
		total = item.PrecioUnit.Mul(item.Cantidad)
	case entities.PricingPerLinearMeter:
		if item.LargoM <= 0 {
			return fmt.Errorf("%w (sku %s)", ErrMissingLength, item.SKU)
		}
		total = item.PrecioUnit.Mul(decimal.NewFromFloat(item.LargoM)).Mul(item.Cantidad)
	case entities.PricingPerArea:
		if item.AreaM2 <= 0 {
			return fmt.Errorf("%w (sku %s)", ErrMissingArea, item.SKU)
		}
		// AreaM2 is the item's total area; Cantidad is informational here.
		total = item.PrecioUnit.Mul(decimal.NewFromFloat(item.AreaM2))
	default:
		return fmt.Errorf("%w: %q (sku %s)", ErrUnknownPricingMode, item.Modo, item.SKU)
	}
	rounded := total.Rounded()
	item.Total = &rounded
	return nil
}

// ComputeTotals folds line items into the quotation totals:
//
//	subtotal  = Σ line totals            (IVA-excluded)
//	descuento = subtotal * pct / 100
//	gravado   = subtotal - descuento
//	iva       = gravado * tasa
//	total     = gravado + iva + envio
//
// Discount applies before tax. Every item must already be IVA-excluded;
// an IVA-included or untagged item is refused rather than guessed at —
// treating an IVA-included total as a tax base inflates both subtotal and
// tax. Amounts round half-up at 2 decimals.
func ComputeTotals(items []entities.LineItem, descuentoPct, tasaIVA, envio decimal.Decimal) (entities.QuoteTotals, error) {
	subtotal := decimal.Zero
	for i := range items {
		if err := CompleteLineTotal(&items[i]); err != nil {
			return entities.QuoteTotals{}, err
		}
		if items[i].Total.Tax != entities.TaxExcluded {
			return entities.QuoteTotals{}, fmt.Errorf("%w (sku %s)", ErrTaxableLineState, items[i].SKU)
		}
		subtotal = subtotal.Add(items[i].Total.Value)
	}

	subtotal = entities.RoundMoney(subtotal)
	descuento := entities.RoundMoney(subtotal.Mul(descuentoPct).Div(cien))
	gravado := subtotal.Sub(descuento)
	iva := entities.RoundMoney(gravado.Mul(tasaIVA))
	envio = entities.RoundMoney(envio)
	total := gravado.Add(iva).Add(envio)

	return entities.QuoteTotals{
		Subtotal:  subtotal,
		Descuento: descuento,
		Gravado:   gravado,
		IVA:       iva,
		Envio:     envio,
		Total:     total,
	}, nil
}
