package entities

import (
	"errors"

	"github.com/shopspring/decimal"
)

// TaxState marks whether an Amount already carries IVA.
//
// Every monetary value in the system is tagged; arithmetic that would mix
// included and excluded amounts fails instead of silently assuming one.
// The catalog stores accessory prices IVA-included and panel prices
// IVA-excluded, so both states are live at the same time in a quote.
type TaxState string

const (
	TaxExcluded TaxState = "iva_excluido"
	TaxIncluded TaxState = "iva_incluido"
)

var (
	ErrMixedTaxState   = errors.New("cannot combine amounts with different tax states")
	ErrUnknownTaxState = errors.New("amount has no tax state")
)

// Amount is a fixed-point monetary value with an explicit tax state.
// Money never goes through float64.
type Amount struct {
	Value decimal.Decimal `json:"valor"`
	Tax   TaxState        `json:"estado_iva"`
}

func NewAmount(v decimal.Decimal, tax TaxState) Amount {
	return Amount{Value: v, Tax: tax}
}

func ZeroAmount(tax TaxState) Amount {
	return Amount{Value: decimal.Zero, Tax: tax}
}

// Add fails unless both amounts carry the same known tax state.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.Tax == "" || b.Tax == "" {
		return Amount{}, ErrUnknownTaxState
	}
	if a.Tax != b.Tax {
		return Amount{}, ErrMixedTaxState
	}
	return Amount{Value: a.Value.Add(b.Value), Tax: a.Tax}, nil
}

// Mul scales the amount, preserving its tax state.
func (a Amount) Mul(factor decimal.Decimal) Amount {
	return Amount{Value: a.Value.Mul(factor), Tax: a.Tax}
}

func (a Amount) MulInt(n int64) Amount {
	return a.Mul(decimal.NewFromInt(n))
}

// ExcludingTax converts an IVA-included amount to its IVA-excluded base
// at the given rate (e.g. 0.22). Already-excluded amounts pass through.
func (a Amount) ExcludingTax(rate decimal.Decimal) (Amount, error) {
	switch a.Tax {
	case TaxExcluded:
		return a, nil
	case TaxIncluded:
		base := a.Value.Div(decimal.NewFromInt(1).Add(rate))
		return Amount{Value: base, Tax: TaxExcluded}, nil
	default:
		return Amount{}, ErrUnknownTaxState
	}
}

// RoundMoney applies the currency rounding rule: half-up at 2 decimal
// places. decimal.Round rounds half away from zero, which is half-up for
// the non-negative values money takes here.
func RoundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

func (a Amount) Rounded() Amount {
	return Amount{Value: RoundMoney(a.Value), Tax: a.Tax}
}

func (a Amount) IsZero() bool {
	return a.Value.IsZero()
}
