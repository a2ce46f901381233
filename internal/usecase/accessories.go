package usecase

import (
	"errors"
	"fmt"
	"sort"

	"cotizador/internal/domain/entities"
	"cotizador/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

// Accessory types as tagged in the catalog.
const (
	TipoGotera   = "GOTERA"
	TipoPerfilU  = "PERFIL_U"
	TipoSilicona = "SILICONA"
	TipoAnclaje  = "ANCLAJE"
)

const (
	// Linear coverage of one sealant tube over panel joints.
	siliconaRendimientoM = 8.0
	// Fallback length for linear accessories missing largo_std_m.
	largoStdFallbackM = 3.0
)

var ErrUnknownSistema = errors.New("sistema no reconocido")

// AccessoryRequirements computes per-type accessory quantities for a run of
// panels. Ratios come from installation practice; every one rounds up.
func AccessoryRequirements(paneles, puntosFijacion int, largoM, anchoTotalM float64) (map[string]int, error) {
	if paneles <= 0 || largoM <= 0 || anchoTotalM <= 0 {
		return nil, ErrNonPositiveDimension
	}

	// Goteras cover the two width edges, perfiles U the two length edges.
	goteras, err := unitsFor(anchoTotalM*2, largoStdFallbackM)
	if err != nil {
		return nil, err
	}
	perfiles, err := unitsFor(largoM*2, largoStdFallbackM)
	if err != nil {
		return nil, err
	}

	req := map[string]int{
		TipoGotera:  goteras,
		TipoPerfilU: perfiles,
		TipoAnclaje: puntosFijacion,
	}

	// Sealant runs along the joints between adjacent panels plus the head
	// edge; a single panel still gets the head bead.
	juntasM := float64(paneles-1)*largoM + anchoTotalM
	silicona, err := unitsFor(juntasM, siliconaRendimientoM)
	if err != nil {
		return nil, err
	}
	req[TipoSilicona] = silicona

	return req, nil
}

// CompatTagForSistema resolves the catalog compatibility tag of an
// installation system from the rules document.
func CompatTagForSistema(rules *entities.BOMRules, sistema string) (string, error) {
	s, ok := rules.Sistemas[sistema]
	if !ok || s.CompatTag == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownSistema, sistema)
	}
	return s.CompatTag, nil
}

// ResolveAccessoryPricing selects one catalog entry per required accessory
// type and prices it.
//
// Selection order per type: an entry compatible with the system tag, else
// an entry tagged UNIVERSAL, else the first entry of the type (with a
// warning, since that pick is arbitrary). A type absent from the catalog
// yields a warning instead of a line.
//
// Returned line items and subtotal carry catalog prices, IVA-included.
func ResolveAccessoryPricing(cat interfaces.ICatalogStore, compatTag string, quantities map[string]int) ([]entities.LineItem, entities.Amount, []string, error) {
	tipos := make([]string, 0, len(quantities))
	for tipo := range quantities {
		tipos = append(tipos, tipo)
	}
	sort.Strings(tipos)

	items := make([]entities.LineItem, 0, len(tipos))
	subtotal := entities.ZeroAmount(entities.TaxIncluded)
	var warnings []string

	for _, tipo := range tipos {
		qty := quantities[tipo]
		if qty <= 0 {
			continue
		}
		candidates := cat.AccessoriesByTipo(tipo)
		if len(candidates) == 0 {
			warnings = append(warnings, fmt.Sprintf("Sin accesorio tipo %s en catálogo; cotizar aparte.", tipo))
			continue
		}

		entry, arbitrary := selectAccessory(candidates, compatTag)
		if arbitrary {
			warnings = append(warnings, fmt.Sprintf("Accesorio %s (%s) elegido por defecto: sin variante compatible con %s.", entry.SKU, tipo, compatTag))
		}

		unit := entry.PrecioUnitario()
		total := unit.MulInt(int64(qty)).Rounded()
		items = append(items, entities.LineItem{
			SKU:         entry.SKU,
			Descripcion: entry.Nombre,
			Tipo:        tipo,
			Cantidad:    decimal.NewFromInt(int64(qty)),
			Modo:        entities.PricingPerUnit,
			PrecioUnit:  unit,
			Total:       &total,
		})

		var err error
		subtotal, err = subtotal.Add(total)
		if err != nil {
			return nil, entities.Amount{}, nil, err
		}
	}

	return items, subtotal, warnings, nil
}

func selectAccessory(candidates []entities.AccessoryEntry, compatTag string) (entities.AccessoryEntry, bool) {
	for _, c := range candidates {
		if c.CompatibleWith(compatTag) {
			return c, false
		}
	}
	for _, c := range candidates {
		if c.CompatibleWith(entities.CompatUniversal) {
			return c, false
		}
	}
	return candidates[0], true
}
