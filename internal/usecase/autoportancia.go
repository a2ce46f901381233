package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"cotizador/internal/domain/entities"
)

// DefaultSafetyMargin is the fraction shaved off the absolute maximum span
// to obtain the conservative limit used for validation.
const DefaultSafetyMargin = 0.15

// MissingDataPolicy decides the outcome when a (familia, espesor) pair has
// no autoportancia table entry. Historically absence of data passes as
// valid; keep that as the default but let operators flip it.
type MissingDataPolicy string

const (
	MissingDataAllow  MissingDataPolicy = "allow"
	MissingDataReject MissingDataPolicy = "reject"
)

// NormalizeFamilia canonicalizes a family name: trims, uppercases and
// strips a trailing thickness suffix ("isodec_eps_100" -> "ISODEC_EPS").
func NormalizeFamilia(familia string) string {
	f := strings.ToUpper(strings.TrimSpace(familia))
	if i := strings.LastIndex(f, "_"); i > 0 {
		if _, err := strconv.Atoi(f[i+1:]); err == nil {
			f = f[:i]
		}
	}
	return f
}

// ValidateAutoportancia classifies a requested span against the family's
// span table. It never returns an error: missing data resolves via policy,
// and an invalid span is a report with alternatives, not a failure.
//
// A zero or negative span trivially satisfies the inequality and comes back
// valid; that is accepted current behavior.
func ValidateAutoportancia(rules entities.AutoportanciaRules, familia string, espesorMM int, luzM float64, margin float64, policy MissingDataPolicy) entities.SpanValidation {
	if margin <= 0 || margin >= 1 {
		margin = DefaultSafetyMargin
	}
	fam := NormalizeFamilia(familia)

	rating, ok := rules.Rating(fam, espesorMM)
	if !ok {
		v := entities.SpanValidation{
			Familia:        fam,
			EspesorMM:      espesorMM,
			LuzSolicitadaM: luzM,
			HasData:        false,
		}
		if policy == MissingDataReject {
			v.IsValid = false
			v.Recomendacion = fmt.Sprintf("Sin datos de autoportancia para %s %d mm; la política vigente rechaza luces sin datos.", fam, espesorMM)
		} else {
			v.IsValid = true
			v.Recomendacion = fmt.Sprintf("Sin datos de autoportancia para %s %d mm; se asume válida la luz solicitada.", fam, espesorMM)
		}
		return v
	}

	safe := rating.LuzMaxM * (1 - margin)
	v := entities.SpanValidation{
		Familia:        fam,
		EspesorMM:      espesorMM,
		LuzSolicitadaM: luzM,
		LuzMaxM:        rating.LuzMaxM,
		LuzMaxSeguraM:  safe,
		HasData:        true,
		IsValid:        luzM <= safe,
	}

	if v.IsValid {
		v.Recomendacion = fmt.Sprintf("Luz solicitada %.2f m admisible para %s %d mm (máxima %.2f m, segura %.3f m).",
			luzM, fam, espesorMM, rating.LuzMaxM, safe)
		return v
	}

	v.ExcesoPct = (luzM - safe) / safe * 100

	// Every thickness of the family whose safe span covers the request, in
	// ascending order. RatingsFor only fails on malformed keys, which the
	// loader already rejected.
	ratings, err := rules.RatingsFor(fam)
	if err == nil {
		for _, r := range ratings {
			if r.LuzMaxM*(1-margin) >= luzM {
				v.AlternativasMM = append(v.AlternativasMM, r.EspesorMM)
			}
		}
	}

	if len(v.AlternativasMM) > 0 {
		v.Recomendacion = fmt.Sprintf("Luz solicitada %.2f m excede la luz segura %.3f m de %s %d mm (máxima %.2f m); usar espesor %d mm o agregar apoyos.",
			luzM, safe, fam, espesorMM, rating.LuzMaxM, v.AlternativasMM[0])
	} else {
		v.Recomendacion = fmt.Sprintf("Luz solicitada %.2f m excede la luz segura %.3f m de %s %d mm (máxima %.2f m) y ningún espesor de la familia la cubre; reducir la distancia entre apoyos.",
			luzM, safe, fam, espesorMM, rating.LuzMaxM)
	}
	return v
}
