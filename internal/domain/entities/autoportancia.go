package entities

import (
	"fmt"
	"sort"
	"strconv"
)

// SpanRating is one row of an autoportancia table: the absolute maximum
// unsupported span and the weight of the panel at that thickness.
type SpanRating struct {
	LuzMaxM  float64 `json:"luz_max_m"`
	PesoKgM2 float64 `json:"peso_kg_m2"`
}

// AutoportanciaRules maps product family -> thickness (mm, string-keyed in
// the JSON document) -> rating.
//
// Invariant: within a family, LuzMaxM is non-decreasing as thickness grows.
type AutoportanciaRules struct {
	Tablas map[string]map[string]SpanRating `json:"tablas"`
}

// ThicknessRating pairs a thickness with its rating, for ordered scans.
type ThicknessRating struct {
	EspesorMM int
	SpanRating
}

// Rating returns the entry for an exact (familia, espesor) pair.
func (r AutoportanciaRules) Rating(familia string, espesorMM int) (SpanRating, bool) {
	tabla, ok := r.Tablas[familia]
	if !ok {
		return SpanRating{}, false
	}
	rating, ok := tabla[strconv.Itoa(espesorMM)]
	return rating, ok
}

// RatingsFor returns a family's ratings sorted by thickness ascending.
// Fails on a thickness key that is not an integer number of millimeters.
func (r AutoportanciaRules) RatingsFor(familia string) ([]ThicknessRating, error) {
	tabla, ok := r.Tablas[familia]
	if !ok {
		return nil, nil
	}
	out := make([]ThicknessRating, 0, len(tabla))
	for key, rating := range tabla {
		mm, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid thickness key %q", key)
		}
		out = append(out, ThicknessRating{EspesorMM: mm, SpanRating: rating})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EspesorMM < out[j].EspesorMM })
	return out, nil
}

// Sistema describes a construction system (techo/pared per panel family)
// and how accessories bind to it.
type Sistema struct {
	Nombre    string `json:"nombre"`
	CompatTag string `json:"compat_tag"`
}

// BOMRules is the parsed bom_rules.json document.
type BOMRules struct {
	Autoportancia AutoportanciaRules `json:"autoportancia"`
	Sistemas      map[string]Sistema `json:"sistemas"`
}

// SpanValidation is the outcome of an autoportancia check. It is a report,
// not an error: an invalid span still yields a complete result with
// alternatives so the quote can proceed with warnings.
type SpanValidation struct {
	Familia        string  `json:"familia"`
	EspesorMM      int     `json:"espesor_mm"`
	LuzSolicitadaM float64 `json:"luz_solicitada_m"`
	LuzMaxM        float64 `json:"luz_max_m"`
	LuzMaxSeguraM  float64 `json:"luz_max_segura_m"`
	IsValid        bool    `json:"es_valida"`
	ExcesoPct      float64 `json:"exceso_pct"`
	AlternativasMM []int   `json:"alternativas_mm"`
	Recomendacion  string  `json:"recomendacion"`

	// HasData is false when the family/thickness has no table entry and the
	// missing-data policy decided the outcome.
	HasData bool `json:"tiene_datos"`
}
