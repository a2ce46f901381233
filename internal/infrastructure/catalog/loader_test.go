package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validCatalogJSON = `{
  "productos": [
    {"sku": "ISODEC-EPS-100", "familia": "ISODEC_EPS", "espesor_mm": 100, "precio_m2": "25.00", "ancho_util_m": 1.12, "largo_min_m": 2.5, "largo_max_m": 12.0, "moneda": "USD"},
    {"sku": "ISODEC-EPS-150", "familia": "ISODEC_EPS", "espesor_mm": 150, "precio_m2": "29.50", "ancho_util_m": 1.12, "largo_min_m": 2.5, "largo_max_m": 12.0, "moneda": "USD"}
  ],
  "accesorios": [
    {"sku": "GOT-EPS", "nombre": "Gotera EPS", "tipo": "GOTERA", "precio_unit_iva_inc": "10.00", "largo_std_m": 3.0, "unidad": "tramo", "compatibilidad": ["EPS_TECHO"]},
    {"sku": "SIL-300", "nombre": "Silicona neutra", "tipo": "SILICONA", "precio_unit_iva_inc": "6.10", "unidad": "pomo", "compatibilidad": ["UNIVERSAL"]}
  ]
}`

const validRulesJSON = `{
  "autoportancia": {
    "tablas": {
      "ISODEC_EPS": {
        "100": {"luz_max_m": 5.5, "peso_kg_m2": 10.4},
        "150": {"luz_max_m": 7.0, "peso_kg_m2": 11.2}
      }
    }
  },
  "sistemas": {
    "techo_eps": {"nombre": "Techo ISODEC EPS", "compat_tag": "EPS_TECHO"}
  }
}`

func writeCatalogDir(t *testing.T, catalogJSON, rulesJSON string) string {
	t.Helper()
	dir := t.TempDir()
	if catalogJSON != "" {
		if err := os.WriteFile(filepath.Join(dir, catalogFileName), []byte(catalogJSON), 0o644); err != nil {
			t.Fatalf("write catalog fixture: %v", err)
		}
	}
	if rulesJSON != "" {
		if err := os.WriteFile(filepath.Join(dir, rulesFileName), []byte(rulesJSON), 0o644); err != nil {
			t.Fatalf("write rules fixture: %v", err)
		}
	}
	return dir
}

func TestLoader_LoadCatalog(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		l := NewLoader(writeCatalogDir(t, validCatalogJSON, validRulesJSON))
		store, err := l.LoadCatalog()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		p, ok := store.ProductBySKU("ISODEC-EPS-100")
		if !ok {
			t.Fatalf("expected ISODEC-EPS-100 in store")
		}
		if p.AnchoUtilM != 1.12 || p.Moneda != "USD" {
			t.Fatalf("unexpected product: %+v", p)
		}

		if _, ok := store.ProductByKey("ISODEC_EPS", 150); !ok {
			t.Fatalf("expected key lookup for ISODEC_EPS 150")
		}
		if _, ok := store.ProductByKey("ISODEC_EPS", 999); ok {
			t.Fatalf("unexpected hit for unknown thickness")
		}

		if got := store.AccessoriesByTipo("GOTERA"); len(got) != 1 || got[0].SKU != "GOT-EPS" {
			t.Fatalf("unexpected GOTERA entries: %+v", got)
		}
		if got := store.AccessoriesByTipo("PERFIL_U"); len(got) != 0 {
			t.Fatalf("expected no PERFIL_U entries, got %+v", got)
		}
	})

	t.Run("repeat loads return the cached store", func(t *testing.T) {
		l := NewLoader(writeCatalogDir(t, validCatalogJSON, validRulesJSON))
		a, err := l.LoadCatalog()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := l.LoadCatalog()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a != b {
			t.Fatalf("expected identical store pointer on repeat load")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		l := NewLoader(writeCatalogDir(t, "", validRulesJSON))
		_, err := l.LoadCatalog()
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigurationError, got %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		l := NewLoader(writeCatalogDir(t, `{"productos": [`, validRulesJSON))
		_, err := l.LoadCatalog()
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigurationError, got %v", err)
		}
	})

	t.Run("errors are cached too", func(t *testing.T) {
		l := NewLoader(writeCatalogDir(t, "", validRulesJSON))
		_, first := l.LoadCatalog()
		_, second := l.LoadCatalog()
		if first == nil || first != second {
			t.Fatalf("expected the same cached error, got %v then %v", first, second)
		}
	})

	t.Run("duplicate sku rejected", func(t *testing.T) {
		dup := `{"productos": [
			{"sku": "X", "familia": "A", "espesor_mm": 100},
			{"sku": "X", "familia": "B", "espesor_mm": 150}
		]}`
		l := NewLoader(writeCatalogDir(t, dup, validRulesJSON))
		_, err := l.LoadCatalog()
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigurationError for duplicate sku, got %v", err)
		}
	})

	t.Run("ambiguous product key rejected", func(t *testing.T) {
		dup := `{"productos": [
			{"sku": "X1", "familia": "A", "espesor_mm": 100},
			{"sku": "X2", "familia": "A", "espesor_mm": 100}
		]}`
		l := NewLoader(writeCatalogDir(t, dup, validRulesJSON))
		_, err := l.LoadCatalog()
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigurationError for ambiguous key, got %v", err)
		}
	})
}

func TestLoader_LoadRules(t *testing.T) {
	t.Run("valid rules", func(t *testing.T) {
		l := NewLoader(writeCatalogDir(t, validCatalogJSON, validRulesJSON))
		rules, err := l.LoadRules()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rating, ok := rules.Autoportancia.Rating("ISODEC_EPS", 100)
		if !ok || rating.LuzMaxM != 5.5 {
			t.Fatalf("unexpected rating: %+v ok=%v", rating, ok)
		}
		if rules.Sistemas["techo_eps"].CompatTag != "EPS_TECHO" {
			t.Fatalf("unexpected sistemas: %+v", rules.Sistemas)
		}
	})

	t.Run("repeat loads return the cached rules", func(t *testing.T) {
		l := NewLoader(writeCatalogDir(t, validCatalogJSON, validRulesJSON))
		a, _ := l.LoadRules()
		b, _ := l.LoadRules()
		if a == nil || a != b {
			t.Fatalf("expected identical rules pointer on repeat load")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		l := NewLoader(writeCatalogDir(t, validCatalogJSON, ""))
		_, err := l.LoadRules()
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigurationError, got %v", err)
		}
	})

	t.Run("non monotonic table rejected", func(t *testing.T) {
		bad := `{
		  "autoportancia": {
		    "tablas": {
		      "ISODEC_EPS": {
		        "100": {"luz_max_m": 5.5},
		        "150": {"luz_max_m": 4.0}
		      }
		    }
		  }
		}`
		l := NewLoader(writeCatalogDir(t, validCatalogJSON, bad))
		_, err := l.LoadRules()
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigurationError for decreasing spans, got %v", err)
		}
	})

	t.Run("malformed thickness key rejected", func(t *testing.T) {
		bad := `{
		  "autoportancia": {
		    "tablas": {
		      "ISODEC_EPS": {
		        "cien": {"luz_max_m": 5.5}
		      }
		    }
		  }
		}`
		l := NewLoader(writeCatalogDir(t, validCatalogJSON, bad))
		_, err := l.LoadRules()
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigurationError for bad thickness key, got %v", err)
		}
	})
}
