package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"cotizador/internal/domain/entities"
)

const (
	catalogFileName = "catalogo.json"
	rulesFileName   = "bom_rules.json"

	defaultCatalogDir = "data"
)

// ConfigurationError signals a missing or malformed catalog/rules file.
// It is fatal: quoting cannot proceed until the file is fixed.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("catalog configuration error (%s): %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Loader reads the two catalog documents from disk and caches the parsed
// result for the process lifetime. Repeated calls return the identical
// cached object (callers may rely on pointer identity); errors are cached
// the same way since a broken catalog does not fix itself mid-process.
type Loader struct {
	dir string

	catalogOnce sync.Once
	store       *Store
	catalogErr  error

	rulesOnce sync.Once
	rules     *entities.BOMRules
	rulesErr  error
}

// NewLoader creates a loader rooted at dir; an empty dir falls back to the
// CATALOG_DIR env var, then to ./data.
func NewLoader(dir string) *Loader {
	if dir == "" {
		dir = getenvDefault("CATALOG_DIR", defaultCatalogDir)
	}
	return &Loader{dir: dir}
}

// LoadCatalog parses catalogo.json (productos + accesorios) and builds the
// indexed store.
func (l *Loader) LoadCatalog() (*Store, error) {
	l.catalogOnce.Do(func() {
		path := filepath.Join(l.dir, catalogFileName)
		var doc catalogDocument
		if err := readJSON(path, &doc); err != nil {
			l.catalogErr = err
			return
		}
		l.store, l.catalogErr = newStore(path, doc)
	})
	return l.store, l.catalogErr
}

// LoadRules parses bom_rules.json and checks the autoportancia tables.
func (l *Loader) LoadRules() (*entities.BOMRules, error) {
	l.rulesOnce.Do(func() {
		path := filepath.Join(l.dir, rulesFileName)
		var rules entities.BOMRules
		if err := readJSON(path, &rules); err != nil {
			l.rulesErr = err
			return
		}
		if err := checkSpanMonotonicity(rules.Autoportancia); err != nil {
			l.rulesErr = &ConfigurationError{Path: path, Err: err}
			return
		}
		l.rules = &rules
	})
	return l.rules, l.rulesErr
}

type catalogDocument struct {
	Productos  []entities.Product        `json:"productos"`
	Accesorios []entities.AccessoryEntry `json:"accesorios"`
}

func readJSON(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return &ConfigurationError{Path: path, Err: err}
	}
	if err := json.Unmarshal(b, out); err != nil {
		return &ConfigurationError{Path: path, Err: err}
	}
	return nil
}

// checkSpanMonotonicity enforces the table invariant: within a family, a
// thicker panel never spans less than a thinner one.
func checkSpanMonotonicity(rules entities.AutoportanciaRules) error {
	for familia := range rules.Tablas {
		ratings, err := rules.RatingsFor(familia)
		if err != nil {
			return fmt.Errorf("familia %s: %w", familia, err)
		}
		for i := 1; i < len(ratings); i++ {
			if ratings[i].LuzMaxM < ratings[i-1].LuzMaxM {
				return fmt.Errorf("familia %s: luz_max_m decreases from %dmm (%.2f) to %dmm (%.2f)",
					familia, ratings[i-1].EspesorMM, ratings[i-1].LuzMaxM, ratings[i].EspesorMM, ratings[i].LuzMaxM)
			}
		}
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
