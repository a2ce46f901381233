package catalog

import (
	"fmt"

	"cotizador/internal/domain/entities"
)

// Store is the read-only, indexed view of catalogo.json. It is built once
// at load time and safe for concurrent readers.
type Store struct {
	bySKU  map[string]entities.Product
	byKey  map[entities.ProductKey]entities.Product
	byTipo map[string][]entities.AccessoryEntry
}

// newStore indexes the catalog document. Duplicate SKUs or duplicate
// (familia, espesor) keys are rejected outright: an ambiguous catalog must
// be fixed, not guessed at.
func newStore(path string, doc catalogDocument) (*Store, error) {
	s := &Store{
		bySKU:  make(map[string]entities.Product, len(doc.Productos)),
		byKey:  make(map[entities.ProductKey]entities.Product, len(doc.Productos)),
		byTipo: make(map[string][]entities.AccessoryEntry),
	}
	for _, p := range doc.Productos {
		if _, dup := s.bySKU[p.SKU]; dup {
			return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("duplicate product sku %q", p.SKU)}
		}
		key := p.Key()
		if _, dup := s.byKey[key]; dup {
			return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("ambiguous product key %s", key)}
		}
		s.bySKU[p.SKU] = p
		s.byKey[key] = p
	}
	for _, a := range doc.Accesorios {
		s.byTipo[a.Tipo] = append(s.byTipo[a.Tipo], a)
	}
	return s, nil
}

func (s *Store) ProductBySKU(sku string) (entities.Product, bool) {
	p, ok := s.bySKU[sku]
	return p, ok
}

func (s *Store) ProductByKey(familia string, espesorMM int) (entities.Product, bool) {
	p, ok := s.byKey[entities.ProductKey{Familia: familia, EspesorMM: espesorMM}]
	return p, ok
}

// AccessoriesByTipo returns catalog entries of a type in document order.
func (s *Store) AccessoriesByTipo(tipo string) []entities.AccessoryEntry {
	return s.byTipo[tipo]
}
