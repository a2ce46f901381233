package interfaces

import "cotizador/internal/domain/entities"

// ICatalogStore is the read-only catalog view the quote engine consumes.
// The production implementation is the JSON-backed store in
// internal/infrastructure/catalog; tests inject doubles.
type ICatalogStore interface {
	ProductBySKU(sku string) (entities.Product, bool)
	ProductByKey(familia string, espesorMM int) (entities.Product, bool)
	AccessoriesByTipo(tipo string) []entities.AccessoryEntry
}
