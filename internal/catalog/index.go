package catalog

import (
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/google/uuid"
)

const (
	// UnknownVendorName is displayed when a vendor id no longer resolves.
	UnknownVendorName = "Unknown Vendor"
	// MissingRefName is displayed for dangling category/unit references.
	MissingRefName = "N/A"
)

// Index holds the by-id lookups derived from the static collections. It is a
// pure function of its inputs and is rebuilt whole whenever any of them
// changes; readers treat it as immutable.
type Index struct {
	catalogByID      map[uuid.UUID]models.CatalogItem
	vendorByID       map[uuid.UUID]models.Vendor
	categoryNameByID map[uuid.UUID]string
	unitNameByID     map[uuid.UUID]string
	pricesByCatalog  map[uuid.UUID][]models.VendorPrice
}

// BuildIndex derives the lookups. Price rows keep their input order per
// catalog item, which is the tie-break order during vendor resolution.
func BuildIndex(
	items []models.CatalogItem,
	vendors []models.Vendor,
	categories []models.Category,
	units []models.Unit,
	prices []models.VendorPrice,
) *Index {
	idx := &Index{
		catalogByID:      make(map[uuid.UUID]models.CatalogItem, len(items)),
		vendorByID:       make(map[uuid.UUID]models.Vendor, len(vendors)),
		categoryNameByID: make(map[uuid.UUID]string, len(categories)),
		unitNameByID:     make(map[uuid.UUID]string, len(units)),
		pricesByCatalog:  make(map[uuid.UUID][]models.VendorPrice),
	}

	for _, item := range items {
		idx.catalogByID[item.ID] = item
	}
	for _, v := range vendors {
		idx.vendorByID[v.ID] = v
	}
	for _, c := range categories {
		idx.categoryNameByID[c.ID] = c.Name
	}
	for _, u := range units {
		idx.unitNameByID[u.ID] = u.Name
	}
	for _, p := range prices {
		idx.pricesByCatalog[p.CatalogID] = append(idx.pricesByCatalog[p.CatalogID], p)
	}

	return idx
}

// Item looks up a catalog item by id.
func (idx *Index) Item(id uuid.UUID) (models.CatalogItem, bool) {
	item, ok := idx.catalogByID[id]
	return item, ok
}

// Items returns every indexed catalog item keyed by id.
func (idx *Index) Items() map[uuid.UUID]models.CatalogItem {
	return idx.catalogByID
}

// Vendor looks up a vendor by id.
func (idx *Index) Vendor(id uuid.UUID) (models.Vendor, bool) {
	v, ok := idx.vendorByID[id]
	return v, ok
}

// VendorName resolves a vendor display name, degrading to UnknownVendorName.
func (idx *Index) VendorName(id uuid.UUID) string {
	if v, ok := idx.vendorByID[id]; ok {
		return v.Name
	}
	return UnknownVendorName
}

// CategoryName resolves a category display name; nil or dangling references
// degrade to MissingRefName.
func (idx *Index) CategoryName(id *uuid.UUID) string {
	if id == nil {
		return MissingRefName
	}
	if name, ok := idx.categoryNameByID[*id]; ok {
		return name
	}
	return MissingRefName
}

// UnitName resolves a unit display name with the same degradation rule.
func (idx *Index) UnitName(id *uuid.UUID) string {
	if id == nil {
		return MissingRefName
	}
	if name, ok := idx.unitNameByID[*id]; ok {
		return name
	}
	return MissingRefName
}

// Prices returns an item's price rows in insertion order. Missing items get
// an empty list, never an error.
func (idx *Index) Prices(catalogID uuid.UUID) []models.VendorPrice {
	return idx.pricesByCatalog[catalogID]
}
