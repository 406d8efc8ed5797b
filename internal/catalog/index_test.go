package catalog

import (
	"testing"

	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndexLookups(t *testing.T) {
	catID := uuid.New()
	vendorID := uuid.New()
	categoryID := uuid.New()
	unitID := uuid.New()

	idx := BuildIndex(
		[]models.CatalogItem{{ID: catID, ItemName: "4x4 Gauze", CategoryID: &categoryID, UnitID: &unitID}},
		[]models.Vendor{{ID: vendorID, Name: "Bound Tree", ServiceFee: decimal.NewFromInt(5)}},
		[]models.Category{{ID: categoryID, Name: "Wound Care"}},
		[]models.Unit{{ID: unitID, Name: "Box"}},
		[]models.VendorPrice{{ID: uuid.New(), CatalogID: catID, VendorID: vendorID, UnitPrice: decimal.NewFromFloat(12.50)}},
	)

	item, ok := idx.Item(catID)
	require.True(t, ok)
	assert.Equal(t, "4x4 Gauze", item.ItemName)

	assert.Equal(t, "Bound Tree", idx.VendorName(vendorID))
	assert.Equal(t, "Wound Care", idx.CategoryName(&categoryID))
	assert.Equal(t, "Box", idx.UnitName(&unitID))
	assert.Len(t, idx.Prices(catID), 1)
}

func TestIndexMissingLookupsDegrade(t *testing.T) {
	idx := BuildIndex(nil, nil, nil, nil, nil)

	missing := uuid.New()
	_, ok := idx.Item(missing)
	assert.False(t, ok)

	assert.Equal(t, UnknownVendorName, idx.VendorName(missing))
	assert.Equal(t, MissingRefName, idx.CategoryName(&missing))
	assert.Equal(t, MissingRefName, idx.CategoryName(nil))
	assert.Equal(t, MissingRefName, idx.UnitName(nil))
	assert.Empty(t, idx.Prices(missing))
}

func TestIndexPreservesPriceInsertionOrder(t *testing.T) {
	catID := uuid.New()
	first := models.VendorPrice{ID: uuid.New(), CatalogID: catID, VendorID: uuid.New(), UnitPrice: decimal.NewFromInt(9)}
	second := models.VendorPrice{ID: uuid.New(), CatalogID: catID, VendorID: uuid.New(), UnitPrice: decimal.NewFromInt(3)}
	third := models.VendorPrice{ID: uuid.New(), CatalogID: catID, VendorID: uuid.New(), UnitPrice: decimal.NewFromInt(3)}

	idx := BuildIndex(nil, nil, nil, nil, []models.VendorPrice{first, second, third})

	prices := idx.Prices(catID)
	require.Len(t, prices, 3)
	assert.Equal(t, first.ID, prices[0].ID)
	assert.Equal(t, second.ID, prices[1].ID)
	assert.Equal(t, third.ID, prices[2].ID)
}
