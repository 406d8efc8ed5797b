package enums

import "fmt"

// VendorStockStatus is the stock state a vendor reports for one price row.
// An empty value is legal: legacy rows never set the field, and everywhere it is
// consumed an empty status is computationally equivalent to "In Stock".
type VendorStockStatus string

const (
	VendorStockStatusUnset       VendorStockStatus = ""
	VendorStockStatusInStock     VendorStockStatus = "In Stock"
	VendorStockStatusBackordered VendorStockStatus = "Backordered"
	VendorStockStatusOutOfStock  VendorStockStatus = "Out of Stock"
)

var validVendorStockStatuses = []VendorStockStatus{
	VendorStockStatusInStock,
	VendorStockStatusBackordered,
	VendorStockStatusOutOfStock,
}

// String implements fmt.Stringer.
func (s VendorStockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known VendorStockStatus. Unset counts.
func (s VendorStockStatus) IsValid() bool {
	if s == VendorStockStatusUnset {
		return true
	}
	for _, candidate := range validVendorStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CountsAsInStock reports whether vendor resolution may treat the row as
// purchasable. Unset rows count as in stock.
func (s VendorStockStatus) CountsAsInStock() bool {
	return s == VendorStockStatusUnset || s == VendorStockStatusInStock
}

// Display returns the user-facing status text. Unset rows render "In Stock".
func (s VendorStockStatus) Display() string {
	if s == VendorStockStatusUnset {
		return string(VendorStockStatusInStock)
	}
	return string(s)
}

// ParseVendorStockStatus converts raw input into a VendorStockStatus.
func ParseVendorStockStatus(value string) (VendorStockStatus, error) {
	if value == "" {
		return VendorStockStatusUnset, nil
	}
	for _, candidate := range validVendorStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vendor stock status %q", value)
}
