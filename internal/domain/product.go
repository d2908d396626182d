package domain

import "time"

// ProductStatus enumerates catalog lifecycle states.
type ProductStatus string

const (
	ProductStatusDraft      ProductStatus = "draft"
	ProductStatusPublished  ProductStatus = "published"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// ProductIDType identifies the external identifier scheme for a product.
// With the default scheme the service allocates a random numeric identifier.
type ProductIDType string

const (
	IDTypeDefault ProductIDType = "default"
	IDTypeISBN    ProductIDType = "isbn"
	IDTypeEAN     ProductIDType = "ean"
	IDTypeGTIN    ProductIDType = "gtin"
	IDTypeUPC     ProductIDType = "upc"
)

// ProductIDTypes lists the supported schemes in presentation order.
var ProductIDTypes = []ProductIDType{IDTypeDefault, IDTypeISBN, IDTypeEAN, IDTypeGTIN, IDTypeUPC}

// ValidIDType reports whether t is a known identifier scheme.
func ValidIDType(t ProductIDType) bool {
	for _, known := range ProductIDTypes {
		if known == t {
			return true
		}
	}
	return false
}

// Product is the catalog aggregate. Slug is assigned once at creation and
// never recomputed on later title edits. PublishedAt is stamped on the first
// transition into published and cleared when stock runs out.
type Product struct {
	ID            string
	IDType        ProductIDType
	CategoryID    int64
	OwnerID       string
	Title         string
	Slug          string
	Brand         string
	Manufacturer  string
	Price         float64
	DiscountPrice *float64
	Quantity      int
	Description   string
	Status        ProductStatus
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// Visible reports whether the product appears in the public catalog.
func (p *Product) Visible() bool {
	return p.Status == ProductStatusPublished || p.Status == ProductStatusOutOfStock
}

// ProductQuestion is a buyer question on a product, optionally answered by
// the seller.
type ProductQuestion struct {
	ID        int64
	ProductID string
	UserID    string
	Question  string
	Answer    *string
	CreatedAt time.Time
}
