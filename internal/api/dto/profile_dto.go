package dto

// BuyerProfileResponse is the serialized buyer profile.
type BuyerProfileResponse struct {
	ID            string   `json:"id"`
	PhoneNumber   string   `json:"phone_number"`
	TotalOrders   int      `json:"total_orders"`
	TotalPurchase *float64 `json:"total_purchase,omitempty"`
}

// SellerProfileResponse is the serialized seller profile.
type SellerProfileResponse struct {
	ID          string   `json:"id"`
	NID         string   `json:"nid"`
	PhoneNumber string   `json:"phone_number"`
	ShopName    string   `json:"shop_name"`
	ShopAddress string   `json:"shop_address"`
	Location    string   `json:"location"`
	Revenue     *float64 `json:"revenue,omitempty"`
	Income      *float64 `json:"income,omitempty"`
}

// SellerProfileRequest payload for partial seller profile updates.
type SellerProfileRequest struct {
	NID         *string `json:"nid"`
	PhoneNumber *string `json:"phone_number"`
	ShopName    *string `json:"shop_name"`
	ShopAddress *string `json:"shop_address"`
	Location    *string `json:"location"`
}

// AddressRequest payload for adding a shipping address.
type AddressRequest struct {
	Name  string `json:"name"`
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// AddressResponse is a serialized shipping address.
type AddressResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}
