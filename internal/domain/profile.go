package domain

import "time"

// BuyerProfile is created exactly once when a buyer account is registered.
type BuyerProfile struct {
	ID            string
	UserID        string
	PhoneNumber   string
	TotalOrders   int
	TotalPurchase *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SellerProfile is created exactly once when a seller account is registered.
type SellerProfile struct {
	ID          string
	UserID      string
	NID         string
	PhoneNumber string
	ShopName    string
	ShopAddress string
	Location    string
	Revenue     *float64
	Income      *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Address is a shipping address attached to a buyer profile.
type Address struct {
	ID             string
	BuyerProfileID string
	Name           string
	Line1          string
	Line2          string
	CreatedAt      time.Time
}
