package domain

import "time"

// CartItem links a user to a product with a desired quantity. Adding the same
// product again increments the existing row instead of creating a second one.
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
