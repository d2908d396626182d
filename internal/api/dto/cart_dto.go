package dto

// CartAddRequest payload for adding a product to the cart.
type CartAddRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse is a cart row with the product embedded.
type CartItemResponse struct {
	ID       string          `json:"id"`
	Quantity int             `json:"quantity"`
	Product  ProductResponse `json:"product"`
}
