package dto

import "time"

// ProductRequest payload for create and update. Pointer fields distinguish
// absent from zero so the same shape serves PATCH.
type ProductRequest struct {
	ID            *string  `json:"id"`
	IDType        *string  `json:"id_type"`
	CategoryID    *int64   `json:"category_id"`
	Title         *string  `json:"title"`
	Brand         *string  `json:"brand"`
	Manufacturer  *string  `json:"manufacturer"`
	Price         *float64 `json:"price"`
	DiscountPrice *float64 `json:"discount_price"`
	Quantity      *int     `json:"quantity"`
	Description   *string  `json:"description"`
	Status        *string  `json:"status"`
}

// ProductResponse is the serialized catalog representation.
type ProductResponse struct {
	ID            string     `json:"id"`
	IDType        string     `json:"id_type"`
	CategoryID    int64      `json:"category_id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Brand         string     `json:"brand,omitempty"`
	Manufacturer  string     `json:"manufacturer,omitempty"`
	Price         float64    `json:"price"`
	DiscountPrice *float64   `json:"discount_price,omitempty"`
	Quantity      int        `json:"quantity"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

// IDTypeResponse enumerates an identifier scheme for the UI.
type IDTypeResponse struct {
	Value     string `json:"value"`
	HumanRead string `json:"human_read"`
}

// QuestionRequest payload for asking a product question.
type QuestionRequest struct {
	Question string `json:"question"`
}

// AnswerRequest payload for the seller's answer.
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// QuestionResponse is the serialized question representation.
type QuestionResponse struct {
	ID        int64     `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Question  string    `json:"question"`
	Answer    *string   `json:"answer,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
