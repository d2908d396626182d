package events

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventUserActivated      EventType = "user_activated"
	EventProductPublished   EventType = "product_published"
	EventProductOutOfStock  EventType = "product_out_of_stock"
	EventProductQuestionNew EventType = "product_question_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Role   domain.UserRole `json:"role"`
}

// UserActivatedPayload payload.
type UserActivatedPayload struct {
	UserID string `json:"user_id"`
}

// ProductPublishedPayload payload.
type ProductPublishedPayload struct {
	ProductID string `json:"product_id"`
	Slug      string `json:"slug"`
	OwnerID   string `json:"owner_id"`
}

// ProductOutOfStockPayload carries what the owner notification needs.
type ProductOutOfStockPayload struct {
	ProductID    string `json:"product_id"`
	ProductTitle string `json:"product_title"`
	OwnerID      string `json:"owner_id"`
}

// ProductQuestionPayload payload.
type ProductQuestionPayload struct {
	ProductID  string `json:"product_id"`
	QuestionID int64  `json:"question_id"`
	AskerID    string `json:"asker_id"`
}
