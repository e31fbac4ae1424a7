package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a document-store record, not a relational entity: it lives in the
// Pebble review store as a JSON document. A nil CustomerID means the review
// was left anonymously; anonymous reviews are exempt from the one-review-per-
// (customer, product, store) rule.
type Review struct {
	ID         string     `json:"id"`
	StoreID    uuid.UUID  `json:"store_id"`
	ProductID  uuid.UUID  `json:"product_id"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	Rating     int        `json:"rating" validate:"required,min=1,max=5"`
	Comment    string     `json:"comment,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// RatingSummary aggregates review ratings for one product at one store.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}
