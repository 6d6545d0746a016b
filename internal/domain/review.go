package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

type Review struct {
	ID            int64         `db:"id" json:"id"`
	DestinationID DestinationID `db:"destination_id" json:"destination_id"`
	UserID        uuid.UUID     `db:"user_id" json:"user_id"`
	UserName      string        `db:"user_name" json:"user_name"`
	Rating        int           `db:"rating" json:"rating"`
	Comment       string        `db:"comment" json:"comment"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// ReviewAggregate is the display projection of a destination's reviews.
type ReviewAggregate struct {
	DestinationID DestinationID `json:"destination_id"`
	Rating        float64       `json:"rating"`
	ReviewCount   int           `json:"review_count"`
}

type ReviewListResult struct {
	DestinationID DestinationID   `json:"destination_id"`
	Reviews       []Review        `json:"reviews"`
	Aggregate     ReviewAggregate `json:"aggregate"`
}
