package domain

import (
	"github.com/google/uuid"
)

// Favorite is a stored favorites row. Name, Location, Price and ImageURL are a
// snapshot of the destination taken when the row was inserted.
type Favorite struct {
	ID            int64         `db:"id" json:"id"`
	UserID        uuid.UUID     `db:"user_id" json:"user_id"`
	DestinationID DestinationID `db:"destination_id" json:"destination_id"`
	Name          *string       `db:"name" json:"name,omitempty"`
	Location      *string       `db:"location" json:"location,omitempty"`
	Price         *string       `db:"price" json:"price,omitempty"`
	ImageURL      *string       `db:"image_url" json:"image_url,omitempty"`
}

// FavoriteRow is a favorites row left-joined with its destination. The
// Dest* columns are nil when the destination no longer exists.
type FavoriteRow struct {
	Favorite
	DestName        *string   `db:"dest_name"`
	DestCategory    *Category `db:"dest_category"`
	DestLocation    *string   `db:"dest_location"`
	DestPrice       *string   `db:"dest_price"`
	DestImageURL    *string   `db:"dest_image_url"`
	DestDescription *string   `db:"dest_description"`
}

// FavoriteItem is the reconciled read model for the favorites page.
type FavoriteItem struct {
	ID            int64         `json:"id"`
	DestinationID DestinationID `json:"destination_id"`
	Name          string        `json:"name"`
	Category      Category      `json:"category,omitempty"`
	Location      string        `json:"location"`
	Price         string        `json:"price"`
	ImageURL      string        `json:"image_url"`
	Description   string        `json:"description,omitempty"`
	Rating        float64       `json:"rating"`
	ReviewCount   int           `json:"review_count"`
	// Stale marks items rendered from the snapshot because the destination
	// row is gone.
	Stale bool `json:"stale,omitempty"`
}

type ToggleStatus string

const (
	ToggleAdded   ToggleStatus = "added"
	ToggleRemoved ToggleStatus = "removed"
)
