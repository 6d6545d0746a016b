package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DestinationID is the backend-assigned destination key. Every boundary
// (path params, JSON bodies, DB rows) coerces into this type so favorites and
// reviews always compare numerically.
type DestinationID int64

func ParseDestinationID(raw string) (DestinationID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("destination id is empty")
	}
	v, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("destination id %q is not a positive integer", raw)
	}
	return DestinationID(v), nil
}

func (id DestinationID) Valid() bool {
	return id > 0
}

func (id DestinationID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// UnmarshalJSON accepts both 12 and "12".
func (id *DestinationID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*id = 0
			return nil
		}
		parsed, err := ParseDestinationID(s)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("destination id must be an integer: %w", err)
	}
	*id = DestinationID(n)
	return nil
}

type Category string

const (
	CategoryNature  Category = "Alam"
	CategoryCulture Category = "Budaya"
	// CategoryAll is only meaningful as a list filter.
	CategoryAll Category = "Semua"
)

func ParseCategory(raw string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "alam":
		return CategoryNature, true
	case "budaya":
		return CategoryCulture, true
	default:
		return "", false
	}
}

// ParseCategoryFilter maps an empty value or "Semua" to CategoryAll.
func ParseCategoryFilter(raw string) (Category, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, string(CategoryAll)) {
		return CategoryAll, nil
	}
	cat, ok := ParseCategory(trimmed)
	if !ok {
		return "", fmt.Errorf("unknown category %q", raw)
	}
	return cat, nil
}

type Destination struct {
	ID          DestinationID `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	Category    Category      `db:"category" json:"category"`
	Location    string        `db:"location" json:"location"`
	Price       string        `db:"price" json:"price"`
	ImageURL    string        `db:"image_url" json:"image_url"`
	Description string        `db:"description" json:"description"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`

	// Projections over the review collection, never stored on the row.
	Rating      float64  `db:"-" json:"rating"`
	ReviewCount int      `db:"-" json:"review_count"`
	Reviews     []Review `db:"-" json:"reviews,omitempty"`
}

// DestinationFields is the admin write payload. Review-derived values have no
// field here, so they can never reach an insert or update.
type DestinationFields struct {
	Name        *string   `json:"name"`
	Category    *Category `json:"category"`
	Location    *string   `json:"location"`
	Price       *string   `json:"price"`
	ImageURL    *string   `json:"image_url"`
	Description *string   `json:"description"`
}

func (f DestinationFields) IsEmpty() bool {
	return f.Name == nil && f.Category == nil && f.Location == nil &&
		f.Price == nil && f.ImageURL == nil && f.Description == nil
}
