package catalog

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
)

type SortKey string

const (
	SortRatingDesc SortKey = "rating-desc"
	SortRatingAsc  SortKey = "rating-asc"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortNameAsc    SortKey = "name-asc"

	DefaultSort = SortRatingDesc
)

func ParseSortKey(raw string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return DefaultSort, nil
	case SortRatingDesc, "rating":
		return SortRatingDesc, nil
	case SortRatingAsc:
		return SortRatingAsc, nil
	case SortPriceAsc, "price":
		return SortPriceAsc, nil
	case SortPriceDesc:
		return SortPriceDesc, nil
	case SortNameAsc, "name":
		return SortNameAsc, nil
	default:
		return "", fmt.Errorf("invalid sort value %q", raw)
	}
}

// Query is everything a listing page feeds into the engine. Nil price bounds
// fall back to PriceBounds of the list being filtered.
type Query struct {
	Search   string
	MinPrice *int64
	MaxPrice *int64
	Sort     SortKey
}

// Filter keeps destinations whose name or location contains the search text
// (case-insensitive) and whose parsed price lies in [MinPrice, MaxPrice].
func Filter(destinations []domain.Destination, q Query) []domain.Destination {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	lo, hi := PriceBounds(destinations)
	if q.MinPrice != nil {
		lo = *q.MinPrice
	}
	if q.MaxPrice != nil {
		hi = *q.MaxPrice
	}

	out := make([]domain.Destination, 0, len(destinations))
	for _, d := range destinations {
		if needle != "" &&
			!strings.Contains(strings.ToLower(d.Name), needle) &&
			!strings.Contains(strings.ToLower(d.Location), needle) {
			continue
		}
		p := ParsePrice(d.Price)
		if p < lo || p > hi {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Sort returns a stably sorted copy; equal keys keep their input order.
func Sort(destinations []domain.Destination, key SortKey) []domain.Destination {
	out := make([]domain.Destination, len(destinations))
	copy(out, destinations)

	var less func(a, b domain.Destination) bool
	switch key {
	case SortRatingAsc:
		less = func(a, b domain.Destination) bool { return a.Rating < b.Rating }
	case SortPriceAsc:
		less = func(a, b domain.Destination) bool { return ParsePrice(a.Price) < ParsePrice(b.Price) }
	case SortPriceDesc:
		less = func(a, b domain.Destination) bool { return ParsePrice(a.Price) > ParsePrice(b.Price) }
	case SortNameAsc:
		// Collators keep internal buffers; one per call.
		col := collate.New(language.Indonesian)
		less = func(a, b domain.Destination) bool { return col.CompareString(a.Name, b.Name) < 0 }
	default:
		less = func(a, b domain.Destination) bool { return a.Rating > b.Rating }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Apply runs Filter then Sort. The input slice is never modified.
func Apply(destinations []domain.Destination, q Query) []domain.Destination {
	return Sort(Filter(destinations, q), q.Sort)
}
