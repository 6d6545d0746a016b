package catalog

import (
	"math"
	"strconv"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
)

// NoRating is the sentinel shown for destinations without reviews.
const NoRating = 0.0

// AverageRating returns the mean of stars rounded to one decimal place, or
// NoRating for an empty slice.
func AverageRating(stars []int) float64 {
	if len(stars) == 0 {
		return NoRating
	}
	sum := 0
	for _, s := range stars {
		sum += s
	}
	mean := float64(sum) / float64(len(stars))
	return math.Round(mean*10) / 10
}

func Aggregate(destinationID domain.DestinationID, reviews []domain.Review) domain.ReviewAggregate {
	stars := make([]int, 0, len(reviews))
	for _, r := range reviews {
		if r.DestinationID != destinationID {
			continue
		}
		stars = append(stars, r.Rating)
	}
	return domain.ReviewAggregate{
		DestinationID: destinationID,
		Rating:        AverageRating(stars),
		ReviewCount:   len(stars),
	}
}

// FormatRating renders a rating the way listings display it: "4.5", or "0"
// when there is no rating.
func FormatRating(rating float64) string {
	if rating == NoRating {
		return "0"
	}
	return strconv.FormatFloat(rating, 'f', 1, 64)
}

// GroupReviews buckets reviews by destination id.
func GroupReviews(reviews []domain.Review) map[domain.DestinationID][]domain.Review {
	grouped := make(map[domain.DestinationID][]domain.Review)
	for _, r := range reviews {
		grouped[r.DestinationID] = append(grouped[r.DestinationID], r)
	}
	return grouped
}

// Annotate returns a copy of destinations with Rating and ReviewCount filled
// in. Reviews already inlined on a destination win over the separately
// fetched set; both paths go through Aggregate.
func Annotate(destinations []domain.Destination, reviews []domain.Review) []domain.Destination {
	grouped := GroupReviews(reviews)
	out := make([]domain.Destination, len(destinations))
	for i, d := range destinations {
		source := d.Reviews
		if source == nil {
			source = grouped[d.ID]
		}
		agg := Aggregate(d.ID, source)
		d.Rating = agg.Rating
		d.ReviewCount = agg.ReviewCount
		out[i] = d
	}
	return out
}
