package catalog

import (
	"strconv"
	"strings"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
)

// ParsePrice extracts the numeric value of a display price such as
// "Rp 50.000". Anything without digits, or too large for int64, parses as 0.
func ParsePrice(price string) int64 {
	var digits strings.Builder
	for _, r := range price {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// PriceBounds returns the default range of the price slider: zero up to the
// highest parsed price in the list.
func PriceBounds(destinations []domain.Destination) (int64, int64) {
	var max int64
	for _, d := range destinations {
		if p := ParsePrice(d.Price); p > max {
			max = p
		}
	}
	return 0, max
}
