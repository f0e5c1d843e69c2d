package view

import (
	"strconv"

	"github.com/lepinkainen/readlog/internal/library"
)

// Stats are the aggregate numbers shown for a collection
type Stats struct {
	TotalBooks    int     `json:"totalBooks"`
	AverageRating float64 `json:"averageRating"`
}

// ComputeStats counts the books and averages their ratings.
// Unrated books count as 0 in the average. The average is rounded half up
// to one decimal using integer arithmetic, so 3.25 becomes 3.3 exactly.
func ComputeStats(books []library.Book) Stats {
	n := len(books)
	if n == 0 {
		return Stats{}
	}

	sum := 0
	for _, b := range books {
		sum += library.ClampRating(b.Rating)
	}

	// round(10*sum/n) with ties going up
	tenths := (20*sum + n) / (2 * n)

	return Stats{
		TotalBooks:    n,
		AverageRating: float64(tenths) / 10,
	}
}

// AverageText formats the average for display: "0" for an empty collection,
// one decimal otherwise.
func (s Stats) AverageText() string {
	if s.TotalBooks == 0 {
		return "0"
	}
	return strconv.FormatFloat(s.AverageRating, 'f', 1, 64)
}
