// Package library holds the reader's book collection: the single in-memory
// owner of every Book record for a session.
package library

import "time"

// Rating bounds. A rating of MinRating means "not yet rated".
const (
	MinRating = 0
	MaxRating = 5
)

// Book is a single tracked book
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
	DateAdded time.Time `json:"dateAdded"`
}

// IsRated reports whether the book carries a rating
func (b Book) IsRated() bool {
	return b.Rating > MinRating
}

// ClampRating forces rating into [MinRating, MaxRating]
func ClampRating(rating int) int {
	if rating < MinRating {
		return MinRating
	}
	if rating > MaxRating {
		return MaxRating
	}
	return rating
}
