package profile

import (
	"slices"
	"strconv"
	"strings"

	"github.com/lepinkainen/readlog/internal/library"
	"github.com/lepinkainen/readlog/internal/view"
)

// Fallback copy for missing profile fields
const (
	FallbackName      = "Reader"
	FallbackGenres    = "Not specified"
	FallbackFrequency = "Not specified"
)

// SharedBook is the public part of a book included in an exported profile
type SharedBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
	Rating int    `json:"rating"`
}

// Summary is the read-only profile built from a collection snapshot
type Summary struct {
	Name           string       `json:"name"`
	TotalBooks     int          `json:"totalBooks"`
	AverageRating  float64      `json:"averageRating"`
	Genres         []string     `json:"genres"`
	Frequency      string       `json:"frequency"`
	FavoriteAuthor string       `json:"favoriteAuthor,omitempty"`
	Books          []SharedBook `json:"books"`
}

// Build assembles a Summary. It only reads its inputs.
func Build(user User, prefs Preferences, books []library.Book) Summary {
	stats := view.ComputeStats(books)

	name := strings.TrimSpace(user.Name)
	if name == "" {
		name = FallbackName
	}

	genres := make([]string, 0, len(prefs.Genres))
	for _, g := range prefs.Genres {
		if g = strings.TrimSpace(g); g != "" && !slices.Contains(genres, g) {
			genres = append(genres, g)
		}
	}

	shared := make([]SharedBook, 0, len(books))
	for _, b := range books {
		shared = append(shared, SharedBook{
			Title:  b.Title,
			Author: b.Author,
			Genre:  b.Genre,
			Rating: library.ClampRating(b.Rating),
		})
	}

	return Summary{
		Name:           name,
		TotalBooks:     stats.TotalBooks,
		AverageRating:  stats.AverageRating,
		Genres:         genres,
		Frequency:      strings.TrimSpace(prefs.Frequency),
		FavoriteAuthor: strings.TrimSpace(prefs.Author),
		Books:          shared,
	}
}

// Stats returns the aggregate numbers carried by the summary
func (s Summary) Stats() view.Stats {
	return view.Stats{TotalBooks: s.TotalBooks, AverageRating: s.AverageRating}
}

// GenresText joins the genres with ", " or returns the fallback phrase
func (s Summary) GenresText() string {
	if len(s.Genres) == 0 {
		return FallbackGenres
	}
	return strings.Join(s.Genres, ", ")
}

// FrequencyText returns the reading frequency or the fallback phrase
func (s Summary) FrequencyText() string {
	if s.Frequency == "" {
		return FallbackFrequency
	}
	return s.Frequency
}

// FormatText renders the plain-text payload embedded in the QR code.
// The output is byte-for-byte deterministic for equal summaries; nothing is
// escaped.
func FormatText(s Summary) string {
	var sb strings.Builder

	sb.WriteString("Reading profile of " + s.Name + "\n\n")
	sb.WriteString("Total books: " + strconv.Itoa(s.TotalBooks) + "\n")
	sb.WriteString("Average rating: " + s.Stats().AverageText() + "/5\n\n")
	sb.WriteString("Favorite genres: " + s.GenresText() + "\n")
	sb.WriteString("Reading frequency: " + s.FrequencyText() + "\n")
	if s.FavoriteAuthor != "" {
		sb.WriteString("Favorite author: " + s.FavoriteAuthor + "\n")
	}

	return sb.String()
}
