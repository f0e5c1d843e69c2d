package library

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
)

// EncodeBooks serializes books as the JSON array stored under the books key
func EncodeBooks(books []Book) ([]byte, error) {
	if books == nil {
		books = []Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal books: %w", err)
	}
	return data, nil
}

// storedBook mirrors Book with loose types so hand-edited or older blobs
// can be coerced instead of rejected wholesale.
type storedBook struct {
	ID        *int64   `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Genre     string   `json:"genre"`
	Rating    *float64 `json:"rating"`
	Review    string   `json:"review"`
	DateAdded string   `json:"dateAdded"`
}

// DecodeBooks parses a stored books blob. It never fails: a blob that is not
// a JSON array yields an empty list, entries that cannot be coerced into a
// Book are dropped, ratings are clamped and duplicate ids keep the first.
func DecodeBooks(data []byte) []Book {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Warn("Stored books are malformed, starting with an empty collection", "error", err)
		return []Book{}
	}

	books := make([]Book, 0, len(raw))
	seen := make(map[int64]bool, len(raw))

	for i, entry := range raw {
		book, err := coerceBook(entry)
		if err != nil {
			slog.Warn("Dropping malformed stored book", "index", i, "error", err)
			continue
		}
		if seen[book.ID] {
			slog.Warn("Dropping stored book with duplicate id", "index", i, "id", book.ID)
			continue
		}
		seen[book.ID] = true
		books = append(books, book)
	}

	return books
}

func coerceBook(entry json.RawMessage) (Book, error) {
	var sb storedBook
	if err := json.Unmarshal(entry, &sb); err != nil {
		return Book{}, err
	}
	if sb.ID == nil {
		return Book{}, fmt.Errorf("missing id")
	}

	book := Book{
		ID:     *sb.ID,
		Title:  strings.TrimSpace(sb.Title),
		Author: strings.TrimSpace(sb.Author),
		Genre:  sb.Genre,
		Review: sb.Review,
	}
	if book.Title == "" || book.Author == "" {
		return Book{}, fmt.Errorf("book %d has no title or author", book.ID)
	}

	if sb.Rating != nil && !math.IsNaN(*sb.Rating) {
		book.Rating = ClampRating(int(math.Round(*sb.Rating)))
	}

	if sb.DateAdded != "" {
		added, err := time.Parse(time.RFC3339Nano, sb.DateAdded)
		if err != nil {
			slog.Debug("Unparseable dateAdded, leaving it empty", "id", book.ID, "value", sb.DateAdded)
		} else {
			book.DateAdded = added.UTC()
		}
	}

	return book, nil
}
