package session

import (
	"log/slog"
	"strings"

	"github.com/lepinkainen/readlog/internal/library"
)

// ImportEntry is one book taken from an external export
type ImportEntry struct {
	Title  string
	Author string
	Genre  string
	Rating int
	Review string
}

// ImportResult summarizes a bulk import
type ImportResult struct {
	Added      []library.Book
	Duplicates int
	Invalid    int
}

// Import adds every entry that is valid and not already in the collection
// (same title and author, ignoring case). Entries with a rating or review
// get them applied right after being added. The whole batch is persisted
// with a single save and rolls back as a unit.
func (s *Session) Import(entries []ImportEntry) (ImportResult, error) {
	if !s.active {
		return ImportResult{}, ErrInactive
	}

	var result ImportResult
	_, _, err := s.mutate(func(next *library.Collection) (library.Book, bool, error) {
		seen := make(map[string]bool, next.Len()+len(entries))
		for _, b := range next.All() {
			seen[dedupeKey(b.Title, b.Author)] = true
		}

		for _, entry := range entries {
			key := dedupeKey(entry.Title, entry.Author)
			if seen[key] {
				result.Duplicates++
				continue
			}

			book, err := next.Add(entry.Title, entry.Author, entry.Genre)
			if err != nil {
				slog.Warn("Skipping invalid import entry", "title", entry.Title, "error", err)
				result.Invalid++
				continue
			}
			seen[key] = true

			if entry.Rating > 0 || strings.TrimSpace(entry.Review) != "" {
				next.SetReview(book.ID, entry.Rating, strings.TrimSpace(entry.Review))
				book, _ = next.FindByID(book.ID)
			}
			result.Added = append(result.Added, book)
		}

		return library.Book{}, len(result.Added) > 0, nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	slog.Info("Import finished", "added", len(result.Added), "duplicates", result.Duplicates, "invalid", result.Invalid)
	return result, nil
}

func dedupeKey(title, author string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "\x00" + strings.ToLower(strings.TrimSpace(author))
}
