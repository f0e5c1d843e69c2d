// Package goodreads reads a Goodreads library export into import entries.
package goodreads

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lepinkainen/readlog/internal/csvutil"
	"github.com/lepinkainen/readlog/internal/library"
	"github.com/lepinkainen/readlog/internal/session"
)

// Goodreads export column names
const (
	ColumnTitle       = "Title"
	ColumnAuthor      = "Author"
	ColumnMyRating    = "My Rating"
	ColumnMyReview    = "My Review"
	ColumnBookshelves = "Bookshelves"
)

// Shelves every Goodreads account has; they say nothing about genre.
var defaultShelves = map[string]bool{
	"to-read":           true,
	"currently-reading": true,
	"read":              true,
	"did-not-finish":    true,
	"favorites":         true,
}

var reviewBreaks = strings.NewReplacer("<br/>", "\n", "<br />", "\n", "<br>", "\n")

// ParseFile reads a Goodreads CSV export. Rows without a title or author
// are skipped.
func ParseFile(path string) ([]session.ImportEntry, error) {
	return csvutil.ProcessCSVFile(path, parseRow, csvutil.ProcessorOptions{
		Required:    []string{ColumnTitle, ColumnAuthor},
		SkipInvalid: true,
	})
}

func parseRow(row csvutil.Row) (session.ImportEntry, error) {
	entry := session.ImportEntry{
		Title:  row.Get(ColumnTitle),
		Author: row.Get(ColumnAuthor),
		Genre:  genreFromShelves(row.Get(ColumnBookshelves)),
		Rating: parseRating(row.Get(ColumnMyRating)),
		Review: strings.TrimSpace(reviewBreaks.Replace(row.Get(ColumnMyReview))),
	}
	if entry.Title == "" || entry.Author == "" {
		return session.ImportEntry{}, errors.New("title and author are required")
	}
	return entry, nil
}

func parseRating(value string) int {
	rating, err := strconv.Atoi(value)
	if err != nil {
		return library.MinRating
	}
	return library.ClampRating(rating)
}

// genreFromShelves picks the first custom shelf as the genre
func genreFromShelves(value string) string {
	for _, shelf := range strings.Split(value, ",") {
		shelf = strings.TrimSpace(shelf)
		if shelf != "" && !defaultShelves[strings.ToLower(shelf)] {
			return shelf
		}
	}
	return ""
}
