package cmdutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type shelfEntry struct {
	ID        int64
	BookTitle string
	ISBN13    string
	Tags      []string
	DateAdded time.Time
	Finished  *time.Time
	Secret    string `json:"-"`
	hidden    string
}

func TestStructToMap_SnakeCaseKeys(t *testing.T) {
	added := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	got := StructToMap(shelfEntry{
		ID:        4,
		BookTitle: "Dune",
		ISBN13:    "9780441013593",
		Tags:      []string{"sf", "classic"},
		DateAdded: added,
		Secret:    "x",
		hidden:    "y",
	}, StructToMapOptions{JoinStringSlices: true})

	assert.Equal(t, map[string]any{
		"id":         int64(4),
		"book_title": "Dune",
		"isbn13":     "9780441013593",
		"tags":       "sf,classic",
		"date_added": "2024-03-01T12:00:00Z",
		"finished":   nil,
	}, got)
}

func TestStructToMap_Options(t *testing.T) {
	got := StructToMap(&shelfEntry{ID: 1, BookTitle: "Emma"}, StructToMapOptions{
		OmitFields:   map[string]bool{"Tags": true, "ISBN13": true},
		KeyOverrides: map[string]string{"BookTitle": "title"},
		OmitZeroTime: true,
	})

	assert.Equal(t, map[string]any{"id": int64(1), "title": "Emma"}, got)
}

func TestStructToMap_NilPointer(t *testing.T) {
	var entry *shelfEntry
	assert.Empty(t, StructToMap(entry, StructToMapOptions{}))
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"ID":        "id",
		"BookTitle": "book_title",
		"HTMLPage":  "html_page",
		"ISBN13":    "isbn13",
		"UserID":    "user_id",
	}
	for in, want := range cases {
		assert.Equal(t, want, toSnakeCase(in), in)
	}
}
