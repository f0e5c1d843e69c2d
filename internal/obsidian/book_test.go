package obsidian

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/readlog/internal/library"
	"github.com/lepinkainen/readlog/internal/testutil"
)

func duneBook() library.Book {
	return library.Book{
		ID:        1710000000000,
		Title:     "Dune: Deluxe Edition",
		Author:    "Frank Herbert",
		Genre:     "Science Fiction",
		Rating:    4,
		Review:    "Spice.\nSand.",
		DateAdded: time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC),
	}
}

func TestBookTags(t *testing.T) {
	assert.Equal(t,
		[]string{"genre/science-fiction", "rating/4", "readlog/book", "readlog/reviewed"},
		BookTags(duneBook()))

	assert.Equal(t,
		[]string{"rating/unrated", "readlog/book"},
		BookTags(library.Book{Title: "Emma", Author: "Jane Austen"}))
}

func TestBookNote(t *testing.T) {
	content, err := BookNote(duneBook()).Build()
	require.NoError(t, err)

	want := "---\n" +
		"author: Frank Herbert\n" +
		"date_added: \"2024-03-09\"\n" +
		"genre: Science Fiction\n" +
		"rating: 4\n" +
		"readlog_id: 1710000000000\n" +
		"tags: [genre/science-fiction, rating/4, readlog/book, readlog/reviewed]\n" +
		"title: 'Dune: Deluxe Edition'\n" +
		"type: book\n" +
		"---\n\n" +
		"# Dune: Deluxe Edition\n\n" +
		"by Frank Herbert\n\n" +
		"★★★★☆\n" +
		"\n## Review\n\n" +
		"> Spice.\n" +
		"> Sand.\n"
	assert.Equal(t, want, string(content))
}

func TestBookNoteUnrated(t *testing.T) {
	note := BookNote(library.Book{ID: 2, Title: "Emma", Author: "Jane Austen"})

	_, hasRating := note.Frontmatter.Get("rating")
	assert.False(t, hasRating)
	_, hasDate := note.Frontmatter.Get("date_added")
	assert.False(t, hasDate)
	assert.Contains(t, note.Body, "☆☆☆☆☆")
	assert.NotContains(t, note.Body, "## Review")
}

func TestWriteBookNote(t *testing.T) {
	env := testutil.NewTestEnv(t)
	book := duneBook()

	written, err := WriteBookNote(book, env.RootDir(), false)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, []string{"Dune - Deluxe Edition.md"}, env.ListFiles("."))

	written, err = WriteBookNote(book, env.RootDir(), false)
	require.NoError(t, err)
	assert.False(t, written)
}

func TestWriteBookNoteKeepsUserTags(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("Dune - Deluxe Edition.md", "---\ntags: [favourite, rating/2]\n---\n\nold\n")

	book := duneBook()
	written, err := WriteBookNote(book, env.RootDir(), true)
	require.NoError(t, err)
	require.True(t, written)

	note, err := ParseMarkdown([]byte(env.ReadFileString("Dune - Deluxe Edition.md")))
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"favourite", "genre/science-fiction", "rating/2", "rating/4", "readlog/book", "readlog/reviewed"},
		note.Frontmatter.GetStringArray("tags"))
	assert.Contains(t, note.Body, "# Dune: Deluxe Edition")
}
