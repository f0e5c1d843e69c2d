package obsidian

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lepinkainen/readlog/internal/fileutil"
	"github.com/lepinkainen/readlog/internal/library"
	"github.com/lepinkainen/readlog/internal/view"
)

const dateLayout = "2006-01-02"

// BookTags returns the tags a book note is filed under
func BookTags(book library.Book) []string {
	tags := NewTagSet()
	tags.Add("readlog/book")
	tags.AddIf(book.Genre != "", "genre/"+book.Genre)
	if book.IsRated() {
		tags.Add(fmt.Sprintf("rating/%d", library.ClampRating(book.Rating)))
	} else {
		tags.Add("rating/unrated")
	}
	tags.AddIf(book.Review != "", "readlog/reviewed")
	return tags.Sorted()
}

// BookNote renders a book as a note
func BookNote(book library.Book) *Note {
	fm := NewFrontmatter()
	fm.Set("title", book.Title)
	fm.Set("author", book.Author)
	fm.Set("type", "book")
	fm.Set("readlog_id", book.ID)
	if book.Genre != "" {
		fm.Set("genre", book.Genre)
	}
	if book.IsRated() {
		fm.Set("rating", library.ClampRating(book.Rating))
	}
	if !book.DateAdded.IsZero() {
		fm.Set("date_added", book.DateAdded.UTC().Format(dateLayout))
	}
	fm.Set("tags", BookTags(book))

	var body strings.Builder
	fmt.Fprintf(&body, "# %s\n\n", book.Title)
	fmt.Fprintf(&body, "by %s\n\n", book.Author)
	fmt.Fprintf(&body, "%s\n", view.Stars(book.Rating).Text())
	if book.Review != "" {
		body.WriteString("\n## Review\n\n")
		for _, line := range strings.Split(book.Review, "\n") {
			body.WriteString("> " + line + "\n")
		}
	}

	return &Note{Frontmatter: fm, Body: body.String()}
}

// WriteBookNote writes the note for book into dir.
// An existing note is only replaced when overwrite is set, and keeps any
// tags the user added to it by hand. Returns whether the file was written.
func WriteBookNote(book library.Book, dir string, overwrite bool) (bool, error) {
	path := fileutil.GetMarkdownFilePath(book.Title, dir)
	note := BookNote(book)

	if fileutil.FileExists(path) {
		if !overwrite {
			slog.Debug("Note exists, skipping", "path", path)
			return false, nil
		}
		if existing, err := readNote(path); err != nil {
			slog.Warn("Could not parse existing note, replacing it", "path", path, "error", err)
		} else {
			merged := MergeTags(existing.Frontmatter.GetStringArray("tags"), note.Frontmatter.GetStringArray("tags"))
			note.Frontmatter.Set("tags", merged)
		}
	}

	content, err := note.Build()
	if err != nil {
		return false, fmt.Errorf("failed to build note for %q: %w", book.Title, err)
	}

	return fileutil.WriteFileWithOverwrite(path, content, 0o644, true)
}

func readNote(path string) (*Note, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseMarkdown(content)
}
