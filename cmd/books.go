package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	readlogerrors "github.com/lepinkainen/readlog/internal/errors"
	"github.com/lepinkainen/readlog/internal/library"
	"github.com/lepinkainen/readlog/internal/review"
	"github.com/lepinkainen/readlog/internal/session"
	"github.com/lepinkainen/readlog/internal/tui"
	"github.com/lepinkainen/readlog/internal/view"
)

var (
	selectBook = tui.SelectBook
	editReview = func(sess *session.Session, bookID int64) (tui.ReviewResult, error) {
		return tui.EditReview(sess, bookID)
	}
)

// AddCmd adds a book
type AddCmd struct {
	Title  string `arg:"" help:"Book title"`
	Author string `short:"a" help:"Author"`
	Genre  string `short:"g" help:"Genre"`
}

func (c *AddCmd) Run() error {
	return withSession(func(sess *session.Session) error {
		res, err := sess.Dispatch(session.AddBook{Title: c.Title, Author: c.Author, Genre: c.Genre})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "Added %q by %s (#%d)\n", res.Book.Title, res.Book.Author, res.Book.ID)
		return err
	})
}

// ListCmd prints the collection as cards
type ListCmd struct {
	Width int `help:"Card width in columns" default:"60"`
}

func (c *ListCmd) Run() error {
	return withSession(func(sess *session.Session) error {
		books := sess.Books()
		if _, err := fmt.Fprintln(stdout, view.TerminalCards(books, c.Width)); err != nil {
			return err
		}
		stats := sess.Stats()
		_, err := fmt.Fprintf(stdout, "\n%d books, %s/5 average\n", stats.TotalBooks, stats.AverageText())
		return err
	})
}

// ReviewCmd rates and reviews a book. With --rating or --text the review is
// saved directly; otherwise the interactive editor opens.
type ReviewCmd struct {
	ID     int64  `arg:"" optional:"" help:"Book id (pick interactively when omitted)"`
	Rating int    `short:"r" help:"Rating from 1 to 5"`
	Text   string `short:"t" help:"Review text"`
}

func (c *ReviewCmd) interactive() bool {
	return c.Rating == 0 && c.Text == ""
}

func (c *ReviewCmd) Run() error {
	if c.Rating != 0 && (c.Rating < 1 || c.Rating > library.MaxRating) {
		return readlogerrors.NewValidationError("invalid review", map[string]string{
			"rating": fmt.Sprintf("must be between 1 and %d", library.MaxRating),
		})
	}

	return withSession(func(sess *session.Session) error {
		id := c.ID
		if id == 0 {
			picked, err := selectBook("Which book did you read?", sess.Books())
			if err != nil {
				return err
			}
			switch picked.Action {
			case tui.ActionNone:
				_, err := fmt.Fprintln(stdout, view.EmptyStateTitle)
				return err
			case tui.ActionStopped:
				return readlogerrors.NewStopProcessingError("book selection cancelled")
			}
			id = picked.Selection.ID
		}

		if c.interactive() {
			result, err := editReview(sess, id)
			if err != nil {
				return err
			}
			if result.Action == tui.ReviewSubmitted {
				return printReviewed(result.Book)
			}
			_, err = fmt.Fprintln(stdout, "Review discarded.")
			return err
		}

		book, err := submitReview(sess, id, c.Rating, c.Text)
		if err != nil {
			return err
		}
		return printReviewed(book)
	})
}

// submitReview drives the review flow without a UI
func submitReview(sess *session.Session, id int64, rating int, text string) (library.Book, error) {
	res, err := sess.Dispatch(session.OpenReview{BookID: id})
	if err != nil {
		return library.Book{}, err
	}
	if !res.Found {
		return library.Book{}, fmt.Errorf("book %d not found", id)
	}

	commands := []session.Command{}
	if rating > 0 {
		commands = append(commands, session.SelectRating{Rating: rating})
	}
	if text != "" {
		commands = append(commands, session.EditReviewText{Text: text})
	}
	commands = append(commands, session.SubmitReview{})

	for _, cmd := range commands {
		res, err = sess.Dispatch(cmd)
		if err != nil {
			_, _ = sess.Dispatch(session.CancelReview{})
			return library.Book{}, err
		}
	}
	return res.Book, nil
}

func printReviewed(book library.Book) error {
	line := fmt.Sprintf("Saved %s for %q", review.RatingLabel(book.Rating), book.Title)
	if book.Review != "" {
		excerpt, _ := view.Excerpt(book.Review, 60)
		line += ": " + strings.ReplaceAll(excerpt, "\n", " ")
	}
	_, err := fmt.Fprintln(stdout, line)
	return err
}

// StatsCmd prints the collection totals
type StatsCmd struct {
	JSON bool `help:"Print as JSON"`
}

func (c *StatsCmd) Run() error {
	return withSession(func(sess *session.Session) error {
		stats := sess.Stats()
		if c.JSON {
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}
		_, err := fmt.Fprintf(stdout, "Total books: %d\nAverage rating: %s/5\n", stats.TotalBooks, stats.AverageText())
		return err
	})
}
