package library

import (
	"slices"
	"time"
)

// Collection is the ordered list of books for a session.
// Order is insertion order and never changes; books are never removed.
// A Collection is not safe for concurrent use.
type Collection struct {
	books []Book
	ids   *idGenerator
	now   func() time.Time
}

// Option configures a Collection
type Option func(*Collection)

// WithClock overrides the clock used for ids and dateAdded
func WithClock(now func() time.Time) Option {
	return func(c *Collection) {
		c.now = now
	}
}

// NewCollection creates a collection holding books, in the given order.
func NewCollection(books []Book, opts ...Option) *Collection {
	c := &Collection{
		books: slices.Clone(books),
		ids:   &idGenerator{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, b := range c.books {
		c.ids.observe(b.ID)
	}
	return c
}

// Add validates the input and appends a new unrated book.
// On validation failure the collection is left untouched.
func (c *Collection) Add(title, author, genre string) (Book, error) {
	input := NewBook{Title: title, Author: author, Genre: genre}.Normalize()
	if err := input.Validate(); err != nil {
		return Book{}, err
	}

	now := c.now()
	book := Book{
		ID:        c.ids.next(now),
		Title:     input.Title,
		Author:    input.Author,
		Genre:     input.Genre,
		Rating:    MinRating,
		Review:    "",
		DateAdded: now.UTC().Truncate(time.Millisecond),
	}
	c.books = append(c.books, book)
	return book, nil
}

// FindByID looks a book up by id. A miss is a normal outcome.
func (c *Collection) FindByID(id int64) (Book, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.books[i], true
	}
	return Book{}, false
}

// SetReview overwrites the rating and review of the book with the given id.
// The rating is clamped to [MinRating, MaxRating]. Returns false, leaving
// the collection unchanged, if no such book exists.
func (c *Collection) SetReview(id int64, rating int, review string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.books[i].Rating = ClampRating(rating)
	c.books[i].Review = review
	return true
}

// All returns a copy of the books in insertion order
func (c *Collection) All() []Book {
	return slices.Clone(c.books)
}

// Len returns the number of books
func (c *Collection) Len() int {
	return len(c.books)
}

// Clone returns an independent copy sharing the id sequence, so ids issued
// by either copy never collide.
func (c *Collection) Clone() *Collection {
	return &Collection{
		books: slices.Clone(c.books),
		ids:   c.ids,
		now:   c.now,
	}
}

func (c *Collection) indexOf(id int64) int {
	for i := range c.books {
		if c.books[i].ID == id {
			return i
		}
	}
	return -1
}
