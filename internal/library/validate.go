package library

import (
	"strings"

	"github.com/lepinkainen/readlog/internal/validation"
)

// NewBook is the user input for adding a book, after trimming
type NewBook struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Genre  string `json:"genre"`
}

var validate = validation.New()

// Normalize returns a copy of the input with every field trimmed
func (n NewBook) Normalize() NewBook {
	return NewBook{
		Title:  strings.TrimSpace(n.Title),
		Author: strings.TrimSpace(n.Author),
		Genre:  strings.TrimSpace(n.Genre),
	}
}

// Validate checks the trimmed input and returns a ValidationError
// describing every rejected field.
func (n NewBook) Validate() error {
	return validate.Validate("invalid book", n.Normalize())
}
