// Package review implements the review capture flow: the transient draft a
// reader composes for one book before committing it.
//
// The flow is a two-state machine, Closed -> Open(draft) -> Closed. Both
// submitting and cancelling return to Closed; cancelling simply drops the
// draft and never touches the book.
package review

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/readlog/internal/library"
)

// State of the flow
type State int

const (
	// Closed means no review is being edited.
	Closed State = iota
	// Open means a draft exists for a target book.
	Open
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Draft is the uncommitted review for one book
type Draft struct {
	TargetBookID int64
	Rating       int
	Text         string
}

// Lookup resolves a book by id, reporting whether it exists
type Lookup func(id int64) (library.Book, bool)

// Commit writes a finished review into the target book. It returns false if
// the book no longer exists and an error if the write could not be made durable.
type Commit func(id int64, rating int, text string) (bool, error)

// Flow holds the draft for the review currently being edited, plus the
// transient hover preview used by star pickers.
type Flow struct {
	state    State
	draft    Draft
	title    string
	hover    int
	hovering bool
}

// State returns the current state
func (f *Flow) State() State {
	return f.state
}

// IsOpen reports whether a draft is being edited
func (f *Flow) IsOpen() bool {
	return f.state == Open
}

// Draft returns a copy of the current draft. ok is false when closed.
func (f *Flow) Draft() (Draft, bool) {
	if f.state != Open {
		return Draft{}, false
	}
	return f.draft, true
}

// BookTitle is the title of the book the open draft targets
func (f *Flow) BookTitle() string {
	return f.title
}

// Open starts a draft for the book with the given id, seeded with its
// current rating and review. An unknown id is a no-op and returns false.
func (f *Flow) Open(lookup Lookup, bookID int64) bool {
	book, ok := lookup(bookID)
	if !ok {
		return false
	}

	f.state = Open
	f.draft = Draft{
		TargetBookID: book.ID,
		Rating:       library.ClampRating(book.Rating),
		Text:         book.Review,
	}
	f.title = book.Title
	f.hover = 0
	f.hovering = false
	return true
}

// SelectRating sets the draft rating. Only 1..5 can be selected and only
// while open; anything else is ignored. Returns whether the draft changed.
func (f *Flow) SelectRating(n int) bool {
	if f.state != Open || n < 1 || n > library.MaxRating {
		return false
	}
	f.draft.Rating = n
	return true
}

// SetText replaces the draft review text
func (f *Flow) SetText(text string) bool {
	if f.state != Open {
		return false
	}
	f.draft.Text = text
	return true
}

// HoverPreview shows n stars without changing the draft rating
func (f *Flow) HoverPreview(n int) {
	if f.state != Open {
		return
	}
	f.hover = library.ClampRating(n)
	f.hovering = true
}

// HoverEnd drops the preview so the display follows the draft again
func (f *Flow) HoverEnd() {
	f.hover = 0
	f.hovering = false
}

// DisplayRating is the rating a star picker should currently show:
// the hover preview while hovering, the draft rating otherwise.
func (f *Flow) DisplayRating() int {
	if f.state != Open {
		return 0
	}
	if f.hovering {
		return f.hover
	}
	return f.draft.Rating
}

// Submit commits the draft (rating and trimmed text) and closes the flow.
// If the target book vanished the commit is skipped but the flow still
// closes. A commit error keeps the flow open so the draft is not lost.
func (f *Flow) Submit(commit Commit) (bool, error) {
	if f.state != Open {
		return false, nil
	}

	found, err := commit(f.draft.TargetBookID, f.draft.Rating, strings.TrimSpace(f.draft.Text))
	if err != nil {
		return false, err
	}

	f.close()
	return found, nil
}

// Cancel abandons the draft
func (f *Flow) Cancel() {
	f.close()
}

func (f *Flow) close() {
	f.state = Closed
	f.draft = Draft{}
	f.title = ""
	f.HoverEnd()
}

// RatingLabel renders a rating for display, e.g. "1 star", "4 stars"
func RatingLabel(n int) string {
	if n == 1 {
		return "1 star"
	}
	return fmt.Sprintf("%d stars", n)
}
