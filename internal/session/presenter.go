package session

import (
	"fmt"

	"github.com/lepinkainen/readlog/internal/library"
	"github.com/lepinkainen/readlog/internal/view"
)

// Dialog names a modal surface the session asks the presenter to toggle
type Dialog int

const (
	DialogAddBook Dialog = iota
	DialogReview
	DialogProfile
)

func (d Dialog) String() string {
	switch d {
	case DialogAddBook:
		return "add-book"
	case DialogReview:
		return "review"
	case DialogProfile:
		return "profile"
	default:
		return fmt.Sprintf("Dialog(%d)", int(d))
	}
}

// Presenter shows and hides dialogs. The session never tracks visibility
// itself; it only tells the presenter what should change.
type Presenter interface {
	Show(d Dialog)
	Hide(d Dialog)
}

// NopPresenter ignores every request
type NopPresenter struct{}

func (NopPresenter) Show(Dialog) {}
func (NopPresenter) Hide(Dialog) {}

// Snapshot is what an observer receives after a render-worthy change
type Snapshot struct {
	Books []library.Book
	Stats view.Stats
}

// Observer is called with a fresh snapshot on activation and after every
// persisted mutation.
type Observer func(Snapshot)
