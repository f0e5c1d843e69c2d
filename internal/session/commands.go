package session

import (
	"fmt"
	"log/slog"
	"strings"

	readlogerrors "github.com/lepinkainen/readlog/internal/errors"
	"github.com/lepinkainen/readlog/internal/library"
	"github.com/lepinkainen/readlog/internal/profile"
	"github.com/lepinkainen/readlog/internal/storage"
)

// Command is one user action. The set is closed: only the types in this
// package implement it.
type Command interface {
	command()
}

// AddBook appends a new unrated book
type AddBook struct {
	Title  string
	Author string
	Genre  string
}

// OpenReview starts a review draft for a book
type OpenReview struct {
	BookID int64
}

// SelectRating picks 1..5 stars for the open draft
type SelectRating struct {
	Rating int
}

// HoverRating previews a rating without selecting it
type HoverRating struct {
	Rating int
}

// EndHover drops the hover preview
type EndHover struct{}

// EditReviewText replaces the draft text
type EditReviewText struct {
	Text string
}

// SubmitReview commits the open draft
type SubmitReview struct{}

// CancelReview abandons the open draft
type CancelReview struct{}

// ExportProfile builds the shareable profile
type ExportProfile struct{}

// Logout wipes all stored data. Nothing happens unless Confirmed is set.
type Logout struct {
	Confirmed bool
}

func (AddBook) command()        {}
func (OpenReview) command()     {}
func (SelectRating) command()   {}
func (HoverRating) command()    {}
func (EndHover) command()       {}
func (EditReviewText) command() {}
func (SubmitReview) command()   {}
func (CancelReview) command()   {}
func (ExportProfile) command()  {}
func (Logout) command()         {}

// Export is the output of ExportProfile
type Export struct {
	Summary profile.Summary
	Text    string
	QRCode  []byte // PNG, empty when QR rendering is skipped
}

// Result describes what a command did
type Result struct {
	// Found is false when a command referenced a book or draft that does not
	// exist; such commands are no-ops.
	Found bool
	// Changed is true when the collection was modified and persisted.
	Changed bool
	// Book is the added or reviewed book, when there is one.
	Book library.Book
	// Export is set by ExportProfile.
	Export *Export
	// LoggedOut is set once the session has wiped storage.
	LoggedOut bool
}

// Dispatch runs a single command to completion
func (s *Session) Dispatch(cmd Command) (Result, error) {
	if !s.active {
		return Result{}, ErrInactive
	}

	switch c := cmd.(type) {
	case AddBook:
		return s.addBook(c)
	case OpenReview:
		return s.openReview(c)
	case SelectRating:
		return Result{Found: s.review.SelectRating(c.Rating)}, nil
	case HoverRating:
		s.review.HoverPreview(c.Rating)
		return Result{Found: s.review.IsOpen()}, nil
	case EndHover:
		s.review.HoverEnd()
		return Result{Found: s.review.IsOpen()}, nil
	case EditReviewText:
		return Result{Found: s.review.SetText(c.Text)}, nil
	case SubmitReview:
		return s.submitReview()
	case CancelReview:
		return s.cancelReview(), nil
	case ExportProfile:
		return s.exportProfile()
	case Logout:
		return s.logout(c)
	default:
		return Result{}, fmt.Errorf("unknown command %T", cmd)
	}
}

func (s *Session) addBook(c AddBook) (Result, error) {
	book, changed, err := s.mutate(func(next *library.Collection) (library.Book, bool, error) {
		b, err := next.Add(c.Title, c.Author, c.Genre)
		if err != nil {
			return library.Book{}, false, err
		}
		return b, true, nil
	})
	if err != nil {
		if readlogerrors.IsValidationError(err) {
			slog.Debug("Rejected book", "error", err)
		}
		return Result{}, err
	}

	slog.Info("Added book", "id", book.ID, "title", book.Title)
	s.presenter.Hide(DialogAddBook)
	return Result{Found: true, Changed: changed, Book: book}, nil
}

func (s *Session) openReview(c OpenReview) (Result, error) {
	if !s.review.Open(s.books.FindByID, c.BookID) {
		slog.Debug("Review target not found", "id", c.BookID)
		return Result{}, nil
	}
	book, _ := s.books.FindByID(c.BookID)
	s.presenter.Show(DialogReview)
	return Result{Found: true, Book: book}, nil
}

func (s *Session) submitReview() (Result, error) {
	if !s.review.IsOpen() {
		return Result{}, nil
	}

	var reviewed library.Book
	found, err := s.review.Submit(func(id int64, rating int, text string) (bool, error) {
		book, changed, err := s.mutate(func(next *library.Collection) (library.Book, bool, error) {
			if !next.SetReview(id, rating, text) {
				return library.Book{}, false, nil
			}
			b, _ := next.FindByID(id)
			return b, true, nil
		})
		reviewed = book
		return changed, err
	})
	if err != nil {
		return Result{}, err
	}

	s.presenter.Hide(DialogReview)
	if !found {
		slog.Debug("Review target vanished before submit")
		return Result{}, nil
	}

	slog.Info("Saved review", "id", reviewed.ID, "rating", reviewed.Rating)
	return Result{Found: true, Changed: true, Book: reviewed}, nil
}

func (s *Session) cancelReview() Result {
	wasOpen := s.review.IsOpen()
	s.review.Cancel()
	if wasOpen {
		s.presenter.Hide(DialogReview)
	}
	return Result{Found: wasOpen}
}

func (s *Session) exportProfile() (Result, error) {
	summary := profile.Build(s.user, s.prefs, s.books.All())
	export := &Export{
		Summary: summary,
		Text:    profile.FormatText(summary),
	}

	if !s.skipQR {
		png, err := profile.EncodeQR(export.Text, s.qr)
		if err != nil {
			return Result{}, err
		}
		export.QRCode = png
	}

	s.presenter.Show(DialogProfile)
	return Result{Found: true, Export: export}, nil
}

func (s *Session) logout(c Logout) (Result, error) {
	if !c.Confirmed {
		return Result{}, nil
	}

	if err := s.store.Remove(storage.AllKeys...); err != nil {
		return Result{}, readlogerrors.NewStorageError("remove", strings.Join(storage.AllKeys, ","), err)
	}

	s.review.Cancel()
	s.books = library.NewCollection(nil)
	s.user = profile.User{}
	s.prefs = profile.Preferences{}
	s.active = false

	slog.Info("Logged out, local data removed")
	return Result{Found: true, LoggedOut: true}, nil
}
