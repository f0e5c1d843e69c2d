// Package session owns the state of one reading session: the book
// collection, the review draft and the identity records loaded on
// activation. All user actions go through Dispatch.
package session

import (
	stdErrors "errors"
	"fmt"
	"log/slog"
	"time"

	readlogerrors "github.com/lepinkainen/readlog/internal/errors"
	"github.com/lepinkainen/readlog/internal/library"
	"github.com/lepinkainen/readlog/internal/profile"
	"github.com/lepinkainen/readlog/internal/review"
	"github.com/lepinkainen/readlog/internal/storage"
	"github.com/lepinkainen/readlog/internal/view"
)

// ErrInactive is returned by Dispatch after the session has logged out
var ErrInactive = stdErrors.New("session is not active")

// Options configure a Session. The zero value is usable.
type Options struct {
	Presenter Presenter
	Observer  Observer
	// Clock overrides time.Now for ids and dateAdded
	Clock func() time.Time
	// QR controls the image produced by ExportProfile. Zero means defaults.
	QR *profile.QROptions
	// SkipQR leaves Export.QRCode empty
	SkipQR bool
}

// Session is a single-writer state container. It is not safe for
// concurrent use.
type Session struct {
	store     storage.Store
	presenter Presenter
	observer  Observer
	qr        profile.QROptions
	skipQR    bool

	user   profile.User
	prefs  profile.Preferences
	books  *library.Collection
	review review.Flow
	active bool
}

// Activate loads the session state from store. It fails with an
// OnboardingError when the user or preferences have not been set up yet.
// Malformed books data is treated as an empty collection.
func Activate(store storage.Store, opts Options) (*Session, error) {
	user, ok, err := storage.LoadJSON[profile.User](store, storage.KeyUser)
	if err != nil {
		return nil, readlogerrors.NewStorageError("load", storage.KeyUser, err)
	}
	if !ok {
		return nil, readlogerrors.NewOnboardingError(readlogerrors.StageLogin)
	}

	prefs, ok, err := storage.LoadJSON[profile.Preferences](store, storage.KeyPreferences)
	if err != nil {
		return nil, readlogerrors.NewStorageError("load", storage.KeyPreferences, err)
	}
	if !ok || !prefs.Complete() {
		return nil, readlogerrors.NewOnboardingError(readlogerrors.StagePreferences)
	}

	raw, ok, err := store.Load(storage.KeyBooks)
	if err != nil {
		return nil, readlogerrors.NewStorageError("load", storage.KeyBooks, err)
	}
	var books []library.Book
	if ok {
		books = library.DecodeBooks(raw)
	}

	var collectionOpts []library.Option
	if opts.Clock != nil {
		collectionOpts = append(collectionOpts, library.WithClock(opts.Clock))
	}

	s := &Session{
		store:     store,
		presenter: opts.Presenter,
		observer:  opts.Observer,
		qr:        profile.DefaultQROptions(),
		skipQR:    opts.SkipQR,
		user:      user,
		prefs:     prefs,
		books:     library.NewCollection(books, collectionOpts...),
		active:    true,
	}
	if s.presenter == nil {
		s.presenter = NopPresenter{}
	}
	if opts.QR != nil {
		s.qr = *opts.QR
	}

	slog.Debug("Session activated", "user", user.Name, "books", s.books.Len())
	s.notify()
	return s, nil
}

// Active reports whether the session still accepts commands
func (s *Session) Active() bool {
	return s.active
}

// User returns the identity loaded on activation
func (s *Session) User() profile.User {
	return s.user
}

// Preferences returns the reading preferences loaded on activation
func (s *Session) Preferences() profile.Preferences {
	return s.prefs
}

// Books returns a snapshot of the collection in insertion order
func (s *Session) Books() []library.Book {
	return s.books.All()
}

// FindBook looks up a book by id
func (s *Session) FindBook(id int64) (library.Book, bool) {
	return s.books.FindByID(id)
}

// Stats returns the aggregate numbers for the current collection
func (s *Session) Stats() view.Stats {
	return view.ComputeStats(s.books.All())
}

// Review exposes the review flow for read access (state, draft, display rating)
func (s *Session) Review() *review.Flow {
	return &s.review
}

// Snapshot returns the current books and stats
func (s *Session) Snapshot() Snapshot {
	books := s.books.All()
	return Snapshot{Books: books, Stats: view.ComputeStats(books)}
}

// mutate applies fn to a clone of the collection, persists the clone and
// only then swaps it in. On any failure the in-memory and stored state stay
// as they were.
func (s *Session) mutate(fn func(c *library.Collection) (library.Book, bool, error)) (library.Book, bool, error) {
	next := s.books.Clone()

	book, changed, err := fn(next)
	if err != nil || !changed {
		return book, false, err
	}

	data, err := library.EncodeBooks(next.All())
	if err != nil {
		return library.Book{}, false, fmt.Errorf("failed to encode books: %w", err)
	}
	if err := s.store.Save(storage.KeyBooks, data); err != nil {
		slog.Error("Failed to save books", "error", err)
		return library.Book{}, false, readlogerrors.NewStorageError("save", storage.KeyBooks, err)
	}

	s.books = next
	s.notify()
	return book, true, nil
}

func (s *Session) notify() {
	if s.observer != nil {
		s.observer(s.Snapshot())
	}
}
