package cmd

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	readlogerrors "github.com/lepinkainen/readlog/internal/errors"
	"github.com/lepinkainen/readlog/internal/library"
	"github.com/lepinkainen/readlog/internal/session"
	"github.com/lepinkainen/readlog/internal/snapshot"
	"github.com/lepinkainen/readlog/internal/testutil"
	"github.com/lepinkainen/readlog/internal/tui"
	"github.com/lepinkainen/readlog/internal/view"
)

func addBook(t *testing.T, title, author, genre string) library.Book {
	t.Helper()

	require.NoError(t, runCLI(t, "add", title, "-a", author, "-g", genre))
	for _, b := range storedBooks(t) {
		if b.Title == title {
			return b
		}
	}
	t.Fatalf("book %q was not stored", title)
	return library.Book{}
}

func TestCommandsRequireSetup(t *testing.T) {
	setupCLITest(t)

	err := runCLI(t, "list")
	require.Error(t, err)
	onboardingErr, ok := readlogerrors.IsOnboardingError(err)
	require.True(t, ok)
	assert.Equal(t, readlogerrors.StageLogin, onboardingErr.Stage)
}

func TestSetupThenProfile(t *testing.T) {
	env, out := setupCLITest(t)

	require.NoError(t, runCLI(t, "setup", "-n", " Ada ", "-g", "Sci-Fi, Fantasy,Sci-Fi", "-r", "Weekly", "-a", "Ursula K. Le Guin"))
	assert.Contains(t, out.String(), "Welcome, Ada!")

	out.Reset()
	require.NoError(t, runCLI(t, "setup", "-r", "Daily"))
	assert.Contains(t, out.String(), "Profile updated for Ada.")

	out.Reset()
	qrPath := env.Path("profile.png")
	require.NoError(t, runCLI(t, "profile", "--qr", qrPath))

	want := "Reading profile of Ada\n\n" +
		"Total books: 0\n" +
		"Average rating: 0/5\n\n" +
		"Favorite genres: Sci-Fi, Fantasy\n" +
		"Reading frequency: Daily\n" +
		"Favorite author: Ursula K. Le Guin\n"
	assert.Equal(t, want, out.String())

	png := env.ReadFileString("profile.png")
	assert.True(t, len(png) > 8)
	assert.Equal(t, "\x89PNG", png[:4])
}

func TestSetupRejectsMissingFrequency(t *testing.T) {
	setupCLITest(t)

	err := runCLI(t, "setup", "-n", "Ada")
	require.Error(t, err)
	assert.True(t, readlogerrors.IsValidationError(err))
}

func TestAddListAndStats(t *testing.T) {
	_, out := setupCLITest(t)
	seedReader(t, "Ada")

	dune := addBook(t, "Dune", "Frank Herbert", "Sci-Fi")
	assert.Contains(t, out.String(), `Added "Dune" by Frank Herbert (#`+strconv.FormatInt(dune.ID, 10)+")")
	addBook(t, "Emma", "Jane Austen", "Classic")

	out.Reset()
	require.NoError(t, runCLI(t, "review", strconv.FormatInt(dune.ID, 10), "-r", "5"))
	assert.Equal(t, "Saved 5 stars for \"Dune\"\n", out.String())

	out.Reset()
	require.NoError(t, runCLI(t, "list"))
	assert.Contains(t, out.String(), "Dune")
	assert.Contains(t, out.String(), "Emma")
	assert.Contains(t, out.String(), "2 books, 2.5/5 average")

	out.Reset()
	require.NoError(t, runCLI(t, "stats", "--json"))
	var stats view.Stats
	require.NoError(t, json.Unmarshal(out.Bytes(), &stats))
	assert.Equal(t, view.Stats{TotalBooks: 2, AverageRating: 2.5}, stats)
}

func TestAddRejectsMissingAuthor(t *testing.T) {
	setupCLITest(t)
	seedReader(t, "Ada")

	err := runCLI(t, "add", "Dune")
	require.Error(t, err)
	assert.True(t, readlogerrors.IsValidationError(err))
	assert.Equal(t, 0, len(storedBooks(t)))
}

func TestListEmptyCollection(t *testing.T) {
	_, out := setupCLITest(t)
	seedReader(t, "Ada")

	require.NoError(t, runCLI(t, "list"))
	assert.Contains(t, out.String(), view.EmptyStateTitle)
	assert.Contains(t, out.String(), "0 books, 0/5 average")
}

func TestReviewWithText(t *testing.T) {
	_, out := setupCLITest(t)
	seedReader(t, "Ada")
	dune := addBook(t, "Dune", "Frank Herbert", "Sci-Fi")

	out.Reset()
	require.NoError(t, runCLI(t, "review", strconv.FormatInt(dune.ID, 10), "-r", "4", "-t", "  Spice must flow  "))
	assert.Equal(t, "Saved 4 stars for \"Dune\": Spice must flow\n", out.String())

	books := storedBooks(t)
	require.Len(t, books, 1)
	assert.Equal(t, 4, books[0].Rating)
	assert.Equal(t, "Spice must flow", books[0].Review)
}

func TestReviewRejectsOutOfRangeRating(t *testing.T) {
	setupCLITest(t)
	seedReader(t, "Ada")

	err := runCLI(t, "review", "1", "-r", "9")
	require.Error(t, err)
	assert.True(t, readlogerrors.IsValidationError(err))
}

func TestReviewUnknownBook(t *testing.T) {
	setupCLITest(t)
	seedReader(t, "Ada")

	err := runCLI(t, "review", "123", "-r", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "book 123 not found")
}

func TestReviewInteractive(t *testing.T) {
	_, out := setupCLITest(t)
	seedReader(t, "Ada")
	dune := addBook(t, "Dune", "Frank Herbert", "Sci-Fi")

	origSelect, origEdit := selectBook, editReview
	t.Cleanup(func() { selectBook, editReview = origSelect, origEdit })

	selectBook = func(_ string, books []library.Book) (tui.SelectionResult, error) {
		require.Len(t, books, 1)
		return tui.SelectionResult{Action: tui.ActionSelected, Selection: &books[0]}, nil
	}
	editReview = func(sess *session.Session, bookID int64) (tui.ReviewResult, error) {
		assert.Equal(t, dune.ID, bookID)
		book, err := submitReview(sess, bookID, 3, "Long")
		return tui.ReviewResult{Action: tui.ReviewSubmitted, Book: book}, err
	}

	out.Reset()
	require.NoError(t, runCLI(t, "review"))
	assert.Equal(t, "Saved 3 stars for \"Dune\": Long\n", out.String())
}

func TestReviewInteractiveCancelAndStop(t *testing.T) {
	_, out := setupCLITest(t)
	seedReader(t, "Ada")
	dune := addBook(t, "Dune", "Frank Herbert", "Sci-Fi")

	origSelect, origEdit := selectBook, editReview
	t.Cleanup(func() { selectBook, editReview = origSelect, origEdit })

	editReview = func(*session.Session, int64) (tui.ReviewResult, error) {
		return tui.ReviewResult{Action: tui.ReviewCancelled}, nil
	}
	out.Reset()
	require.NoError(t, runCLI(t, "review", strconv.FormatInt(dune.ID, 10)))
	assert.Equal(t, "Review discarded.\n", out.String())

	selectBook = func(string, []library.Book) (tui.SelectionResult, error) {
		return tui.SelectionResult{Action: tui.ActionStopped}, nil
	}
	err := runCLI(t, "review")
	require.Error(t, err)
	assert.True(t, readlogerrors.IsStopProcessingError(err))
}

func TestSnapshotWritesPNG(t *testing.T) {
	env, out := setupCLITest(t)
	seedReader(t, "Ada")
	addBook(t, "Dune", "Frank Herbert", "Sci-Fi")

	orig := captureSnapshot
	t.Cleanup(func() { captureSnapshot = orig })

	var gotPage string
	var gotOpts snapshot.Options
	captureSnapshot = func(_ context.Context, page []byte, opts snapshot.Options) ([]byte, error) {
		gotPage = string(page)
		gotOpts = opts
		return []byte("\x89PNGfake"), nil
	}

	out.Reset()
	require.NoError(t, runCLI(t, "snapshot", "-o", env.Path("shelf.png"), "--width", "900", "--html", env.Path("shelf.html")))

	assert.Contains(t, gotPage, "Ada&#39;s books")
	assert.Contains(t, gotPage, "Dune")
	assert.Equal(t, int64(900), gotOpts.Width)
	assert.True(t, gotOpts.Headless)
	assert.Equal(t, "\x89PNGfake", env.ReadFileString("shelf.png"))
	assert.True(t, env.FileExists("shelf.html"))
	assert.Contains(t, out.String(), "Saved snapshot of 1 books")
}

func TestSnapshotFailure(t *testing.T) {
	env, _ := setupCLITest(t)
	seedReader(t, "Ada")

	orig := captureSnapshot
	t.Cleanup(func() { captureSnapshot = orig })
	captureSnapshot = func(context.Context, []byte, snapshot.Options) ([]byte, error) {
		return nil, errors.New("chrome not found")
	}

	err := runCLI(t, "snapshot", "-o", env.Path("shelf.png"))
	require.Error(t, err)
	assert.False(t, env.FileExists("shelf.png"))
}

func TestExportJSONAndMarkdown(t *testing.T) {
	env, _ := setupCLITest(t)
	seedReader(t, "Ada")
	addBook(t, "Dune", "Frank Herbert", "Sci-Fi")
	addBook(t, "Emma", "Jane Austen", "Classic")

	require.NoError(t, runCLI(t, "export", "json"))
	var exported []library.Book
	require.NoError(t, json.Unmarshal([]byte(env.ReadFileString("json/readlog.json")), &exported))
	require.Len(t, exported, 2)
	assert.Equal(t, "Dune", exported[0].Title)

	require.NoError(t, runCLI(t, "export", "markdown"))
	assert.Equal(t, []string{"Dune.md", "Emma.md"}, env.ListFiles("markdown/readlog"))
	assert.Contains(t, env.ReadFileString("markdown/readlog/Dune.md"), "author: Frank Herbert")
}

func TestPublishToSQLite(t *testing.T) {
	env, out := setupCLITest(t)
	seedReader(t, "Ada")
	addBook(t, "Dune", "Frank Herbert", "Sci-Fi")
	dbPath := testutil.SetupDatasetteDB(t, env)

	out.Reset()
	require.NoError(t, runCLI(t, "publish"))
	assert.Contains(t, out.String(), "Published 1 books")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var title, author string
	require.NoError(t, db.QueryRow("SELECT title, author FROM books").Scan(&title, &author))
	assert.Equal(t, "Dune", title)
	assert.Equal(t, "Frank Herbert", author)
}

func TestImportGoodreads(t *testing.T) {
	_, out := setupCLITest(t)
	seedReader(t, "Ada")
	addBook(t, "Dune", "Frank Herbert", "Sci-Fi")

	orig := parseGoodreads
	t.Cleanup(func() { parseGoodreads = orig })
	parseGoodreads = func(path string) ([]session.ImportEntry, error) {
		assert.Equal(t, "export.csv", path)
		return []session.ImportEntry{
			{Title: "dune", Author: "frank herbert", Genre: "Sci-Fi"},
			{Title: "Emma", Author: "Jane Austen", Genre: "Classic", Rating: 4, Review: "Witty"},
			{Title: "", Author: "Nobody"},
		}, nil
	}

	out.Reset()
	require.NoError(t, runCLI(t, "import", "goodreads", "-f", "export.csv"))
	assert.Equal(t, "Imported 1 books (1 duplicates, 1 invalid)\n", out.String())

	books := storedBooks(t)
	require.Len(t, books, 2)
	assert.Equal(t, "Emma", books[1].Title)
	assert.Equal(t, 4, books[1].Rating)
}

func TestImportGoodreadsRequiresInput(t *testing.T) {
	setupCLITest(t)

	err := runCLI(t, "import", "goodreads")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input CSV file is required")
}

func TestLogout(t *testing.T) {
	_, out := setupCLITest(t)
	seedReader(t, "Ada")
	addBook(t, "Dune", "Frank Herbert", "Sci-Fi")

	orig := confirm
	t.Cleanup(func() { confirm = orig })

	var prompt string
	confirm = func(p string) (bool, error) {
		prompt = p
		return false, nil
	}
	out.Reset()
	require.NoError(t, runCLI(t, "logout"))
	assert.Equal(t, "Delete Ada's reading log and all 1 books?", prompt)
	assert.Equal(t, "Nothing deleted.\n", out.String())
	assert.Equal(t, 1, len(storedBooks(t)))

	out.Reset()
	require.NoError(t, runCLI(t, "logout", "--yes"))
	assert.Equal(t, "All reading log data deleted.\n", out.String())
	assert.Equal(t, 0, len(storedBooks(t)))

	err := runCLI(t, "list")
	_, ok := readlogerrors.IsOnboardingError(err)
	assert.True(t, ok)
}
