// Package view derives presentational output from a collection snapshot:
// HTML book cards, star rows, terminal cards and aggregate statistics.
// Everything here is pure and never mutates the books it is given.
package view

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/lepinkainen/readlog/internal/library"
)

const cardTemplate = `<div class="col-12 col-md-6 col-lg-4">
  <div class="card book-card shadow-sm border-0">
    <div class="card-body">
      <h5 class="card-title">{{.Title}}</h5>
      <p class="text-muted mb-2"><i class="bi bi-person"></i> {{.Author}}</p>
      <p class="mb-2"><span class="badge bg-secondary">{{.Genre}}</span></p>
{{- if .Rated}}
      <div class="book-rating mb-2">{{.Stars}}<span class="ms-1">{{.Rating}}/5</span></div>
{{- end}}
{{- if .Review}}
      <p class="text-muted small mb-2"><i class="bi bi-chat-left-text"></i> {{.Review}}{{if .Truncated}}` + Ellipsis + `{{end}}</p>
{{- end}}
      <div class="book-actions">
        <button class="btn btn-sm btn-outline-primary w-100" data-book-id="{{.ID}}"><i class="bi bi-star"></i> {{.Action}}</button>
      </div>
    </div>
  </div>
</div>
`

const emptyStateTemplate = `<div class="col-12">
  <div class="empty-state">
    <i class="bi bi-book"></i>
    <h5>{{.Title}}</h5>
    <p>{{.Hint}}</p>
  </div>
</div>
`

// Empty state copy shown when the collection has no books
const (
	EmptyStateTitle = "No books yet"
	EmptyStateHint  = "Start by adding your first book"
)

// Button labels on a card
const (
	ActionAddReview  = "Add review"
	ActionEditReview = "Edit review"
)

var (
	cardTmpl       = template.Must(template.New("card").Parse(cardTemplate))
	emptyStateTmpl = template.Must(template.New("empty").Parse(emptyStateTemplate))
)

type cardData struct {
	ID        int64
	Title     string
	Author    string
	Genre     string
	Rated     bool
	Rating    int
	Stars     template.HTML
	Review    string
	Truncated bool
	Action    string
}

func newCardData(book library.Book) cardData {
	excerpt, truncated := Excerpt(book.Review, ReviewExcerptLength)
	rating := library.ClampRating(book.Rating)

	action := ActionAddReview
	if rating > 0 {
		action = ActionEditReview
	}

	return cardData{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		Genre:     book.Genre,
		Rated:     rating > 0,
		Rating:    rating,
		Stars:     Stars(rating).HTML(),
		Review:    excerpt,
		Truncated: truncated,
		Action:    action,
	}
}

// RenderBookCard renders one book as an HTML card. User-entered text is
// escaped; stars are shown only for rated books.
func RenderBookCard(book library.Book) template.HTML {
	return mustExecute(cardTmpl, newCardData(book))
}

// RenderEmptyState renders the placeholder shown for an empty collection
func RenderEmptyState() template.HTML {
	return mustExecute(emptyStateTmpl, struct{ Title, Hint string }{EmptyStateTitle, EmptyStateHint})
}

// RenderBookList renders every card in collection order, or the empty state
// placeholder when there are no books.
func RenderBookList(books []library.Book) template.HTML {
	if len(books) == 0 {
		return RenderEmptyState()
	}

	var buf bytes.Buffer
	for _, book := range books {
		buf.WriteString(string(RenderBookCard(book)))
	}
	return template.HTML(buf.String())
}

// mustExecute runs a template over data that is always representable;
// a failure here is a programming error.
func mustExecute(t *template.Template, data any) template.HTML {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("view: executing %s template: %v", t.Name(), err))
	}
	return template.HTML(buf.String())
}
