package view

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/lepinkainen/readlog/internal/library"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Heading}}</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap-icons@1.11.3/font/bootstrap-icons.min.css">
<style>
  body { background: #f8fafc; }
  .book-rating .bi-star-fill { color: #f59e0b; }
  .book-rating .bi-star { color: #cbd5e1; }
  .empty-state { text-align: center; padding: 3rem 1rem; color: #6b7280; }
  .empty-state .bi { font-size: 3rem; }
</style>
</head>
<body>
<main class="container py-4">
  <header class="d-flex justify-content-between align-items-baseline mb-4">
    <h1 class="h3">{{.Heading}}</h1>
    <p class="text-muted mb-0">{{.Stats.TotalBooks}} books &middot; {{.Stats.AverageText}}/5 average</p>
  </header>
  <div class="row g-3" id="booksList">
{{.List}}  </div>
</main>
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// RenderPage renders a standalone HTML page with every book card
func RenderPage(heading string, books []library.Book) ([]byte, error) {
	data := struct {
		Heading string
		Stats   Stats
		List    template.HTML
	}{
		Heading: heading,
		Stats:   ComputeStats(books),
		List:    RenderBookList(books),
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}
