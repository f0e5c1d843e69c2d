package view

import (
	"html/template"
	"strings"

	"github.com/lepinkainen/readlog/internal/library"
)

// StarCount is the number of units in every star row
const StarCount = library.MaxRating

// StarRow is a fixed row of stars, true meaning filled
type StarRow [StarCount]bool

// Stars builds a row with the first rating stars filled.
// Out of range ratings are clamped.
func Stars(rating int) StarRow {
	var row StarRow
	filled := library.ClampRating(rating)
	for i := 0; i < filled; i++ {
		row[i] = true
	}
	return row
}

// Filled returns the number of filled stars
func (r StarRow) Filled() int {
	n := 0
	for _, on := range r {
		if on {
			n++
		}
	}
	return n
}

// HTML renders the row as Bootstrap icon markup
func (r StarRow) HTML() template.HTML {
	var sb strings.Builder
	for _, on := range r {
		if on {
			sb.WriteString(`<i class="bi bi-star-fill"></i>`)
		} else {
			sb.WriteString(`<i class="bi bi-star"></i>`)
		}
	}
	return template.HTML(sb.String())
}

// Text renders the row with unicode stars
func (r StarRow) Text() string {
	var sb strings.Builder
	for _, on := range r {
		if on {
			sb.WriteString("★")
		} else {
			sb.WriteString("☆")
		}
	}
	return sb.String()
}
