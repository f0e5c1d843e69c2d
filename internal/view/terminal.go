package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/readlog/internal/library"
)

const defaultCardWidth = 60

type terminalStyles struct {
	card    lipgloss.Style
	empty   lipgloss.Style
	title   lipgloss.Style
	author  lipgloss.Style
	genre   lipgloss.Style
	rating  lipgloss.Style
	review  lipgloss.Style
	idStyle lipgloss.Style
}

func newTerminalStyles(width int) terminalStyles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(width)

	return terminalStyles{
		card: card,
		empty: card.Copy().
			BorderForeground(lipgloss.Color("244")).
			Align(lipgloss.Center),
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		author: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
		genre: lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("252")),
		rating: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		review: lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")).
			Italic(true),
		idStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

// TerminalCards renders the books as bordered terminal cards, or the
// empty-state placeholder when there are none. width <= 0 uses the default.
func TerminalCards(books []library.Book, width int) string {
	if width <= 0 {
		width = defaultCardWidth
	}
	styles := newTerminalStyles(width)

	if len(books) == 0 {
		return styles.empty.Render(lipgloss.JoinVertical(lipgloss.Center,
			styles.title.Render(EmptyStateTitle),
			EmptyStateHint,
		))
	}

	cards := make([]string, 0, len(books))
	for _, book := range books {
		cards = append(cards, terminalCard(styles, book))
	}
	return strings.Join(cards, "\n")
}

func terminalCard(styles terminalStyles, book library.Book) string {
	lines := []string{
		styles.title.Render(book.Title) + " " + styles.idStyle.Render(fmt.Sprintf("#%d", book.ID)),
		styles.author.Render("by " + book.Author),
	}
	if book.Genre != "" {
		lines = append(lines, styles.genre.Render(book.Genre))
	}

	rating := library.ClampRating(book.Rating)
	if rating > 0 {
		lines = append(lines, styles.rating.Render(fmt.Sprintf("%s %d/5", Stars(rating).Text(), rating)))
	}

	if book.Review != "" {
		excerpt, truncated := Excerpt(book.Review, ReviewExcerptLength)
		if truncated {
			excerpt += Ellipsis
		}
		lines = append(lines, styles.review.Render(excerpt))
	}

	return styles.card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
