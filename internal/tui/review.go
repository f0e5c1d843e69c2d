package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	readlogerrors "github.com/lepinkainen/readlog/internal/errors"
	"github.com/lepinkainen/readlog/internal/library"
	"github.com/lepinkainen/readlog/internal/review"
	"github.com/lepinkainen/readlog/internal/session"
	"github.com/lepinkainen/readlog/internal/view"
)

// Dispatcher runs session commands. *session.Session satisfies it.
type Dispatcher interface {
	Dispatch(cmd session.Command) (session.Result, error)
	Review() *review.Flow
}

// ReviewAction is how the review editor ended
type ReviewAction int

const (
	ReviewNone ReviewAction = iota
	ReviewSubmitted
	ReviewCancelled
	ReviewStopped
)

// ReviewResult holds the outcome of EditReview
type ReviewResult struct {
	Action ReviewAction
	Book   library.Book
}

type reviewFocus int

const (
	focusStars reviewFocus = iota
	focusText
)

type reviewModel struct {
	sess   Dispatcher
	text   textarea.Model
	focus  reviewFocus
	cursor int
	err    error
	result ReviewResult
}

func newReviewModel(sess Dispatcher) *reviewModel {
	draft, _ := sess.Review().Draft()

	ta := textarea.New()
	ta.Placeholder = "What did you think?"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(defaultListWidth - 4)
	ta.SetHeight(6)
	ta.SetValue(draft.Text)
	ta.Blur()

	return &reviewModel{
		sess:   sess,
		text:   ta,
		focus:  focusStars,
		cursor: draft.Rating,
	}
}

func (m *reviewModel) Init() tea.Cmd { return nil }

func (m *reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.focus == focusText {
			var cmd tea.Cmd
			m.text, cmd = m.text.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c":
		m.dispatch(session.CancelReview{})
		m.result = ReviewResult{Action: ReviewStopped}
		return m, tea.Quit
	case "esc":
		m.dispatch(session.CancelReview{})
		m.result = ReviewResult{Action: ReviewCancelled}
		return m, tea.Quit
	case "ctrl+s":
		return m.submit()
	case "tab":
		return m.toggleFocus()
	}

	if m.focus == focusText {
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		return m, cmd
	}

	switch key := keyMsg.String(); key {
	case "1", "2", "3", "4", "5":
		n := int(key[0] - '0')
		m.cursor = n
		m.dispatch(session.SelectRating{Rating: n})
		m.dispatch(session.EndHover{})
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case " ":
		if m.cursor > 0 {
			m.dispatch(session.SelectRating{Rating: m.cursor})
			m.dispatch(session.EndHover{})
		}
	case "enter":
		return m.submit()
	}
	return m, nil
}

func (m *reviewModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 1 {
		m.cursor = 1
	}
	if m.cursor > library.MaxRating {
		m.cursor = library.MaxRating
	}
	m.dispatch(session.HoverRating{Rating: m.cursor})
}

func (m *reviewModel) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusStars {
		m.focus = focusText
		m.dispatch(session.EndHover{})
		return m, m.text.Focus()
	}
	m.focus = focusStars
	m.text.Blur()
	m.dispatch(session.EditReviewText{Text: m.text.Value()})
	return m, nil
}

func (m *reviewModel) submit() (tea.Model, tea.Cmd) {
	m.dispatch(session.EditReviewText{Text: m.text.Value()})
	res, err := m.sess.Dispatch(session.SubmitReview{})
	if err != nil {
		// the draft stays open so the user can retry
		m.err = err
		return m, nil
	}
	m.err = nil
	m.result = ReviewResult{Action: ReviewSubmitted, Book: res.Book}
	return m, tea.Quit
}

func (m *reviewModel) dispatch(cmd session.Command) {
	if _, err := m.sess.Dispatch(cmd); err != nil {
		m.err = err
	}
}

func (m *reviewModel) View() string {
	flow := m.sess.Review()

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Review: " + flow.BookTitle()))
	sb.WriteString("\n")

	rating := flow.DisplayRating()
	stars := starStyle.Render(view.Stars(rating).Text())
	label := "Not rated"
	if rating > 0 {
		label = review.RatingLabel(rating)
	}
	starsBox := blurredBoxStyle
	if m.focus == focusStars {
		starsBox = focusedBoxStyle
	}
	sb.WriteString(starsBox.Render(stars + "  " + label))
	sb.WriteString("\n")

	textBox := blurredBoxStyle
	if m.focus == focusText {
		textBox = focusedBoxStyle
	}
	sb.WriteString(textBox.Render(m.text.View()))
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(errorStyle.Render(fmt.Sprintf("Could not save: %v", m.err)))
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("1-5 rate | Left/Right preview | Tab switch | Enter/Ctrl+S save | Esc cancel"))
	return sb.String()
}

var (
	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")).
			Bold(true)

	focusedBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)

	blurredBoxStyle = focusedBoxStyle.Copy().
			BorderForeground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("161")).
			Bold(true)
)

// EditReview opens the review flow for bookID and runs the interactive
// editor until the user saves or cancels. Quitting with ctrl+c returns a
// StopProcessingError.
func EditReview(sess Dispatcher, bookID int64) (ReviewResult, error) {
	res, err := sess.Dispatch(session.OpenReview{BookID: bookID})
	if err != nil {
		return ReviewResult{}, err
	}
	if !res.Found {
		return ReviewResult{}, fmt.Errorf("book %d not found", bookID)
	}

	finalModel, err := runProgram(newReviewModel(sess))
	if err != nil {
		_, _ = sess.Dispatch(session.CancelReview{})
		return ReviewResult{}, err
	}

	typed, ok := finalModel.(*reviewModel)
	if !ok {
		return ReviewResult{}, fmt.Errorf("unexpected program result")
	}
	if typed.result.Action == ReviewStopped {
		return typed.result, readlogerrors.NewStopProcessingError("review cancelled by user")
	}
	return typed.result, nil
}
