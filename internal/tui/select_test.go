package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/readlog/internal/library"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// withProgram replaces runProgram with one that feeds msgs to the model
func withProgram(t *testing.T, msgs ...tea.Msg) {
	t.Helper()
	orig := runProgram
	t.Cleanup(func() { runProgram = orig })

	runProgram = func(m tea.Model) (tea.Model, error) {
		for _, msg := range msgs {
			var cmd tea.Cmd
			m, cmd = m.Update(msg)
			_ = cmd
		}
		return m, nil
	}
}

func testBooks() []library.Book {
	return []library.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Rating: 5, Review: "Spice"},
		{ID: 2, Title: "Emma", Author: "Jane Austen"},
	}
}

func TestSelectBookEmpty(t *testing.T) {
	res, err := SelectBook("Pick", nil)
	require.NoError(t, err)
	assert.Equal(t, ActionNone, res.Action)
}

func TestSelectBookEnterSelectsCurrent(t *testing.T) {
	withProgram(t, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	res, err := SelectBook("Pick", testBooks())
	require.NoError(t, err)
	require.Equal(t, ActionSelected, res.Action)
	require.NotNil(t, res.Selection)
	assert.Equal(t, int64(2), res.Selection.ID)
}

func TestSelectBookQuit(t *testing.T) {
	withProgram(t, keyRunes("q"))

	res, err := SelectBook("Pick", testBooks())
	require.NoError(t, err)
	assert.Equal(t, ActionStopped, res.Action)
	assert.Nil(t, res.Selection)
}

func TestBookItem(t *testing.T) {
	item := bookItem{Book: testBooks()[0]}
	assert.Equal(t, "Dune", item.Title())
	assert.Equal(t, "by Frank Herbert", item.Description())
	assert.Contains(t, item.FilterValue(), "Herbert")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b c", truncate("a   b\nc", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "ééé...", truncate("éééééééé", 6))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 72, clamp(72, 0, 40))
	assert.Equal(t, 50, clamp(72, 50, 40))
	assert.Equal(t, 40, clamp(72, 10, 40))
}
