package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/labMorim/MavitKanban/internal/board"
	"github.com/labMorim/MavitKanban/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	n := 0
	store := &board.Store{NewID: func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	}}
	c := store.AddBoard(board.Collection{}, "Work")
	b := c.Boards[0]
	todo := b.Columns[0].ID
	c = store.AddCard(c, b.ID, todo, board.CardFields{Title: "alpha"})
	c = store.AddCard(c, b.ID, todo, board.CardFields{Title: "beta"})

	cfg := config.Config{}
	cfg.UI.DateFormat = "02 Jan"
	cfg.UI.Background = "plain"
	return New(context.Background(), cfg, nil, store, c, "")
}

func press(t *testing.T, a *App, msgs ...tea.Msg) *App {
	t.Helper()
	for _, msg := range msgs {
		model, _ := a.Update(msg)
		var ok bool
		a, ok = model.(*App)
		require.True(t, ok)
	}
	return a
}

func runeKey(r rune) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func todoCards(a *App) []string {
	var out []string
	for _, c := range a.collection.Boards[0].Columns[0].Cards {
		out = append(out, c.Title)
	}
	return out
}

func TestGrabAndDropCardAcrossColumns(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	before := a.collection.Boards[0].CardCount()

	a = press(t, a, runeKey('m'))
	require.Equal(t, modeMove, a.mode)
	a = press(t, a, runeKey('l'), tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, modeNormal, a.mode)
	require.Len(t, a.collection.Boards[0].Columns[0].Cards, 1)
	require.Len(t, a.collection.Boards[0].Columns[1].Cards, 1)
	require.Equal(t, before, a.collection.Boards[0].CardCount())
}

func TestEscCancelsMove(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	before := a.collection.Clone()

	a = press(t, a, runeKey('m'), runeKey('l'), tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, modeNormal, a.mode)
	require.Equal(t, before, a.collection)
}

func TestToggleDoneSendsCardToBottom(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	require.Equal(t, []string{"beta", "alpha"}, todoCards(a))

	a = press(t, a, tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, []string{"alpha", "beta"}, todoCards(a))
	require.True(t, a.collection.Boards[0].Columns[0].Cards[1].Completed)
}

func TestMoveColumnKeepsCards(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a = press(t, a, runeKey('M'), runeKey('l'), tea.KeyMsg{Type: tea.KeyEnter})

	cols := a.collection.Boards[0].Columns
	require.Equal(t, "In Progress", cols[0].Title)
	require.Equal(t, "To Do", cols[1].Title)
	require.Len(t, cols[1].Cards, 2)
}

func TestImportFailureShowsBlockingNotice(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	before := a.collection.Clone()

	a = press(t, a, importFailedMsg{err: fmt.Errorf("not a board collection")})
	require.Equal(t, modeNotice, a.mode)
	require.Contains(t, a.notice, "untouched")
	require.Equal(t, before, a.collection, "failed import must not change state")

	a = press(t, a, runeKey('x'))
	require.Equal(t, modeNormal, a.mode)
}

func TestCardFormAddsSortedCard(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a = press(t, a, runeKey('n'))
	require.Equal(t, modeForm, a.mode)

	for _, r := range "gamma" {
		a = press(t, a, runeKey(r))
	}
	// move to the priority row and pick high
	a = press(t, a,
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyTab},
		runeKey('l'),
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	require.Equal(t, modeNormal, a.mode)
	require.Equal(t, []string{"gamma", "beta", "alpha"}, todoCards(a), "high priority card sorts to the top")
}

func TestFormRejectsEmptyTitle(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a = press(t, a, runeKey('n'), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modeForm, a.mode)
	require.NotEmpty(t, a.form.errText)
}

func TestBackgroundCycles(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	first := a.background
	a = press(t, a, runeKey('B'))
	require.NotEqual(t, first, a.background)
	require.Contains(t, backgroundNames, a.background)
}

func TestBackspaceRemovesWholeRune(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a = press(t, a, runeKey('/'))
	require.Equal(t, modeSearch, a.mode)
	a = press(t, a, runeKey('é'), runeKey('x'), tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, "é", a.searchQuery)
	a = press(t, a, tea.KeyMsg{Type: tea.KeyBackspace})
	require.Empty(t, a.searchQuery)
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})

	a = press(t, a, runeKey('i'))
	require.Equal(t, modeImport, a.mode)
	a = press(t, a, runeKey('ü'), tea.KeyMsg{Type: tea.KeyBackspace})
	require.Empty(t, a.importPath)
}

func TestDeleteBoardConfirmMovesPointer(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a.collection = a.store.AddBoard(a.collection, "Second")

	a = press(t, a, runeKey('x'), runeKey('y'))
	require.Len(t, a.collection.Boards, 1)
	require.Equal(t, a.collection.Boards[0].ID, a.collection.ActiveBoardID)
}
