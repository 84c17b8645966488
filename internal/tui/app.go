// Package tui renders the board and feeds user gestures into the pure
// board transforms. The App owns the single mutable Collection slot;
// every key press produces a new snapshot which is mirrored to storage
// by a fire-and-forget command.
package tui

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/labMorim/MavitKanban/internal/board"
	"github.com/labMorim/MavitKanban/internal/config"
	"github.com/labMorim/MavitKanban/internal/document"
	"github.com/labMorim/MavitKanban/internal/prefs"
	"github.com/labMorim/MavitKanban/internal/search"
	"github.com/labMorim/MavitKanban/internal/storage"
)

type mode string

const (
	modeNormal  mode = "normal"
	modeMove    mode = "move"
	modeForm    mode = "form"
	modeBoards  mode = "boards"
	modeSearch  mode = "search"
	modeConfirm mode = "confirm"
	modeImport  mode = "import"
	modeNotice  mode = "notice"
)

// grabState tracks one in-flight move gesture. Enter completes it with
// a DropEvent; esc cancels it, which the reducer treats as a no-op.
type grabState struct {
	typ         board.ItemType
	sourceColID string
	sourceIndex int
	destCol     int // column index on the active board
	destIndex   int
}

type confirmState struct {
	prompt string
	apply  func(a *App) tea.Cmd
}

// App is the bubbletea model for the whole board UI.
type App struct {
	ctx        context.Context
	cfg        config.Config
	store      *board.Store
	repo       *storage.StateRepo
	collection board.Collection
	background string

	mode       mode
	colCursor  int
	cardCursor int
	grab       grabState
	form       *form
	confirm    confirmState
	notice     string

	boardCursor int

	searchQuery   string
	searchMatches []search.Match
	searchCursor  int

	importPath string

	keys   keyMap
	status string
	errSt  bool
	width  int
	height int
}

// New builds the app around an already-loaded collection.
func New(ctx context.Context, cfg config.Config, repo *storage.StateRepo, store *board.Store, c board.Collection, background string) *App {
	if background == "" {
		background = cfg.UI.Background
	}
	return &App{
		ctx:        ctx,
		cfg:        cfg,
		store:      store,
		repo:       repo,
		collection: c.Normalize(),
		background: background,
		mode:       modeNormal,
		keys:       newKeyMap(),
		status:     "Ready. m grabs a card, n adds one, b lists boards.",
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		return a, nil
	case statusMsg:
		a.status = string(m)
		a.errSt = false
		return a, nil
	case errMsg:
		a.status = "error: " + m.Error()
		a.errSt = true
		return a, nil
	case savedMsg:
		return a, nil
	case exportDoneMsg:
		a.status = "exported to " + m.path
		a.errSt = false
		return a, nil
	case importDoneMsg:
		return a.finishImport(m.boards)
	case importFailedMsg:
		a.mode = modeNotice
		a.notice = "Import rejected: " + m.err.Error() + "\n\nThe current boards were left untouched."
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case modeMove:
		return a.updateMove(msg)
	case modeForm:
		return a.updateForm(msg)
	case modeBoards:
		return a.updateBoards(msg)
	case modeSearch:
		return a.updateSearch(msg)
	case modeConfirm:
		return a.updateConfirm(msg)
	case modeImport:
		return a.updateImport(msg)
	case modeNotice:
		a.mode = modeNormal
		a.notice = ""
		return a, nil
	}
	return a.updateNormal(msg)
}

// apply installs a new snapshot and schedules the storage mirror.
func (a *App) apply(c board.Collection) tea.Cmd {
	a.collection = c.Normalize()
	a.clampCursor()
	return a.persistCmd()
}

func (a *App) persistCmd() tea.Cmd {
	snapshot := a.collection.Clone()
	return func() tea.Msg {
		if err := a.repo.SaveCollection(a.ctx, snapshot); err != nil {
			return errMsg{err}
		}
		// best-effort plain-file backup; storage stays authoritative
		_ = prefs.SaveSnapshot(snapshot.Boards)
		return savedMsg{}
	}
}

func (a *App) saveBackgroundCmd(name string) tea.Cmd {
	return func() tea.Msg {
		if err := a.repo.Save(a.ctx, storage.KeyBackground, name); err != nil {
			return errMsg{err}
		}
		return savedMsg{}
	}
}

func (a *App) exportCmd() tea.Cmd {
	boards := board.Collection{Boards: a.collection.Boards}.Clone().Boards
	dir := a.cfg.Export.Dir
	return func() tea.Msg {
		path, err := document.ExportFile(dir, boards, time.Now())
		if err != nil {
			return errMsg{err}
		}
		return exportDoneMsg{path: path}
	}
}

func (a *App) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		boards, err := document.ImportFile(path)
		if err != nil {
			return importFailedMsg{err: err}
		}
		return importDoneMsg{boards: boards}
	}
}

func (a *App) finishImport(boards []board.Board) (tea.Model, tea.Cmd) {
	a.mode = modeNormal
	c := board.Collection{Boards: boards}.Normalize()
	cmd := a.apply(c)
	a.status = fmt.Sprintf("imported %d boards", len(boards))
	a.errSt = false
	return a, cmd
}

// ---------------------------------------------------------------------------
// Normal mode
// ---------------------------------------------------------------------------

func (a *App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys
	switch {
	case key.Matches(msg, k.Quit):
		return a, tea.Quit
	case key.Matches(msg, k.Left):
		a.moveCursor(-1, 0)
	case key.Matches(msg, k.Right):
		a.moveCursor(1, 0)
	case key.Matches(msg, k.Up):
		a.moveCursor(0, -1)
	case key.Matches(msg, k.Down):
		a.moveCursor(0, 1)
	case key.Matches(msg, k.GrabCard):
		a.grabCard()
	case key.Matches(msg, k.GrabColumn):
		a.grabColumn()
	case key.Matches(msg, k.NewCard):
		if col := a.currentColumn(); col != nil {
			a.openCardForm(nil)
		}
	case key.Matches(msg, k.EditCard):
		if card := a.currentCard(); card != nil {
			a.openCardForm(card)
		}
	case key.Matches(msg, k.ToggleDone):
		return a.toggleDone()
	case key.Matches(msg, k.DeleteCard):
		return a.confirmDeleteCard()
	case key.Matches(msg, k.NewColumn):
		if a.activeBoard() != nil {
			a.openColumnForm(nil)
		}
	case key.Matches(msg, k.EditColumn):
		if col := a.currentColumn(); col != nil {
			a.openColumnForm(col)
		}
	case key.Matches(msg, k.DelColumn):
		return a.confirmDeleteColumn()
	case key.Matches(msg, k.NewBoard):
		a.openBoardForm(false)
	case key.Matches(msg, k.Rename):
		if a.activeBoard() != nil {
			a.openBoardForm(true)
		}
	case key.Matches(msg, k.DelBoard):
		return a.confirmDeleteBoard()
	case key.Matches(msg, k.Boards):
		a.openBoardSwitcher()
	case key.Matches(msg, k.NextBoard):
		return a.cycleBoard(1)
	case key.Matches(msg, k.PrevBoard):
		return a.cycleBoard(-1)
	case key.Matches(msg, k.Search):
		a.openSearch()
	case key.Matches(msg, k.Background):
		return a.cycleBackground()
	case key.Matches(msg, k.Export):
		if len(a.collection.Boards) == 0 {
			a.status = "nothing to export"
			return a, nil
		}
		a.status = "exporting..."
		return a, a.exportCmd()
	case key.Matches(msg, k.Import):
		a.mode = modeImport
		a.importPath = ""
		a.status = ""
	}
	return a, nil
}

func (a *App) toggleDone() (tea.Model, tea.Cmd) {
	b := a.activeBoard()
	col := a.currentColumn()
	card := a.currentCard()
	if b == nil || col == nil || card == nil {
		return a, nil
	}
	done := !card.Completed
	next := a.store.UpdateCard(a.collection, b.ID, col.ID, card.ID, board.CardPatch{Completed: &done})
	cmd := a.apply(next)
	if done {
		a.status = "card completed"
	} else {
		a.status = "card reopened"
	}
	return a, cmd
}

func (a *App) cycleBoard(dir int) (tea.Model, tea.Cmd) {
	n := len(a.collection.Boards)
	if n < 2 {
		return a, nil
	}
	idx := 0
	for i, b := range a.collection.Boards {
		if b.ID == a.collection.ActiveBoardID {
			idx = i
			break
		}
	}
	idx = (idx + dir + n) % n
	next := a.store.SetActiveBoard(a.collection, a.collection.Boards[idx].ID)
	a.colCursor, a.cardCursor = 0, 0
	return a, a.apply(next)
}

func (a *App) cycleBackground() (tea.Model, tea.Cmd) {
	idx := 0
	for i, name := range backgroundNames {
		if name == a.background {
			idx = i
			break
		}
	}
	a.background = backgroundNames[(idx+1)%len(backgroundNames)]
	a.status = "background: " + a.background
	return a, a.saveBackgroundCmd(a.background)
}

// ---------------------------------------------------------------------------
// Move mode: keyboard stand-in for drag-and-drop
// ---------------------------------------------------------------------------

func (a *App) grabCard() {
	col := a.currentColumn()
	card := a.currentCard()
	if col == nil || card == nil {
		return
	}
	a.grab = grabState{
		typ:         board.ItemCard,
		sourceColID: col.ID,
		sourceIndex: a.cardCursor,
		destCol:     a.colCursor,
		destIndex:   a.cardCursor,
	}
	a.mode = modeMove
	a.status = "moving card: arrows pick a slot, enter drops, esc cancels"
}

func (a *App) grabColumn() {
	b := a.activeBoard()
	if b == nil || len(b.Columns) < 2 {
		return
	}
	a.grab = grabState{
		typ:         board.ItemColumn,
		sourceIndex: a.colCursor,
		destCol:     a.colCursor,
		destIndex:   a.colCursor,
	}
	a.mode = modeMove
	a.status = "moving column: h/l pick a slot, enter drops, esc cancels"
}

func (a *App) updateMove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys
	b := a.activeBoard()
	if b == nil {
		a.mode = modeNormal
		return a, nil
	}
	switch {
	case key.Matches(msg, k.Quit):
		return a, tea.Quit
	case key.Matches(msg, k.Cancel):
		// cancelled gesture: the reducer sees no destination and the
		// collection is untouched
		next := board.ApplyDrop(a.collection, board.DropEvent{Type: a.grab.typ, Cancelled: true})
		a.collection = next
		a.mode = modeNormal
		a.status = "move cancelled"
		return a, nil
	case key.Matches(msg, k.Left):
		a.moveDest(-1, 0, b)
	case key.Matches(msg, k.Right):
		a.moveDest(1, 0, b)
	case key.Matches(msg, k.Up):
		a.moveDest(0, -1, b)
	case key.Matches(msg, k.Down):
		a.moveDest(0, 1, b)
	case key.Matches(msg, k.Confirm):
		return a.drop(b)
	}
	return a, nil
}

func (a *App) moveDest(dCol, dIdx int, b *board.Board) {
	if a.grab.typ == board.ItemColumn {
		a.grab.destIndex = clamp(a.grab.destIndex+dCol, 0, len(b.Columns)-1)
		return
	}
	if dCol != 0 {
		a.grab.destCol = clamp(a.grab.destCol+dCol, 0, len(b.Columns)-1)
		a.grab.destIndex = 0
		return
	}
	limit := len(b.Columns[a.grab.destCol].Cards)
	if b.Columns[a.grab.destCol].ID == a.grab.sourceColID {
		limit-- // the grabbed card itself occupies one slot
	}
	if limit < 0 {
		limit = 0
	}
	a.grab.destIndex = clamp(a.grab.destIndex+dIdx, 0, limit)
}

func (a *App) drop(b *board.Board) (tea.Model, tea.Cmd) {
	var ev board.DropEvent
	if a.grab.typ == board.ItemColumn {
		ev = board.DropEvent{
			Type:        board.ItemColumn,
			SourceID:    b.ID,
			SourceIndex: a.grab.sourceIndex,
			DestID:      b.ID,
			DestIndex:   a.grab.destIndex,
		}
		a.colCursor = a.grab.destIndex
	} else {
		ev = board.DropEvent{
			Type:        board.ItemCard,
			SourceID:    a.grab.sourceColID,
			SourceIndex: a.grab.sourceIndex,
			DestID:      b.Columns[a.grab.destCol].ID,
			DestIndex:   a.grab.destIndex,
		}
		a.colCursor = a.grab.destCol
		a.cardCursor = a.grab.destIndex
	}
	next := board.ApplyDrop(a.collection, ev)
	a.mode = modeNormal
	cmd := a.apply(next)
	a.status = "dropped"
	return a, cmd
}

// ---------------------------------------------------------------------------
// Confirm prompts
// ---------------------------------------------------------------------------

func (a *App) confirmDeleteCard() (tea.Model, tea.Cmd) {
	b := a.activeBoard()
	col := a.currentColumn()
	card := a.currentCard()
	if b == nil || col == nil || card == nil {
		return a, nil
	}
	boardID, colID, cardID := b.ID, col.ID, card.ID
	a.mode = modeConfirm
	a.confirm = confirmState{
		prompt: fmt.Sprintf("Delete card %q?", card.Title),
		apply: func(a *App) tea.Cmd {
			cmd := a.apply(a.store.DeleteCard(a.collection, boardID, colID, cardID))
			a.status = "card deleted"
			return cmd
		},
	}
	return a, nil
}

func (a *App) confirmDeleteColumn() (tea.Model, tea.Cmd) {
	b := a.activeBoard()
	col := a.currentColumn()
	if b == nil || col == nil {
		return a, nil
	}
	boardID, colID := b.ID, col.ID
	a.mode = modeConfirm
	a.confirm = confirmState{
		prompt: fmt.Sprintf("Delete column %q and its %d cards?", col.Title, len(col.Cards)),
		apply: func(a *App) tea.Cmd {
			cmd := a.apply(a.store.DeleteColumn(a.collection, boardID, colID))
			a.status = "column deleted"
			return cmd
		},
	}
	return a, nil
}

func (a *App) confirmDeleteBoard() (tea.Model, tea.Cmd) {
	b := a.activeBoard()
	if b == nil {
		return a, nil
	}
	boardID := b.ID
	a.mode = modeConfirm
	a.confirm = confirmState{
		prompt: fmt.Sprintf("Delete board %q with everything on it?", b.Name),
		apply: func(a *App) tea.Cmd {
			a.colCursor, a.cardCursor = 0, 0
			cmd := a.apply(a.store.DeleteBoard(a.collection, boardID))
			a.status = "board deleted"
			return cmd
		},
	}
	return a, nil
}

func (a *App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		apply := a.confirm.apply
		a.mode = modeNormal
		a.confirm = confirmState{}
		return a, apply(a)
	case "n", "N", "esc", "q":
		a.mode = modeNormal
		a.confirm = confirmState{}
	}
	return a, nil
}

// ---------------------------------------------------------------------------
// Board switcher
// ---------------------------------------------------------------------------

func (a *App) openBoardSwitcher() {
	a.boardCursor = 0
	for i, b := range a.collection.Boards {
		if b.ID == a.collection.ActiveBoardID {
			a.boardCursor = i
		}
	}
	a.mode = modeBoards
}

func (a *App) updateBoards(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys
	switch {
	case key.Matches(msg, k.Quit):
		return a, tea.Quit
	case key.Matches(msg, k.Cancel):
		a.mode = modeNormal
	case key.Matches(msg, k.Up):
		if a.boardCursor > 0 {
			a.boardCursor--
		}
	case key.Matches(msg, k.Down):
		if a.boardCursor < len(a.collection.Boards)-1 {
			a.boardCursor++
		}
	case key.Matches(msg, k.Confirm):
		if a.boardCursor >= len(a.collection.Boards) {
			a.mode = modeNormal
			return a, nil
		}
		id := a.collection.Boards[a.boardCursor].ID
		a.mode = modeNormal
		a.colCursor, a.cardCursor = 0, 0
		return a, a.apply(a.store.SetActiveBoard(a.collection, id))
	}
	return a, nil
}

// ---------------------------------------------------------------------------
// Search overlay
// ---------------------------------------------------------------------------

func (a *App) openSearch() {
	if a.activeBoard() == nil {
		return
	}
	a.mode = modeSearch
	a.searchQuery = ""
	a.searchMatches = nil
	a.searchCursor = 0
}

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := a.activeBoard()
	if b == nil {
		a.mode = modeNormal
		return a, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = modeNormal
		return a, nil
	case tea.KeyEnter:
		if a.searchCursor < len(a.searchMatches) {
			a.jumpTo(a.searchMatches[a.searchCursor])
		}
		a.mode = modeNormal
		return a, nil
	case tea.KeyUp, tea.KeyCtrlP:
		if a.searchCursor > 0 {
			a.searchCursor--
		}
		return a, nil
	case tea.KeyDown, tea.KeyCtrlN:
		if a.searchCursor < len(a.searchMatches)-1 {
			a.searchCursor++
		}
		return a, nil
	case tea.KeyBackspace, tea.KeyCtrlH:
		a.searchQuery = trimLastRune(a.searchQuery)
	case tea.KeySpace:
		a.searchQuery += " "
	case tea.KeyRunes:
		a.searchQuery += string(msg.Runes)
	default:
		return a, nil
	}
	a.searchMatches = search.Rank(*b, a.searchQuery, 8)
	a.searchCursor = 0
	return a, nil
}

// jumpTo moves the cursor onto the matched card.
func (a *App) jumpTo(m search.Match) {
	b := a.activeBoard()
	if b == nil {
		return
	}
	for ci, col := range b.Columns {
		if col.ID != m.ColumnID {
			continue
		}
		for ri, card := range col.Cards {
			if card.ID == m.Card.ID {
				a.colCursor = ci
				a.cardCursor = ri
				return
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Import path prompt
// ---------------------------------------------------------------------------

func (a *App) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = modeNormal
		return a, nil
	case tea.KeyEnter:
		if a.importPath == "" {
			a.status = "enter a JSON document path"
			return a, nil
		}
		a.status = "importing..."
		return a, a.importCmd(a.importPath)
	case tea.KeyBackspace, tea.KeyCtrlH:
		a.importPath = trimLastRune(a.importPath)
	case tea.KeySpace:
		a.importPath += " "
	case tea.KeyRunes:
		a.importPath += string(msg.Runes)
	}
	return a, nil
}

// ---------------------------------------------------------------------------
// Cursor helpers
// ---------------------------------------------------------------------------

func (a *App) activeBoard() *board.Board {
	return a.collection.Active()
}

func (a *App) currentColumn() *board.Column {
	b := a.activeBoard()
	if b == nil || a.colCursor >= len(b.Columns) {
		return nil
	}
	return &b.Columns[a.colCursor]
}

func (a *App) currentCard() *board.Card {
	col := a.currentColumn()
	if col == nil || a.cardCursor >= len(col.Cards) {
		return nil
	}
	return &col.Cards[a.cardCursor]
}

func (a *App) moveCursor(dCol, dCard int) {
	b := a.activeBoard()
	if b == nil || len(b.Columns) == 0 {
		return
	}
	if dCol != 0 {
		a.colCursor = clamp(a.colCursor+dCol, 0, len(b.Columns)-1)
		a.cardCursor = 0
		return
	}
	col := b.Columns[a.colCursor]
	if len(col.Cards) == 0 {
		a.cardCursor = 0
		return
	}
	a.cardCursor = clamp(a.cardCursor+dCard, 0, len(col.Cards)-1)
}

func (a *App) clampCursor() {
	b := a.activeBoard()
	if b == nil || len(b.Columns) == 0 {
		a.colCursor, a.cardCursor = 0, 0
		return
	}
	a.colCursor = clamp(a.colCursor, 0, len(b.Columns)-1)
	n := len(b.Columns[a.colCursor].Cards)
	if n == 0 {
		a.cardCursor = 0
		return
	}
	a.cardCursor = clamp(a.cardCursor, 0, n-1)
}

// trimLastRune drops the final rune, not the final byte, so backspace
// never leaves a broken multi-byte sequence behind.
func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, n := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-n]
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type statusMsg string

type errMsg struct{ error }

type savedMsg struct{}

type exportDoneMsg struct{ path string }

type importDoneMsg struct{ boards []board.Board }

type importFailedMsg struct{ err error }
