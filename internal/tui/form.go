package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/labMorim/MavitKanban/internal/board"
)

type formKind int

const (
	formCard formKind = iota
	formColumn
	formBoard
)

const deadlineLayout = "2006-01-02"

// form is one modal editor. Text fields are bubbles text inputs;
// priority, color and the completed flag are cycled in place with
// left/right or space.
type form struct {
	kind    formKind
	editing bool

	boardID  string
	columnID string
	cardID   string

	inputs []textinput.Model
	labels []string
	focus  int

	priority  *board.Priority
	color     board.Color
	completed bool

	errText string
}

func newInput(label, value string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = label
	in.CharLimit = limit
	in.SetValue(value)
	return in
}

// cycleRows returns how many non-text rows follow the text inputs.
func (f *form) cycleRows() int {
	switch f.kind {
	case formCard:
		if f.editing {
			return 2 // priority, completed
		}
		return 1 // priority
	case formColumn:
		return 1 // color
	}
	return 0
}

func (f *form) rows() int { return len(f.inputs) + f.cycleRows() }

func (f *form) focusRow(i int) {
	f.focus = clamp(i, 0, f.rows()-1)
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (a *App) openCardForm(card *board.Card) {
	b := a.activeBoard()
	col := a.currentColumn()
	if b == nil || col == nil {
		return
	}
	f := &form{
		kind:     formCard,
		boardID:  b.ID,
		columnID: col.ID,
		labels:   []string{"Title", "Description", "Deadline (YYYY-MM-DD)"},
	}
	title, desc, deadline := "", "", ""
	if card != nil {
		f.editing = true
		f.cardID = card.ID
		title = card.Title
		desc = card.Description
		if card.Deadline != nil {
			deadline = card.Deadline.Format(deadlineLayout)
		}
		if card.Priority != nil {
			p := *card.Priority
			f.priority = &p
		}
		f.completed = card.Completed
	}
	f.inputs = []textinput.Model{
		newInput("title", title, 120),
		newInput("description", desc, 500),
		newInput(deadlineLayout, deadline, len(deadlineLayout)),
	}
	f.focusRow(0)
	a.form = f
	a.mode = modeForm
}

func (a *App) openColumnForm(col *board.Column) {
	b := a.activeBoard()
	if b == nil {
		return
	}
	f := &form{
		kind:    formColumn,
		boardID: b.ID,
		labels:  []string{"Title", "WIP limit (blank = none)"},
		color:   board.ColorBlue,
	}
	title, limit := "", ""
	if col != nil {
		f.editing = true
		f.columnID = col.ID
		title = col.Title
		f.color = col.Color
		if col.Limit > 0 {
			limit = strconv.Itoa(col.Limit)
		}
	}
	f.inputs = []textinput.Model{
		newInput("title", title, 60),
		newInput("limit", limit, 3),
	}
	f.focusRow(0)
	a.form = f
	a.mode = modeForm
}

func (a *App) openBoardForm(rename bool) {
	f := &form{
		kind:   formBoard,
		labels: []string{"Name"},
	}
	name := ""
	if rename {
		b := a.activeBoard()
		if b == nil {
			return
		}
		f.editing = true
		f.boardID = b.ID
		name = b.Name
	}
	f.inputs = []textinput.Model{newInput("board name", name, 60)}
	f.focusRow(0)
	a.form = f
	a.mode = modeForm
}

func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := a.form
	if f == nil {
		a.mode = modeNormal
		return a, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		a.form = nil
		a.mode = modeNormal
		return a, nil
	case tea.KeyEnter:
		return a.submitForm()
	case tea.KeyTab, tea.KeyDown:
		f.focusRow(f.focus + 1)
		return a, nil
	case tea.KeyShiftTab, tea.KeyUp:
		f.focusRow(f.focus - 1)
		return a, nil
	}

	if f.focus >= len(f.inputs) {
		f.handleCycleKey(msg)
		return a, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return a, cmd
}

// handleCycleKey edits the non-text rows (priority / color / completed).
func (f *form) handleCycleKey(msg tea.KeyMsg) {
	cycleIdx := f.focus - len(f.inputs)
	s := msg.String()
	dir := 0
	switch s {
	case "left", "h":
		dir = -1
	case "right", "l", " ":
		dir = 1
	default:
		return
	}

	switch {
	case f.kind == formCard && cycleIdx == 0:
		f.priority = cyclePriority(f.priority, dir)
	case f.kind == formCard && cycleIdx == 1:
		f.completed = !f.completed
	case f.kind == formColumn && cycleIdx == 0:
		f.color = cycleColor(f.color, dir)
	}
}

// cyclePriority walks none -> high -> medium -> low -> none.
func cyclePriority(p *board.Priority, dir int) *board.Priority {
	order := []*board.Priority{nil, prioPtr(board.PriorityHigh), prioPtr(board.PriorityMedium), prioPtr(board.PriorityLow)}
	idx := 0
	for i, o := range order {
		if (o == nil && p == nil) || (o != nil && p != nil && *o == *p) {
			idx = i
			break
		}
	}
	return order[(idx+dir+len(order))%len(order)]
}

func prioPtr(p board.Priority) *board.Priority { return &p }

func cycleColor(c board.Color, dir int) board.Color {
	palette := board.Palette()
	idx := 0
	for i, p := range palette {
		if p == c {
			idx = i
			break
		}
	}
	return palette[(idx+dir+len(palette))%len(palette)]
}

func (a *App) submitForm() (tea.Model, tea.Cmd) {
	f := a.form
	title := strings.TrimSpace(f.inputs[0].Value())
	if title == "" {
		f.errText = "title must not be empty"
		return a, nil
	}

	switch f.kind {
	case formBoard:
		var next board.Collection
		if f.editing {
			next = a.store.RenameBoard(a.collection, f.boardID, title)
			a.status = "board renamed"
		} else {
			next = a.store.AddBoard(a.collection, title)
			a.colCursor, a.cardCursor = 0, 0
			a.status = "board created"
		}
		a.form = nil
		a.mode = modeNormal
		return a, a.apply(next)

	case formColumn:
		limit := 0
		if raw := strings.TrimSpace(f.inputs[1].Value()); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				f.errText = "limit must be a positive number"
				return a, nil
			}
			limit = n
		}
		var next board.Collection
		if f.editing {
			next = a.store.UpdateColumn(a.collection, f.boardID, f.columnID, title, f.color, limit)
			a.status = "column updated"
		} else {
			next = a.store.AddColumn(a.collection, f.boardID, title, f.color, limit)
			a.status = "column added"
		}
		a.form = nil
		a.mode = modeNormal
		return a, a.apply(next)
	}

	// card form
	var deadline *time.Time
	if raw := strings.TrimSpace(f.inputs[2].Value()); raw != "" {
		t, err := time.Parse(deadlineLayout, raw)
		if err != nil {
			f.errText = "deadline must look like " + deadlineLayout
			return a, nil
		}
		deadline = &t
	}
	desc := strings.TrimSpace(f.inputs[1].Value())

	var next board.Collection
	if f.editing {
		next = a.store.UpdateCard(a.collection, f.boardID, f.columnID, f.cardID, board.CardPatch{
			Title:       &title,
			Description: &desc,
			Completed:   &f.completed,
			Priority:    f.priority,
			SetPriority: true,
			Deadline:    deadline,
			SetDeadline: true,
		})
		a.status = "card updated"
	} else {
		next = a.store.AddCard(a.collection, f.boardID, f.columnID, board.CardFields{
			Title:       title,
			Description: desc,
			Priority:    f.priority,
			Deadline:    deadline,
		})
		a.status = "card added"
	}
	a.form = nil
	a.mode = modeNormal
	return a, a.apply(next)
}
