package board

import "time"

// Priority is a card's urgency level. A card without a priority carries
// a nil *Priority.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// weight orders priorities for the sort policy: high before medium
// before low. Unknown values sink below known ones.
func (p Priority) weight() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Color is a column's color tag, one of a fixed palette.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorPurple Color = "purple"
	ColorTeal   Color = "teal"
	ColorGray   Color = "gray"
)

// Palette lists every column color in display order.
func Palette() []Color {
	return []Color{ColorBlue, ColorYellow, ColorGreen, ColorRed, ColorPurple, ColorTeal, ColorGray}
}

// Valid reports whether c belongs to the palette.
func (c Color) Valid() bool {
	for _, p := range Palette() {
		if c == p {
			return true
		}
	}
	return false
}

// Card is a single task. It belongs to exactly one column.
type Card struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"isCompleted"`
	Priority    *Priority  `json:"priority,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// Overdue reports whether the card has an unmet deadline in the past.
func (c Card) Overdue(now time.Time) bool {
	return c.Deadline != nil && !c.Completed && c.Deadline.Before(now)
}

// Column holds an ordered run of cards. Card order is display order and
// is recomputed by SortCards after any card-level mutation. Limit is an
// optional work-in-progress cap; zero means unlimited.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color Color  `json:"color"`
	Limit int    `json:"limit,omitempty"`
	Cards []Card `json:"cards"`
}

// OverLimit reports whether the column exceeds its WIP limit. The limit
// is informational only and never blocks a mutation.
func (c Column) OverLimit() bool {
	return c.Limit > 0 && len(c.Cards) > c.Limit
}

// Board is a named, ordered run of columns. Column order is
// drag-controlled and never auto-sorted.
type Board struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Collection is the whole app state: every board plus the active-board
// pointer. ActiveBoardID is empty when no board is active.
type Collection struct {
	Boards        []Board
	ActiveBoardID string
}

// Active returns the active board, or nil if the pointer is empty or
// stale.
func (c Collection) Active() *Board {
	for i := range c.Boards {
		if c.Boards[i].ID == c.ActiveBoardID {
			return &c.Boards[i]
		}
	}
	return nil
}

// Normalize self-heals the active-board pointer: a stale or empty
// pointer falls back to the first board, or to empty when there are no
// boards.
func (c Collection) Normalize() Collection {
	if c.Active() != nil {
		return c
	}
	if len(c.Boards) == 0 {
		c.ActiveBoardID = ""
		return c
	}
	c.ActiveBoardID = c.Boards[0].ID
	return c
}

// CardCount returns the number of cards across all columns of b.
func (b Board) CardCount() int {
	n := 0
	for _, col := range b.Columns {
		n += len(col.Cards)
	}
	return n
}

// cloneCards copies a card slice. Pointer fields get fresh values so a
// snapshot never aliases its predecessor.
func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := range out {
		if out[i].Priority != nil {
			p := *out[i].Priority
			out[i].Priority = &p
		}
		if out[i].Deadline != nil {
			d := *out[i].Deadline
			out[i].Deadline = &d
		}
	}
	return out
}

func cloneColumns(cols []Column) []Column {
	if cols == nil {
		return nil
	}
	out := make([]Column, len(cols))
	copy(out, cols)
	for i := range out {
		out[i].Cards = cloneCards(out[i].Cards)
	}
	return out
}

func cloneBoards(boards []Board) []Board {
	if boards == nil {
		return nil
	}
	out := make([]Board, len(boards))
	copy(out, boards)
	for i := range out {
		out[i].Columns = cloneColumns(out[i].Columns)
	}
	return out
}

// Clone deep-copies the collection.
func (c Collection) Clone() Collection {
	return Collection{Boards: cloneBoards(c.Boards), ActiveBoardID: c.ActiveBoardID}
}
