package board

import (
	"time"

	"github.com/google/uuid"
)

// Default columns seeded into every new board.
var defaultColumns = []struct {
	title string
	color Color
}{
	{"To Do", ColorBlue},
	{"In Progress", ColorYellow},
	{"Done", ColorGreen},
}

// Store exposes every board mutation as a pure transform: each method
// takes a Collection value and returns a new one, never touching the
// input. Operations referencing a board/column/card id that no longer
// exists return the input unchanged; the UI only hands out ids it
// currently renders, so a miss is a sync bug, not a user error.
type Store struct {
	// NewID generates opaque unique ids. Injectable so tests can be
	// deterministic.
	NewID func() string
}

// NewStore returns a store with uuid-backed id generation.
func NewStore() *Store {
	return &Store{NewID: uuid.NewString}
}

// AddBoard appends a board with the three default columns and makes it
// active.
func (s *Store) AddBoard(c Collection, name string) Collection {
	c = c.Clone()
	b := Board{ID: s.NewID(), Name: name}
	for _, d := range defaultColumns {
		b.Columns = append(b.Columns, Column{ID: s.NewID(), Title: d.title, Color: d.color, Cards: []Card{}})
	}
	c.Boards = append(c.Boards, b)
	c.ActiveBoardID = b.ID
	return c
}

// RenameBoard replaces the display name of the matching board.
func (s *Store) RenameBoard(c Collection, id, name string) Collection {
	c = c.Clone()
	for i := range c.Boards {
		if c.Boards[i].ID == id {
			c.Boards[i].Name = name
			return c
		}
	}
	return c
}

// DeleteBoard removes the board and everything it owns. If the deleted
// board was active, the pointer moves to the new first board, or empty
// when none remain.
func (s *Store) DeleteBoard(c Collection, id string) Collection {
	c = c.Clone()
	kept := c.Boards[:0]
	found := false
	for _, b := range c.Boards {
		if b.ID == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return c
	}
	c.Boards = kept
	if c.ActiveBoardID == id {
		if len(c.Boards) > 0 {
			c.ActiveBoardID = c.Boards[0].ID
		} else {
			c.ActiveBoardID = ""
		}
	}
	return c
}

// SetActiveBoard points the collection at the named board. Unknown ids
// are ignored.
func (s *Store) SetActiveBoard(c Collection, id string) Collection {
	c = c.Clone()
	for i := range c.Boards {
		if c.Boards[i].ID == id {
			c.ActiveBoardID = id
			return c
		}
	}
	return c
}

// AddColumn appends a column with no cards to the named board.
func (s *Store) AddColumn(c Collection, boardID, title string, color Color, limit int) Collection {
	c = c.Clone()
	b := findBoard(&c, boardID)
	if b == nil {
		return c
	}
	b.Columns = append(b.Columns, Column{ID: s.NewID(), Title: title, Color: color, Limit: limit, Cards: []Card{}})
	return c
}

// UpdateColumn replaces the title, color and limit of the matching
// column. Cards are untouched.
func (s *Store) UpdateColumn(c Collection, boardID, columnID, title string, color Color, limit int) Collection {
	c = c.Clone()
	col := findColumn(&c, boardID, columnID)
	if col == nil {
		return c
	}
	col.Title = title
	col.Color = color
	col.Limit = limit
	return c
}

// DeleteColumn removes the column and all its cards.
func (s *Store) DeleteColumn(c Collection, boardID, columnID string) Collection {
	c = c.Clone()
	b := findBoard(&c, boardID)
	if b == nil {
		return c
	}
	kept := b.Columns[:0]
	found := false
	for _, col := range b.Columns {
		if col.ID == columnID {
			found = true
			continue
		}
		kept = append(kept, col)
	}
	if !found {
		return c
	}
	b.Columns = kept
	return c
}

// CardFields carries the attributes of a new card.
type CardFields struct {
	Title       string
	Description string
	Priority    *Priority
	Deadline    *time.Time
}

// AddCard creates an incomplete card from f, prepends it to the column,
// then applies the sort policy.
func (s *Store) AddCard(c Collection, boardID, columnID string, f CardFields) Collection {
	c = c.Clone()
	col := findColumn(&c, boardID, columnID)
	if col == nil {
		return c
	}
	card := Card{
		ID:          s.NewID(),
		Title:       f.Title,
		Description: f.Description,
		Priority:    f.Priority,
		Deadline:    f.Deadline,
	}
	col.Cards = append([]Card{card}, col.Cards...)
	col.Cards = SortCards(col.Cards)
	return c
}

// CardPatch is a partial card update. Nil Title/Description/Completed
// leave the field untouched. Priority and Deadline apply only when
// their Set flag is true, which allows clearing them with a nil value.
type CardPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *Priority
	SetPriority bool
	Deadline    *time.Time
	SetDeadline bool
}

// UpdateCard merges p into the matching card, then applies the sort
// policy to its column.
func (s *Store) UpdateCard(c Collection, boardID, columnID, cardID string, p CardPatch) Collection {
	c = c.Clone()
	col := findColumn(&c, boardID, columnID)
	if col == nil {
		return c
	}
	for i := range col.Cards {
		if col.Cards[i].ID != cardID {
			continue
		}
		card := &col.Cards[i]
		if p.Title != nil {
			card.Title = *p.Title
		}
		if p.Description != nil {
			card.Description = *p.Description
		}
		if p.Completed != nil {
			card.Completed = *p.Completed
		}
		if p.SetPriority {
			card.Priority = p.Priority
		}
		if p.SetDeadline {
			card.Deadline = p.Deadline
		}
		col.Cards = SortCards(col.Cards)
		return c
	}
	return c
}

// DeleteCard removes the card. Removal cannot violate the sort order,
// so no resort happens.
func (s *Store) DeleteCard(c Collection, boardID, columnID, cardID string) Collection {
	c = c.Clone()
	col := findColumn(&c, boardID, columnID)
	if col == nil {
		return c
	}
	kept := col.Cards[:0]
	found := false
	for _, card := range col.Cards {
		if card.ID == cardID {
			found = true
			continue
		}
		kept = append(kept, card)
	}
	if !found {
		return c
	}
	col.Cards = kept
	return c
}

func findBoard(c *Collection, boardID string) *Board {
	for i := range c.Boards {
		if c.Boards[i].ID == boardID {
			return &c.Boards[i]
		}
	}
	return nil
}

func findColumn(c *Collection, boardID, columnID string) *Column {
	b := findBoard(c, boardID)
	if b == nil {
		return nil
	}
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			return &b.Columns[i]
		}
	}
	return nil
}
