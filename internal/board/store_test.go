package board

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testStore returns a store with sequential ids so assertions are
// deterministic.
func testStore() *Store {
	n := 0
	return &Store{NewID: func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	}}
}

func TestAddBoardSeedsDefaultColumns(t *testing.T) {
	t.Parallel()

	s := testStore()
	c := s.AddBoard(Collection{}, "Work")

	require.Len(t, c.Boards, 1)
	b := c.Boards[0]
	require.Equal(t, "Work", b.Name)
	require.Equal(t, b.ID, c.ActiveBoardID)
	require.Len(t, b.Columns, 3)
	require.Equal(t, "To Do", b.Columns[0].Title)
	require.Equal(t, "In Progress", b.Columns[1].Title)
	require.Equal(t, "Done", b.Columns[2].Title)
	seen := map[Color]bool{}
	for _, col := range b.Columns {
		require.Empty(t, col.Cards)
		require.False(t, seen[col.Color], "duplicate default color %s", col.Color)
		seen[col.Color] = true
	}
}

func TestAddBoardDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	s := testStore()
	c := s.AddBoard(Collection{}, "First")
	before := c.Clone()

	_ = s.AddBoard(c, "Second")
	require.Equal(t, before, c)
}

func TestDeleteBoardMovesActivePointer(t *testing.T) {
	t.Parallel()

	s := testStore()
	c := s.AddBoard(Collection{}, "A")
	c = s.AddBoard(c, "B")
	bID := c.ActiveBoardID

	c = s.DeleteBoard(c, bID)
	require.Len(t, c.Boards, 1)
	require.Equal(t, c.Boards[0].ID, c.ActiveBoardID, "active pointer must land on a surviving board")

	c = s.DeleteBoard(c, c.ActiveBoardID)
	require.Empty(t, c.Boards)
	require.Empty(t, c.ActiveBoardID)
}

func TestDeleteBoardKeepsPointerWhenInactiveDeleted(t *testing.T) {
	t.Parallel()

	s := testStore()
	c := s.AddBoard(Collection{}, "A")
	aID := c.ActiveBoardID
	c = s.AddBoard(c, "B")
	bID := c.ActiveBoardID

	c = s.DeleteBoard(c, aID)
	require.Equal(t, bID, c.ActiveBoardID)
}

func TestStaleIDsAreSilentNoops(t *testing.T) {
	t.Parallel()

	s := testStore()
	c := s.AddBoard(Collection{}, "A")
	b := c.Boards[0]

	for name, got := range map[string]Collection{
		"deleteBoard":  s.DeleteBoard(c, "nope"),
		"renameBoard":  s.RenameBoard(c, "nope", "x"),
		"setActive":    s.SetActiveBoard(c, "nope"),
		"addColumn":    s.AddColumn(c, "nope", "x", ColorRed, 0),
		"updateColumn": s.UpdateColumn(c, b.ID, "nope", "x", ColorRed, 0),
		"deleteColumn": s.DeleteColumn(c, b.ID, "nope"),
		"addCard":      s.AddCard(c, b.ID, "nope", CardFields{Title: "x"}),
		"updateCard":   s.UpdateCard(c, b.ID, b.Columns[0].ID, "nope", CardPatch{}),
		"deleteCard":   s.DeleteCard(c, b.ID, b.Columns[0].ID, "nope"),
	} {
		require.Equal(t, c, got, "%s with a stale id must return the input unchanged", name)
	}
}

func TestAddCardSortsColumn(t *testing.T) {
	t.Parallel()

	s := testStore()
	c := s.AddBoard(Collection{}, "A")
	b := c.Boards[0]
	todo := b.Columns[0].ID

	c = s.AddCard(c, b.ID, todo, CardFields{Title: "A", Priority: prio(PriorityHigh)})
	c = s.AddCard(c, b.ID, todo, CardFields{Title: "B", Priority: prio(PriorityLow)})
	c = s.AddCard(c, b.ID, todo, CardFields{Title: "C"})

	require.Equal(t, []string{"A", "B", "C"}, titles(c.Boards[0].Columns[0].Cards))
	for _, card := range c.Boards[0].Columns[0].Cards {
		require.False(t, card.Completed)
		require.NotEmpty(t, card.ID)
	}
}

func TestUpdateCardCompleteResorts(t *testing.T) {
	t.Parallel()

	s := testStore()
	c := s.AddBoard(Collection{}, "A")
	b := c.Boards[0]
	todo := b.Columns[0].ID
	c = s.AddCard(c, b.ID, todo, CardFields{Title: "A", Priority: prio(PriorityHigh)})
	c = s.AddCard(c, b.ID, todo, CardFields{Title: "B", Priority: prio(PriorityLow)})
	c = s.AddCard(c, b.ID, todo, CardFields{Title: "C"})

	aID := c.Boards[0].Columns[0].Cards[0].ID
	done := true
	c = s.UpdateCard(c, b.ID, todo, aID, CardPatch{Completed: &done})

	require.Equal(t, []string{"B", "C", "A"}, titles(c.Boards[0].Columns[0].Cards))
}

func TestUpdateCardMergesSubsetOnly(t *testing.T) {
	t.Parallel()

	s := testStore()
	c := s.AddBoard(Collection{}, "A")
	b := c.Boards[0]
	todo := b.Columns[0].ID
	deadline := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	c = s.AddCard(c, b.ID, todo, CardFields{
		Title:       "task",
		Description: "desc",
		Priority:    prio(PriorityMedium),
		Deadline:    &deadline,
	})
	cardID := c.Boards[0].Columns[0].Cards[0].ID

	newTitle := "renamed"
	c = s.UpdateCard(c, b.ID, todo, cardID, CardPatch{Title: &newTitle})

	card := c.Boards[0].Columns[0].Cards[0]
	require.Equal(t, "renamed", card.Title)
	require.Equal(t, "desc", card.Description)
	require.Equal(t, PriorityMedium, *card.Priority)
	require.True(t, deadline.Equal(*card.Deadline))
	require.False(t, card.Completed)

	// clearing optional fields requires the Set flag
	c = s.UpdateCard(c, b.ID, todo, cardID, CardPatch{SetPriority: true, SetDeadline: true})
	card = c.Boards[0].Columns[0].Cards[0]
	require.Nil(t, card.Priority)
	require.Nil(t, card.Deadline)
}

func TestDeleteCardThenAddNeverReusesID(t *testing.T) {
	t.Parallel()

	s := testStore()
	c := s.AddBoard(Collection{}, "A")
	b := c.Boards[0]
	todo := b.Columns[0].ID
	c = s.AddCard(c, b.ID, todo, CardFields{Title: "task"})
	oldID := c.Boards[0].Columns[0].Cards[0].ID

	c = s.DeleteCard(c, b.ID, todo, oldID)
	require.Empty(t, c.Boards[0].Columns[0].Cards)

	c = s.AddCard(c, b.ID, todo, CardFields{Title: "task"})
	require.NotEqual(t, oldID, c.Boards[0].Columns[0].Cards[0].ID)
}

func TestUpdateColumnReplacesFieldsKeepsCards(t *testing.T) {
	t.Parallel()

	s := testStore()
	c := s.AddBoard(Collection{}, "A")
	b := c.Boards[0]
	todo := b.Columns[0].ID
	c = s.AddCard(c, b.ID, todo, CardFields{Title: "task"})

	c = s.UpdateColumn(c, b.ID, todo, "Backlog", ColorPurple, 4)
	col := c.Boards[0].Columns[0]
	require.Equal(t, "Backlog", col.Title)
	require.Equal(t, ColorPurple, col.Color)
	require.Equal(t, 4, col.Limit)
	require.Len(t, col.Cards, 1)
}

func TestDeleteColumnCascades(t *testing.T) {
	t.Parallel()

	s := testStore()
	c := s.AddBoard(Collection{}, "A")
	b := c.Boards[0]
	todo := b.Columns[0].ID
	c = s.AddCard(c, b.ID, todo, CardFields{Title: "task"})

	c = s.DeleteColumn(c, b.ID, todo)
	require.Len(t, c.Boards[0].Columns, 2)
	require.Equal(t, 0, c.Boards[0].CardCount())
}

func TestAddColumnAppendsToNamedBoardOnly(t *testing.T) {
	t.Parallel()

	s := testStore()
	c := s.AddBoard(Collection{}, "A")
	aID := c.Boards[0].ID
	c = s.AddBoard(c, "B")

	c = s.AddColumn(c, aID, "Blocked", ColorRed, 2)
	require.Len(t, c.Boards[0].Columns, 4)
	require.Len(t, c.Boards[1].Columns, 3)
	added := c.Boards[0].Columns[3]
	require.Equal(t, "Blocked", added.Title)
	require.Equal(t, 2, added.Limit)
}

func TestOverLimitIsInformational(t *testing.T) {
	t.Parallel()

	s := testStore()
	c := s.AddBoard(Collection{}, "A")
	b := c.Boards[0]
	c = s.AddColumn(c, b.ID, "Tiny", ColorTeal, 1)
	colID := c.Boards[0].Columns[3].ID

	c = s.AddCard(c, b.ID, colID, CardFields{Title: "one"})
	c = s.AddCard(c, b.ID, colID, CardFields{Title: "two"})

	col := c.Boards[0].Columns[3]
	require.Len(t, col.Cards, 2, "limit must never block an add")
	require.True(t, col.OverLimit())
}

func TestNormalizeHealsStalePointer(t *testing.T) {
	t.Parallel()

	s := testStore()
	c := s.AddBoard(Collection{}, "A")
	c.ActiveBoardID = "gone"

	c = c.Normalize()
	require.Equal(t, c.Boards[0].ID, c.ActiveBoardID)

	empty := Collection{ActiveBoardID: "gone"}.Normalize()
	require.Empty(t, empty.ActiveBoardID)
}

func TestCardIDsUniqueAcrossCollection(t *testing.T) {
	t.Parallel()

	s := NewStore()
	c := s.AddBoard(Collection{}, "A")
	c = s.AddBoard(c, "B")
	for _, b := range c.Boards {
		for _, col := range b.Columns {
			c = s.AddCard(c, b.ID, col.ID, CardFields{Title: "t"})
		}
	}

	seen := map[string]bool{}
	for _, b := range c.Boards {
		require.False(t, seen[b.ID])
		seen[b.ID] = true
		for _, col := range b.Columns {
			require.False(t, seen[col.ID])
			seen[col.ID] = true
			for _, card := range col.Cards {
				require.False(t, seen[card.ID])
				seen[card.ID] = true
			}
		}
	}
}
