package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/labMorim/MavitKanban/internal/board"
)

func testBoard() board.Board {
	return board.Board{
		ID:   "b1",
		Name: "Work",
		Columns: []board.Column{
			{ID: "c1", Title: "To Do", Cards: []board.Card{
				{ID: "t1", Title: "write quarterly report"},
				{ID: "t2", Title: "book flights"},
			}},
			{ID: "c2", Title: "Done", Cards: []board.Card{
				{ID: "t3", Title: "report expenses"},
			}},
		},
	}
}

func TestRankSubstringBeatsFuzzy(t *testing.T) {
	t.Parallel()

	matches := Rank(testBoard(), "report", 0)
	require.NotEmpty(t, matches)
	for _, m := range matches {
		require.Contains(t, m.Card.Title, "report")
	}
	require.GreaterOrEqual(t, matches[0].Score, matches[len(matches)-1].Score)
}

func TestRankEmptyQuery(t *testing.T) {
	t.Parallel()

	require.Empty(t, Rank(testBoard(), "   ", 0))
}

func TestRankLimit(t *testing.T) {
	t.Parallel()

	matches := Rank(testBoard(), "report", 1)
	require.Len(t, matches, 1)
}

func TestRankCaseInsensitive(t *testing.T) {
	t.Parallel()

	matches := Rank(testBoard(), "REPORT", 0)
	require.NotEmpty(t, matches)
	require.Equal(t, "c2", matches[0].ColumnID)
}
