// Package search ranks cards on a board against a free-text query.
package search

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/labMorim/MavitKanban/internal/board"
)

// Match is one ranked card hit.
type Match struct {
	ColumnID    string
	ColumnTitle string
	Card        board.Card
	Score       float64
}

// similarity scores query against a card title in [0,1]: normalized
// Levenshtein distance, with a boost when the query appears as a
// substring.
func similarity(query, title string) float64 {
	q := strings.ToUpper(strings.TrimSpace(query))
	t := strings.ToUpper(title)
	if q == "" || t == "" {
		return 0
	}
	longest := len(q)
	if len(t) > longest {
		longest = len(t)
	}
	score := 1 - float64(levenshtein.ComputeDistance(q, t))/float64(longest)
	if strings.Contains(t, q) {
		score = score/2 + 0.5
	}
	if score < 0 {
		return 0
	}
	return score
}

// Rank returns cards of b ordered by descending similarity to query,
// dropping scores below threshold. Limit caps the result; zero means
// no cap.
func Rank(b board.Board, query string, limit int) []Match {
	const threshold = 0.3

	var matches []Match
	for _, col := range b.Columns {
		for _, card := range col.Cards {
			score := similarity(query, card.Title)
			if score < threshold {
				continue
			}
			matches = append(matches, Match{
				ColumnID:    col.ID,
				ColumnTitle: col.Title,
				Card:        card,
				Score:       score,
			})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
