package board

// ItemType tags what a drop event moved.
type ItemType string

const (
	ItemColumn ItemType = "column"
	ItemCard   ItemType = "card"
)

// DropEvent is the outcome of one grab-and-move gesture. For columns
// the container ids are board ids; for cards they are column ids. A
// cancelled gesture has Cancelled set and is ignored.
type DropEvent struct {
	Type        ItemType
	SourceID    string
	SourceIndex int
	DestID      string
	DestIndex   int
	Cancelled   bool
}

// noop reports whether the event should leave the collection untouched:
// cancelled gestures, missing fields, and drops back onto the exact
// source position.
func (ev DropEvent) noop() bool {
	if ev.Cancelled {
		return true
	}
	if ev.SourceID == "" || ev.DestID == "" || ev.SourceIndex < 0 || ev.DestIndex < 0 {
		return true
	}
	return ev.SourceID == ev.DestID && ev.SourceIndex == ev.DestIndex
}

// ApplyDrop reduces a drop event to the matching store transform:
// column reorder, same-column card reorder, or cross-column card move.
// Card order passes through the sort policy after every card drop, so
// the literal drop index is advisory; the policy is authoritative.
// Column order is never sorted. Unresolvable references return the
// collection unchanged.
func ApplyDrop(c Collection, ev DropEvent) Collection {
	if ev.noop() {
		return c
	}
	switch ev.Type {
	case ItemColumn:
		return dropColumn(c, ev)
	case ItemCard:
		if ev.SourceID == ev.DestID {
			return dropCardWithin(c, ev)
		}
		return dropCardAcross(c, ev)
	}
	return c
}

func dropColumn(c Collection, ev DropEvent) Collection {
	c = c.Clone()
	b := c.Active()
	if b == nil || b.ID != ev.SourceID || b.ID != ev.DestID {
		return c
	}
	if ev.SourceIndex >= len(b.Columns) {
		return c
	}
	col := b.Columns[ev.SourceIndex]
	rest := append(b.Columns[:ev.SourceIndex:ev.SourceIndex], b.Columns[ev.SourceIndex+1:]...)
	b.Columns = insertColumn(rest, col, ev.DestIndex)
	return c
}

func dropCardWithin(c Collection, ev DropEvent) Collection {
	c = c.Clone()
	b := c.Active()
	if b == nil {
		return c
	}
	col := findColumnIn(b, ev.SourceID)
	if col == nil || ev.SourceIndex >= len(col.Cards) {
		return c
	}
	card := col.Cards[ev.SourceIndex]
	rest := append(col.Cards[:ev.SourceIndex:ev.SourceIndex], col.Cards[ev.SourceIndex+1:]...)
	col.Cards = SortCards(insertCard(rest, card, ev.DestIndex))
	return c
}

func dropCardAcross(c Collection, ev DropEvent) Collection {
	c = c.Clone()
	b := c.Active()
	if b == nil {
		return c
	}
	src := findColumnIn(b, ev.SourceID)
	dst := findColumnIn(b, ev.DestID)
	if src == nil || dst == nil || ev.SourceIndex >= len(src.Cards) {
		return c
	}
	card := src.Cards[ev.SourceIndex]
	src.Cards = SortCards(append(src.Cards[:ev.SourceIndex:ev.SourceIndex], src.Cards[ev.SourceIndex+1:]...))
	dst.Cards = SortCards(insertCard(dst.Cards, card, ev.DestIndex))
	return c
}

func findColumnIn(b *Board, columnID string) *Column {
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			return &b.Columns[i]
		}
	}
	return nil
}

// insertCard places card at index, clamping past-the-end drops.
func insertCard(cards []Card, card Card, index int) []Card {
	if index > len(cards) {
		index = len(cards)
	}
	out := make([]Card, 0, len(cards)+1)
	out = append(out, cards[:index]...)
	out = append(out, card)
	out = append(out, cards[index:]...)
	return out
}

func insertColumn(cols []Column, col Column, index int) []Column {
	if index > len(cols) {
		index = len(cols)
	}
	out := make([]Column, 0, len(cols)+1)
	out = append(out, cols[:index]...)
	out = append(out, col)
	out = append(out, cols[index:]...)
	return out
}
