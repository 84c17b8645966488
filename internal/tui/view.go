package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/labMorim/MavitKanban/internal/board"
)

const columnWidth = 26

func (a *App) View() string {
	var body string
	switch a.mode {
	case modeForm:
		body = a.renderForm()
	case modeBoards:
		body = a.renderBoardSwitcher()
	case modeSearch:
		body = a.renderSearch()
	case modeConfirm:
		body = modalStyle.Render(a.confirm.prompt + "\n\n[y] Yes  [n] No")
	case modeImport:
		body = modalStyle.Render(titleStyle.Render("Import boards") +
			"\n\nJSON path: " + a.importPath + "\n\n[enter] Import  [esc] Cancel")
	case modeNotice:
		body = modalStyle.BorderForeground(colorError).Render(a.notice + "\n\n[any key] Dismiss")
	default:
		body = a.renderBoard()
	}

	out := a.renderHeader() + "\n\n" + body + "\n\n" + a.renderFooter()
	if bg, ok := backgroundColors[a.background]; ok && a.width > 0 {
		return lipgloss.NewStyle().
			Background(bg).
			Width(a.width).
			Height(max(a.height, lipgloss.Height(out))).
			Render(out)
	}
	return out
}

func (a *App) renderHeader() string {
	b := a.activeBoard()
	name := "(no boards)"
	if b != nil {
		name = b.Name
	}
	count := ""
	if n := len(a.collection.Boards); n > 1 {
		count = columnCountStyle.Render(fmt.Sprintf("  [%d boards]", n))
	}
	return titleStyle.Render("MavitKanban") + "  " + name + count
}

func (a *App) renderBoard() string {
	b := a.activeBoard()
	if b == nil {
		return helpStyle.Render("No boards yet. Press a to create one.")
	}
	if len(b.Columns) == 0 {
		return helpStyle.Render("No columns yet. Press N to add one.")
	}

	cols := make([]string, 0, len(b.Columns))
	for ci, col := range b.Columns {
		cols = append(cols, a.renderColumn(col, ci))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (a *App) renderColumn(col board.Column, ci int) string {
	moveColumn := a.mode == modeMove && a.grab.typ == board.ItemColumn

	header := columnTitleStyle.Render(col.Title)
	count := fmt.Sprintf(" %d", len(col.Cards))
	if col.Limit > 0 {
		count = fmt.Sprintf(" %d/%d", len(col.Cards), col.Limit)
	}
	if col.OverLimit() {
		header += overLimitStyle.Render(count)
	} else {
		header += columnCountStyle.Render(count)
	}
	if moveColumn && ci == a.grab.destIndex {
		header = cardGrabbedStyle.Render("▶ ") + header
	}

	lines := []string{header, ""}
	if len(col.Cards) == 0 {
		placeholder := helpStyle.Render("(empty)")
		if a.cardDropTarget(col, ci, 0) {
			placeholder = cardGrabbedStyle.Render("▼ drop here")
		}
		lines = append(lines, placeholder)
	}
	for ri, card := range col.Cards {
		if a.cardDropTarget(col, ci, ri) {
			lines = append(lines, cardGrabbedStyle.Render("▼"))
		}
		lines = append(lines, a.renderCard(card, ci, ri))
	}
	if len(col.Cards) > 0 && a.cardDropTarget(col, ci, len(col.Cards)) {
		lines = append(lines, cardGrabbedStyle.Render("▼"))
	}

	active := ci == a.colCursor && a.mode == modeNormal
	return columnBorder(col, active).Width(columnWidth).Render(strings.Join(lines, "\n"))
}

// cardDropTarget reports whether the move-mode drop marker sits at slot
// ri of column ci.
func (a *App) cardDropTarget(col board.Column, ci, ri int) bool {
	if a.mode != modeMove || a.grab.typ != board.ItemCard {
		return false
	}
	if ci != a.grab.destCol {
		return false
	}
	return ri == a.grab.destIndex
}

func (a *App) renderCard(card board.Card, ci, ri int) string {
	check := "[ ]"
	if card.Completed {
		check = "[x]"
	}
	line := fmt.Sprintf("%s %s %s", check, priorityMarker(card.Priority), card.Title)

	style := cardStyle
	grabbed := a.mode == modeMove && a.grab.typ == board.ItemCard &&
		ci == a.colCursor && ri == a.grab.sourceIndex &&
		a.currentColumnID() == a.grab.sourceColID
	switch {
	case grabbed:
		style = cardGrabbedStyle
	case card.Completed:
		style = cardDoneStyle
	case a.mode == modeNormal && ci == a.colCursor && ri == a.cardCursor:
		style = cardCursorStyle
		line = "> " + line
	}

	out := style.Render(truncate(line, columnWidth-4))
	if card.Deadline != nil && !card.Completed {
		due := card.Deadline.Format(a.cfg.UI.DateFormat)
		s := helpStyle
		if card.Overdue(time.Now()) {
			s = cardOverdueStyle
			due += " overdue"
		}
		out += "\n" + s.Render("      ⏱ "+due)
	}
	return out
}

func (a *App) currentColumnID() string {
	if col := a.currentColumn(); col != nil {
		return col.ID
	}
	return ""
}

func (a *App) renderForm() string {
	f := a.form
	if f == nil {
		return ""
	}
	var title string
	switch {
	case f.kind == formBoard && f.editing:
		title = "Rename board"
	case f.kind == formBoard:
		title = "New board"
	case f.kind == formColumn && f.editing:
		title = "Edit column"
	case f.kind == formColumn:
		title = "New column"
	case f.editing:
		title = "Edit card"
	default:
		title = "New card"
	}

	var bld strings.Builder
	bld.WriteString(titleStyle.Render(title) + "\n\n")
	for i, in := range f.inputs {
		label := fieldLabelStyle.Render(f.labels[i])
		if i == f.focus {
			label = fieldFocusedStyle.Render(f.labels[i])
		}
		bld.WriteString(fmt.Sprintf("%s\n%s\n", label, in.View()))
	}
	for c := 0; c < f.cycleRows(); c++ {
		row := len(f.inputs) + c
		label, value := f.cycleRowView(c)
		if row == f.focus {
			label = fieldFocusedStyle.Render(label)
		} else {
			label = fieldLabelStyle.Render(label)
		}
		bld.WriteString(fmt.Sprintf("%s  %s\n", label, value))
	}
	if f.errText != "" {
		bld.WriteString("\n" + statusErrStyle.Render(f.errText))
	}
	bld.WriteString("\n" + helpStyle.Render("[enter] Save  [tab] Next field  [esc] Cancel"))
	return modalStyle.Render(bld.String())
}

// cycleRowView returns the label and rendered value of cycle row c.
func (f *form) cycleRowView(c int) (string, string) {
	switch {
	case f.kind == formCard && c == 0:
		value := "none"
		if f.priority != nil {
			value = string(*f.priority)
		}
		return "Priority ◀ ▶", value
	case f.kind == formCard && c == 1:
		if f.completed {
			return "Completed", "[x]"
		}
		return "Completed", "[ ]"
	case f.kind == formColumn && c == 0:
		tint := columnColors[f.color]
		swatch := lipgloss.NewStyle().Foreground(tint).Render("██ " + string(f.color))
		return "Color ◀ ▶", swatch
	}
	return "", ""
}

func (a *App) renderBoardSwitcher() string {
	var bld strings.Builder
	bld.WriteString(titleStyle.Render("Boards") + "\n\n")
	for i, b := range a.collection.Boards {
		marker := "  "
		if i == a.boardCursor {
			marker = cardCursorStyle.Render("> ")
		}
		active := ""
		if b.ID == a.collection.ActiveBoardID {
			active = statusStyle.Render(" (active)")
		}
		bld.WriteString(fmt.Sprintf("%s%s  %s%s\n", marker, b.Name, columnCountStyle.Render(fmt.Sprintf("%d cards", b.CardCount())), active))
	}
	bld.WriteString("\n" + helpStyle.Render("[enter] Switch  [esc] Close"))
	return modalStyle.Render(bld.String())
}

func (a *App) renderSearch() string {
	var bld strings.Builder
	bld.WriteString(titleStyle.Render("Find card") + "\n\n")
	bld.WriteString("/" + a.searchQuery + "▌\n\n")
	if len(a.searchMatches) == 0 && a.searchQuery != "" {
		bld.WriteString(helpStyle.Render("no matches") + "\n")
	}
	for i, m := range a.searchMatches {
		marker := "  "
		if i == a.searchCursor {
			marker = cardCursorStyle.Render("> ")
		}
		bld.WriteString(fmt.Sprintf("%s%s  %s\n", marker, m.Card.Title, columnCountStyle.Render(m.ColumnTitle)))
	}
	bld.WriteString("\n" + helpStyle.Render("[enter] Jump  [esc] Close"))
	return modalStyle.Render(bld.String())
}

func (a *App) renderFooter() string {
	st := statusStyle
	if a.errSt {
		st = statusErrStyle
	}
	var hints string
	switch a.mode {
	case modeMove:
		hints = "[arrows] Position  [enter] Drop  [esc] Cancel"
	case modeNormal:
		hints = "[m] Move card  [M] Move column  [n] New card  [space] Done  [/] Find  [b] Boards  [o] Export  [i] Import  [q] Quit"
	default:
		hints = ""
	}
	out := st.Render(a.status)
	if hints != "" {
		out += "\n" + helpStyle.Render(hints)
	}
	return out
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
