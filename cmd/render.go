package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordleplus/internal/game"
)

var (
	correctStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("28"))

	presentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("178"))

	absentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("240"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// renderRow draws one scored guess as a row of tiles.
func renderRow(guess string, marks []game.LetterStatus) string {
	var b strings.Builder
	for i, r := range []rune(strings.ToUpper(guess)) {
		tile := " " + string(r) + " "
		switch marks[i] {
		case game.Correct:
			b.WriteString(correctStyle.Render(tile))
		case game.Present:
			b.WriteString(presentStyle.Render(tile))
		default:
			b.WriteString(absentStyle.Render(tile))
		}
	}
	return b.String()
}

// renderBoard draws every guess so far followed by empty rows.
func renderBoard(s *game.Session) string {
	st := s.Snapshot()
	rows := make([]string, 0, st.MaxAttempts)
	for _, g := range st.Guesses {
		rows = append(rows, renderRow(g, s.EvaluateGuess(g)))
	}
	blank := emptyStyle.Render(strings.Repeat(" _ ", st.WordLength))
	for len(rows) < st.MaxAttempts {
		rows = append(rows, blank)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
