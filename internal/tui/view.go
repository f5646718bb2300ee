package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"guess-master/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	prizeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	inputStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(12)
	shakingStyle = inputStyle.BorderForeground(lipgloss.Color("196")).MarginLeft(2)
	dialogStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("220")).Padding(1, 2)
)

func (m Model) View() string {
	s := m.state
	var b strings.Builder

	b.WriteString(titleStyle.Render("Guess Master"))
	b.WriteString("\n\n")
	b.WriteString("Prize: " + prizeStyle.Render(models.FormatPrize(s.Prize)))
	b.WriteString("\n\n")

	if s.DialogOpen {
		b.WriteString(m.dialogView())
	} else {
		b.WriteString(m.gameView())
	}

	if s.Notifications.Len() > 0 {
		b.WriteString("\n")
		for _, text := range s.Notifications.Texts() {
			style := noteStyle
			if strings.HasPrefix(text, "Error") || strings.HasPrefix(text, "Please") {
				style = errorStyle
			}
			b.WriteString(style.Render("• "+text) + "\n")
		}
	}

	return b.String()
}

func (m Model) gameView() string {
	s := m.state
	var b strings.Builder

	switch {
	case !s.Started && s.Busy():
		b.WriteString(faintStyle.Render("Starting...") + "\n")
	case !s.Started:
		b.WriteString("Press ctrl+s to start a game.\n")
	default:
		style := inputStyle
		if s.Shake {
			style = shakingStyle
		}
		field := s.Guess + "█"
		if !s.CanGuess() {
			field = faintStyle.Render(s.Guess)
		}
		b.WriteString("Your guess (1-100):\n")
		b.WriteString(style.Render(field) + "\n")
		if s.Busy() {
			b.WriteString(faintStyle.Render("Submitting...") + "\n")
		}
	}

	if len(s.Messages) > 0 {
		b.WriteString("\n")
		for _, msg := range s.Messages {
			b.WriteString(msg + "\n")
		}
	}

	b.WriteString("\n" + faintStyle.Render("ctrl+s new game • enter guess • ctrl+c quit") + "\n")
	return b.String()
}

func (m Model) dialogView() string {
	s := m.state
	body := strings.Join([]string{
		titleStyle.Render(fmt.Sprintf("You won %s!", models.FormatPrize(s.Prize))),
		"",
		"Enter your public wallet address to claim the prize.",
		errorStyle.Render("Never share your private key or seed phrase."),
		"",
		inputStyle.Width(48).Render(s.Credential + "█"),
		"",
		faintStyle.Render("enter claim • esc close"),
	}, "\n")
	return dialogStyle.Render(body) + "\n"
}
