// Package tui runs the guessing game in a terminal.
package tui

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"guess-master/internal/gameview"
	"guess-master/internal/models"
)

const requestTimeout = 10 * time.Second

// GameClient is the server API the terminal UI needs.
type GameClient interface {
	Start(ctx context.Context) (*models.GameResponse, error)
	Guess(ctx context.Context, guess int) (*models.GameResponse, error)
}

type Model struct {
	state  gameview.State
	client GameClient
	width  int

	now   func() time.Time
	after func(d time.Duration, msg tea.Msg) tea.Cmd
}

func New(client GameClient) Model {
	return Model{
		state:  gameview.New(),
		client: client,
		now:    time.Now,
		after: func(d time.Duration, msg tea.Msg) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg { return msg })
		},
	}
}

func (m Model) State() gameview.State { return m.state }

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Guess Master")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case gameview.Event:
		return m.apply(msg)
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.state.DialogOpen {
		switch key.Type {
		case tea.KeyEsc:
			return m.apply(gameview.DialogDismissed{})
		case tea.KeyEnter:
			return m.apply(gameview.ClaimPressed{})
		case tea.KeyBackspace:
			return m.apply(gameview.CredentialChanged{Text: dropLast(m.state.Credential)})
		case tea.KeyRunes, tea.KeySpace:
			return m.apply(gameview.CredentialChanged{Text: m.state.Credential + string(key.Runes)})
		}
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlS:
		return m.apply(gameview.StartPressed{})
	case tea.KeyEnter:
		return m.apply(gameview.GuessSubmitted{})
	case tea.KeyBackspace:
		return m.apply(gameview.GuessChanged{Text: dropLast(m.state.Guess)})
	case tea.KeyRunes:
		if len(m.state.Guess) >= maxGuessInput {
			return m, nil
		}
		return m.apply(gameview.GuessChanged{Text: m.state.Guess + string(key.Runes)})
	}
	return m, nil
}

func (m Model) apply(ev gameview.Event) (tea.Model, tea.Cmd) {
	var effects []gameview.Effect
	m.state, effects = gameview.Update(m.state, m.now(), ev)

	var cmds []tea.Cmd
	for _, effect := range effects {
		if cmd := m.run(effect); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch len(cmds) {
	case 0:
		return m, nil
	case 1:
		return m, cmds[0]
	}
	return m, tea.Batch(cmds...)
}

func (m Model) run(effect gameview.Effect) tea.Cmd {
	client := m.client

	switch e := effect.(type) {
	case gameview.StartGame:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()

			resp, err := client.Start(ctx)
			if err != nil {
				log.Printf("Failed to start game: %v", err)
				return gameview.StartFailed{Seq: e.Seq, Err: err}
			}
			return gameview.StartSucceeded{Seq: e.Seq, Response: *resp}
		}

	case gameview.SubmitGuess:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()

			resp, err := client.Guess(ctx, e.Guess)
			if err != nil {
				log.Printf("Failed to submit guess %d: %v", e.Guess, err)
				return gameview.GuessFailed{Seq: e.Seq, Err: err}
			}
			return gameview.GuessSucceeded{Seq: e.Seq, Response: *resp}
		}

	case gameview.ExpireNotification:
		return m.after(e.After, gameview.NotificationExpired{ID: e.ID})

	case gameview.ClearShake:
		return m.after(e.After, gameview.ShakeExpired{ID: e.ID})
	}

	return nil
}

const maxGuessInput = 8

func dropLast(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
