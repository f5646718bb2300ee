package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"guess-master/internal/gameview"
	"guess-master/internal/models"
	"guess-master/internal/notify"
)

type fakeClient struct {
	startResp *models.GameResponse
	startErr  error
	guessResp *models.GameResponse
	guessErr  error
	guesses   []int
}

func (f *fakeClient) Start(ctx context.Context) (*models.GameResponse, error) {
	return f.startResp, f.startErr
}

func (f *fakeClient) Guess(ctx context.Context, guess int) (*models.GameResponse, error) {
	f.guesses = append(f.guesses, guess)
	return f.guessResp, f.guessErr
}

type timer struct {
	after time.Duration
	msg   tea.Msg
}

func newTestModel(c GameClient) (*Model, *[]timer) {
	var timers []timer
	m := New(c)
	m.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	m.after = func(d time.Duration, msg tea.Msg) tea.Cmd {
		timers = append(timers, timer{after: d, msg: msg})
		return nil
	}
	return &m, &timers
}

// send feeds msg to the model and keeps running resulting commands until
// none are left.
func send(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	*m = next.(Model)
	drain(t, m, cmd)
}

func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(t, m, c)
		}
	case nil:
	default:
		send(t, m, msg)
	}
}

func typeText(t *testing.T, m *Model, text string) {
	t.Helper()
	for _, r := range text {
		send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestStartAndWin(t *testing.T) {
	client := &fakeClient{
		startResp: &models.GameResponse{Message: models.MessageGameStarted, Prize: 1},
		guessResp: &models.GameResponse{Message: models.MessageCorrect, Prize: 0.5},
	}
	m, timers := newTestModel(client)

	if !strings.Contains(m.View(), "Press ctrl+s") {
		t.Errorf("expected start prompt, got:\n%s", m.View())
	}

	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	s := m.State()
	if !s.Started || s.Busy() {
		t.Fatalf("expected started and idle, got %+v", s)
	}
	view := m.View()
	if !strings.Contains(view, models.MessageGameStarted) || !strings.Contains(view, "1.0000 SOL") {
		t.Errorf("unexpected view:\n%s", view)
	}

	typeText(t, m, "42")
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(client.guesses) != 1 || client.guesses[0] != 42 {
		t.Fatalf("expected guess 42 to be sent, got %v", client.guesses)
	}
	if !m.State().DialogOpen {
		t.Fatal("win should open the claim dialog")
	}
	if !strings.Contains(m.View(), "Never share your private key") {
		t.Errorf("dialog should warn about private keys:\n%s", m.View())
	}

	typeText(t, m, "alice")
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.State().DialogOpen {
		t.Error("claim should close the dialog")
	}
	if !strings.Contains(m.View(), "Prize of 0.5000 SOL claimed by alice.") {
		t.Errorf("expected claim confirmation:\n%s", m.View())
	}

	for _, tm := range *timers {
		if _, ok := tm.msg.(gameview.NotificationExpired); ok && tm.after != notify.DefaultTTL {
			t.Errorf("notification scheduled for %s", tm.after)
		}
	}
}

func TestStartFailureShowsError(t *testing.T) {
	m, _ := newTestModel(&fakeClient{startErr: errors.New("connection refused")})

	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if m.State().Started {
		t.Error("failed start must not start the game")
	}
	if got := m.State().Notifications.Texts(); len(got) != 1 || got[0] != gameview.NoteStartFailed {
		t.Errorf("expected one error notification, got %v", got)
	}
}

func TestInvalidGuessSchedulesShake(t *testing.T) {
	client := &fakeClient{startResp: &models.GameResponse{Message: "go", Prize: 1}}
	m, timers := newTestModel(client)
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	typeText(t, m, "500")
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(client.guesses) != 0 {
		t.Errorf("invalid guess reached the client: %v", client.guesses)
	}
	if !m.State().Shake {
		t.Error("input should shake")
	}

	var shake *timer
	for i := range *timers {
		if _, ok := (*timers)[i].msg.(gameview.ShakeExpired); ok {
			shake = &(*timers)[i]
		}
	}
	if shake == nil || shake.after != gameview.ShakeDuration {
		t.Fatalf("expected a shake timer, got %+v", *timers)
	}

	send(t, m, shake.msg)
	if m.State().Shake {
		t.Error("shake should clear when its timer fires")
	}
}

func TestGuessEditing(t *testing.T) {
	m, _ := newTestModel(&fakeClient{})
	typeText(t, m, "123")
	send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})

	if m.State().Guess != "12" {
		t.Errorf("expected 12, got %q", m.State().Guess)
	}

	typeText(t, m, strings.Repeat("9", 20))
	if len(m.State().Guess) > maxGuessInput {
		t.Errorf("guess input grew past %d: %q", maxGuessInput, m.State().Guess)
	}
}

func TestEscapeDiscardsCredential(t *testing.T) {
	client := &fakeClient{
		startResp: &models.GameResponse{Message: "go", Prize: 1},
		guessResp: &models.GameResponse{Message: models.MessageCorrect, Prize: 1},
	}
	m, _ := newTestModel(client)
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	typeText(t, m, "7")
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	typeText(t, m, "wallet")
	send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	s := m.State()
	if s.DialogOpen || s.Credential != "" {
		t.Errorf("escape should close and clear, got %+v", s)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(&fakeClient{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}
