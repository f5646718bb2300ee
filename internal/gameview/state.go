// Package gameview is the player-side view-model of the guessing game.
//
// State is a plain value and Update is a pure function from (State, Event)
// to (State, []Effect). Effects describe work for the runtime (HTTP calls,
// timers); their results come back in as Events.
package gameview

import (
	"fmt"
	"time"

	"guess-master/internal/models"
	"guess-master/internal/notify"
)

const (
	ShakeDuration = 500 * time.Millisecond
	WinMarker     = "Correct"
)

// Notification texts.
const (
	NoteGameStarted  = "New game started!"
	NoteStartFailed  = "Error: Failed to start the game."
	NoteInvalidGuess = "Please enter a valid number between 1 and 100."
	NoteGuessFailed  = "Error: Failed to submit guess."
	NoteNeedWallet   = "Error: Wallet address is required."
	NoteSecretKey    = "Error: That looks like a private key. Enter your public wallet address instead."
)

type State struct {
	Started  bool
	Prize    float64
	Messages []string

	// Guess is the raw text of the numeric field.
	Guess   string
	Shake   bool
	shakeID uint64

	DialogOpen bool
	// Credential is the wallet string typed into the claim dialog. It only
	// lives in memory and is cleared whenever the dialog closes.
	Credential string

	Notifications notify.Queue

	InFlight   int
	RequestSeq uint64
	AppliedSeq uint64
}

func New() State {
	return State{
		Prize:         models.StartingPrize,
		Notifications: notify.NewQueue(notify.DefaultTTL),
	}
}

// Busy reports whether any request is outstanding.
func (s State) Busy() bool { return s.InFlight > 0 }

// CanGuess reports whether a submit would do anything.
func (s State) CanGuess() bool { return s.Started && !s.Busy() }

func (s State) PrizeText() string {
	return fmt.Sprintf("%.4f", s.Prize)
}

func (s State) withMessages(msgs ...string) State {
	out := make([]string, 0, len(s.Messages)+len(msgs))
	out = append(out, s.Messages...)
	s.Messages = append(out, msgs...)
	return s
}
