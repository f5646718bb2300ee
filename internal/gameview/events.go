package gameview

import (
	"time"

	"guess-master/internal/models"
	"guess-master/internal/notify"
)

type Event interface{ isEvent() }

type (
	StartPressed struct{}

	StartSucceeded struct {
		Seq      uint64
		Response models.GameResponse
	}

	StartFailed struct {
		Seq uint64
		Err error
	}

	GuessChanged struct{ Text string }

	GuessSubmitted struct{}

	GuessSucceeded struct {
		Seq      uint64
		Response models.GameResponse
	}

	GuessFailed struct {
		Seq uint64
		Err error
	}

	ShakeExpired struct{ ID uint64 }

	CredentialChanged struct{ Text string }

	ClaimPressed struct{}

	DialogDismissed struct{}

	NotificationExpired struct{ ID notify.ID }
)

func (StartPressed) isEvent()        {}
func (StartSucceeded) isEvent()      {}
func (StartFailed) isEvent()         {}
func (GuessChanged) isEvent()        {}
func (GuessSubmitted) isEvent()      {}
func (GuessSucceeded) isEvent()      {}
func (GuessFailed) isEvent()         {}
func (ShakeExpired) isEvent()        {}
func (CredentialChanged) isEvent()   {}
func (ClaimPressed) isEvent()        {}
func (DialogDismissed) isEvent()     {}
func (NotificationExpired) isEvent() {}

type Effect interface{ isEffect() }

type (
	// StartGame asks the runtime to call the start endpoint and report back
	// with StartSucceeded or StartFailed carrying Seq.
	StartGame struct{ Seq uint64 }

	// SubmitGuess asks the runtime to post Guess and report back with
	// GuessSucceeded or GuessFailed carrying Seq.
	SubmitGuess struct {
		Seq   uint64
		Guess int
	}

	ExpireNotification struct {
		ID    notify.ID
		After time.Duration
	}

	ClearShake struct {
		ID    uint64
		After time.Duration
	}
)

func (StartGame) isEffect()          {}
func (SubmitGuess) isEffect()        {}
func (ExpireNotification) isEffect() {}
func (ClearShake) isEffect()         {}
