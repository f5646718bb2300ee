package gameview

import (
	"fmt"
	"strings"
	"time"

	"guess-master/internal/models"
)

// Update applies ev to s at time now and returns the next state together with
// the effects the runtime must perform.
func Update(s State, now time.Time, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case StartPressed:
		return issueRequest(s, func(seq uint64) Effect { return StartGame{Seq: seq} })

	case StartSucceeded:
		var fresh bool
		if s, fresh = settle(s, ev.Seq); !fresh {
			return s, nil
		}
		s.Messages = []string{ev.Response.Message}
		s.Prize = ev.Response.Prize
		s.Started = true
		return notifyText(s, now, NoteGameStarted)

	case StartFailed:
		var fresh bool
		if s, fresh = settle(s, ev.Seq); !fresh {
			return s, nil
		}
		return notifyText(s, now, NoteStartFailed)

	case GuessChanged:
		s.Guess = ev.Text
		return s, nil

	case GuessSubmitted:
		return submitGuess(s, now)

	case GuessSucceeded:
		var fresh bool
		if s, fresh = settle(s, ev.Seq); !fresh {
			return s, nil
		}
		s = s.withMessages(ev.Response.Message)
		s.Prize = ev.Response.Prize
		s.Guess = ""
		if strings.Contains(ev.Response.Message, WinMarker) {
			s.DialogOpen = true
			s.Credential = ""
		}
		return notifyText(s, now, ev.Response.Message)

	case GuessFailed:
		var fresh bool
		if s, fresh = settle(s, ev.Seq); !fresh {
			return s, nil
		}
		return notifyText(s, now, NoteGuessFailed)

	case ShakeExpired:
		if ev.ID == s.shakeID {
			s.Shake = false
		}
		return s, nil

	case CredentialChanged:
		if s.DialogOpen {
			s.Credential = ev.Text
		}
		return s, nil

	case ClaimPressed:
		return claim(s, now)

	case DialogDismissed:
		s.DialogOpen = false
		s.Credential = ""
		return s, nil

	case NotificationExpired:
		// sweep anything whose own timer was lost along with this one
		s.Notifications = s.Notifications.Remove(ev.ID).Expire(now)
		return s, nil
	}

	return s, nil
}

func issueRequest(s State, effect func(seq uint64) Effect) (State, []Effect) {
	s.RequestSeq++
	s.InFlight++
	return s, []Effect{effect(s.RequestSeq)}
}

// settle marks one request finished and reports whether its response is newer
// than anything applied so far. Older responses must be dropped.
func settle(s State, seq uint64) (State, bool) {
	if s.InFlight > 0 {
		s.InFlight--
	}
	if seq <= s.AppliedSeq {
		return s, false
	}
	s.AppliedSeq = seq
	return s, true
}

func submitGuess(s State, now time.Time) (State, []Effect) {
	if !s.CanGuess() {
		return s, nil
	}

	n, err := ParseGuess(s.Guess)
	if err != nil {
		s.Shake = true
		s.shakeID++

		var effects []Effect
		s, effects = notifyText(s, now, NoteInvalidGuess)
		return s, append(effects, ClearShake{ID: s.shakeID, After: ShakeDuration})
	}

	return issueRequest(s, func(seq uint64) Effect { return SubmitGuess{Seq: seq, Guess: n} })
}

func claim(s State, now time.Time) (State, []Effect) {
	if !s.DialogOpen {
		return s, nil
	}

	credential := strings.TrimSpace(s.Credential)
	switch {
	case credential == "":
		return notifyText(s, now, NoteNeedWallet)
	case LooksLikeSecretKey(credential):
		s.Credential = ""
		return notifyText(s, now, NoteSecretKey)
	}

	s.Credential = ""
	s.DialogOpen = false
	return notifyText(s, now, fmt.Sprintf("Prize of %s claimed by %s.", models.FormatPrize(s.Prize), credential))
}

func notifyText(s State, now time.Time, text string) (State, []Effect) {
	q, n := s.Notifications.Push(text, now)
	s.Notifications = q
	return s, []Effect{ExpireNotification{ID: n.ID, After: q.TTL()}}
}
