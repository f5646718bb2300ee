package models

import "time"

type GameStatus string

const (
	GameStatusActive GameStatus = "active"
	GameStatusWon    GameStatus = "won"
	GameStatusEnded  GameStatus = "ended"
)

const (
	DefaultGameID = "default"

	MinGuess = 1
	MaxGuess = 100

	StartingPrize = 1.0
	MinimumPrize  = 0.0001
)

type GameSession struct {
	ID       string     `json:"id" redis:"id"`
	Secret   int        `json:"secret" redis:"secret"` // players only ever see View()
	Prize    float64    `json:"prize" redis:"prize"`
	Attempts int        `json:"attempts" redis:"attempts"`
	Status   GameStatus `json:"status" redis:"status"` // active, won, ended

	CreatedAt time.Time `json:"created_at" redis:"created_at"`
	UpdatedAt time.Time `json:"updated_at" redis:"updated_at"`
}

// GameView is the player-safe projection of a session.
type GameView struct {
	ID        string     `json:"id"`
	Prize     float64    `json:"prize"`
	Attempts  int        `json:"attempts"`
	Status    GameStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (s *GameSession) View() GameView {
	return GameView{
		ID:        s.ID,
		Prize:     s.Prize,
		Attempts:  s.Attempts,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
