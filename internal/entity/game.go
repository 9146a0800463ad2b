package entity

import (
	"fmt"
	"time"
)

// NoPlayer marks an unowned tile and the winner of a drawn match.
const NoPlayer = -1

type GameState int

const (
	StateMenu GameState = iota
	StatePlayerSelect
	StatePlaying
	StatePlayerWon
	StateDraw
)

var gameStateNames = map[GameState]string{
	StateMenu:         "menu",
	StatePlayerSelect: "player_select",
	StatePlaying:      "playing",
	StatePlayerWon:    "player_won",
	StateDraw:         "draw",
}

func (that GameState) String() string {
	if name, ok := gameStateNames[that]; ok {
		return name
	}
	return fmt.Sprintf("GameState(%d)", int(that))
}

func (that GameState) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *GameState) UnmarshalText(text []byte) error {
	for state, name := range gameStateNames {
		if name == string(text) {
			*that = state
			return nil
		}
	}

	return fmt.Errorf("unknown game state %q", text)
}

// IsTerminal reports whether a round has ended and only retry or main menu are allowed.
func (that GameState) IsTerminal() bool {
	return that == StatePlayerWon || that == StateDraw
}

// Outcome is the result of a single claim.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeWin
	OutcomeDraw
)

func (that Outcome) String() string {
	switch that {
	case OutcomeWin:
		return "win"
	case OutcomeDraw:
		return "draw"
	default:
		return "continue"
	}
}

func (that Outcome) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "win":
		*that = OutcomeWin
	case "draw":
		*that = OutcomeDraw
	case "continue":
		*that = OutcomeContinue
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}

// MatchRecord is the archived log of one finished game.
type MatchRecord struct {
	ID         string    `json:"id"`
	BoardSize  int       `json:"board_size"`
	Players    int       `json:"players"`
	Identities []string  `json:"identities"`
	Moves      []Move    `json:"moves"`
	Outcome    Outcome   `json:"outcome"`
	Winner     int       `json:"winner"`
	FinishedAt time.Time `json:"finished_at"`
}

func (that *MatchRecord) IsDraw() bool {
	return that.Outcome == OutcomeDraw
}

// WinnerIdentity returns an empty string for a drawn match.
func (that *MatchRecord) WinnerIdentity() string {
	if that.Winner < 0 || that.Winner >= len(that.Identities) {
		return ""
	}
	return that.Identities[that.Winner]
}

// Standing is the win/loss/draw tally of one identity.
type Standing struct {
	Identity string `json:"identity"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Draws    int    `json:"draws"`
}

// GameSnapshot is a read-only view of a coordinator and its board.
type GameSnapshot struct {
	MatchID    string    `json:"match_id,omitempty"`
	State      GameState `json:"state"`
	Turn       int       `json:"turn"`
	Players    int       `json:"players"`
	BoardSize  int       `json:"board_size"`
	Grid       [][]int   `json:"grid,omitempty"`
	Moves      []Move    `json:"moves,omitempty"`
	Identities []string  `json:"identities,omitempty"`
	Winner     int       `json:"winner"`
}
