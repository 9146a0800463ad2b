package usecase

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// Observer receives coordinator notifications. Calls are made synchronously from the
// goroutine driving the coordinator.
type Observer interface {
	StateChanged(state entity.GameState)
	TurnChanged(playerID int)
	TileClaimed(row, column, playerID int, outcome entity.Outcome)
	MatchFinished(record *entity.MatchRecord)
}

// Observers fans every notification out to each observer in order.
type Observers []Observer

func (that Observers) StateChanged(state entity.GameState) {
	for _, observer := range that {
		observer.StateChanged(state)
	}
}

func (that Observers) TurnChanged(playerID int) {
	for _, observer := range that {
		observer.TurnChanged(playerID)
	}
}

func (that Observers) TileClaimed(row, column, playerID int, outcome entity.Outcome) {
	for _, observer := range that {
		observer.TileClaimed(row, column, playerID, outcome)
	}
}

func (that Observers) MatchFinished(record *entity.MatchRecord) {
	for _, observer := range that {
		observer.MatchFinished(record)
	}
}
