package usecase

import (
	"fmt"
	"io"
	"math"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = []string{"cross", "circle", "triangle"}

type claimEvent struct {
	Row, Column, PlayerID int
	Outcome               entity.Outcome
}

// recorder keeps every notification it receives.
type recorder struct {
	states  []entity.GameState
	turns   []int
	claims  []claimEvent
	matches []*entity.MatchRecord
}

func (that *recorder) StateChanged(state entity.GameState) {
	that.states = append(that.states, state)
}

func (that *recorder) TurnChanged(playerID int) {
	that.turns = append(that.turns, playerID)
}

func (that *recorder) TileClaimed(row, column, playerID int, outcome entity.Outcome) {
	that.claims = append(that.claims, claimEvent{Row: row, Column: column, PlayerID: playerID, Outcome: outcome})
}

func (that *recorder) MatchFinished(record *entity.MatchRecord) {
	that.matches = append(that.matches, record)
}

func newTestCoordinator(t *testing.T, catalog []string) (*GameCoordinator, *recorder) {
	t.Helper()

	board, err := tictactoe.NewBoard(3)
	require.NoError(t, err)

	rec := &recorder{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return NewGameCoordinator(logger, board, catalog, Limits{MaxBoardSize: 8, MaxPlayers: 5}, rec), rec
}

// startPlaying moves a coordinator from Menu to Playing with the given identities.
func startPlaying(t *testing.T, coordinator *GameCoordinator, size int, identities ...string) {
	t.Helper()

	require.NoError(t, coordinator.RequestStartGame(size, len(identities)))
	for _, identity := range identities {
		require.NoError(t, coordinator.RequestIdentitySelection(identity))
	}
	require.Equal(t, entity.StatePlaying, coordinator.State())
}

func TestGameCoordinator_StartGame(t *testing.T) {
	t.Run("Menu to PlayerSelect", func(t *testing.T) {
		// Given: a coordinator in the menu
		coordinator, rec := newTestCoordinator(t, testCatalog)
		require.Equal(t, entity.StateMenu, coordinator.State())

		// When: a 3x3 game for two players is requested
		err := coordinator.RequestStartGame(3, 2)

		// Then: player selection starts with player 0
		require.NoError(t, err)
		assert.Equal(t, entity.StatePlayerSelect, coordinator.State())
		assert.Equal(t, 0, coordinator.Turn())
		assert.Equal(t, []entity.GameState{entity.StatePlayerSelect}, rec.states)
		assert.Equal(t, []int{0}, rec.turns)
	})

	t.Run("Rejects invalid configuration", func(t *testing.T) {
		tests := []struct {
			name    string
			size    int
			players int
		}{
			{name: "zero size", size: 0, players: 2},
			{name: "negative size", size: -3, players: 2},
			{name: "single player", size: 3, players: 1},
			{name: "more players than identities", size: 3, players: 4},
			{name: "size above the limit", size: 9, players: 2},
			{name: "size at MaxInt", size: math.MaxInt, players: 2},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				coordinator, rec := newTestCoordinator(t, testCatalog)

				err := coordinator.RequestStartGame(tt.size, tt.players)

				require.ErrorIs(t, err, apperror.ErrInvalidConfig)
				assert.Equal(t, entity.StateMenu, coordinator.State())
				assert.Empty(t, rec.states)
			})
		}
	})

	t.Run("Empty catalog allows players up to the limit", func(t *testing.T) {
		coordinator, _ := newTestCoordinator(t, nil)

		require.NoError(t, coordinator.RequestStartGame(4, 5))
		assert.Equal(t, 5, coordinator.NumPlayers())
	})

	t.Run("Empty catalog still caps the player count", func(t *testing.T) {
		for _, players := range []int{6, math.MaxInt} {
			coordinator, rec := newTestCoordinator(t, nil)

			// When: more players than the limit are requested
			err := coordinator.RequestStartGame(3, players)

			// Then: the request is rejected before anything changes
			require.ErrorIs(t, err, apperror.ErrInvalidConfig)
			assert.Equal(t, entity.StateMenu, coordinator.State())
			assert.Zero(t, coordinator.NumPlayers())
			assert.Empty(t, rec.states)
		}
	})

	t.Run("Largest allowed board plays through", func(t *testing.T) {
		// Given: a start at the size limit
		coordinator, _ := newTestCoordinator(t, nil)

		// When: every player picks an identity
		startPlaying(t, coordinator, 8, "a", "b")

		// Then: the board was set up at that size
		assert.Equal(t, 8, coordinator.Snapshot().BoardSize)
		assert.Len(t, coordinator.Snapshot().Grid, 8)
	})

	t.Run("Zero limits use the defaults", func(t *testing.T) {
		board, err := tictactoe.NewBoard(3)
		require.NoError(t, err)
		coordinator := NewGameCoordinator(slog.New(slog.NewJSONHandler(io.Discard, nil)), board, nil, Limits{}, nil)

		require.ErrorIs(t, coordinator.RequestStartGame(DefaultMaxBoardSize+1, 2), apperror.ErrInvalidConfig)
		require.ErrorIs(t, coordinator.RequestStartGame(3, DefaultMaxPlayers+1), apperror.ErrInvalidConfig)
		require.NoError(t, coordinator.RequestStartGame(DefaultMaxBoardSize, DefaultMaxPlayers))
	})

	t.Run("Rejects start outside the menu", func(t *testing.T) {
		// Given: a coordinator already selecting players
		coordinator, _ := newTestCoordinator(t, testCatalog)
		require.NoError(t, coordinator.RequestStartGame(3, 2))

		// When: another start is requested
		err := coordinator.RequestStartGame(4, 3)

		// Then: the transition is rejected and nothing changes
		require.ErrorIs(t, err, apperror.ErrInvalidStateTransition)
		assert.Equal(t, entity.StatePlayerSelect, coordinator.State())
		assert.Equal(t, 2, coordinator.NumPlayers())
	})
}

func TestGameCoordinator_IdentitySelection(t *testing.T) {
	t.Run("Each player selects in turn order and the game starts", func(t *testing.T) {
		// Given: player selection for two players
		coordinator, rec := newTestCoordinator(t, testCatalog)
		require.NoError(t, coordinator.RequestStartGame(3, 2))

		// When: player 0 selects
		require.NoError(t, coordinator.RequestIdentitySelection("circle"))

		// Then: the turn advances to player 1 and the state is unchanged
		assert.Equal(t, 1, coordinator.Turn())
		assert.Equal(t, entity.StatePlayerSelect, coordinator.State())

		// When: player 1 selects
		require.NoError(t, coordinator.RequestIdentitySelection("cross"))

		// Then: the game starts with player 0 on a fresh board
		assert.Equal(t, entity.StatePlaying, coordinator.State())
		assert.Equal(t, 0, coordinator.Turn())
		assert.NotEmpty(t, coordinator.MatchID())
		assert.Equal(t, []entity.GameState{entity.StatePlayerSelect, entity.StatePlaying}, rec.states)
		assert.Equal(t, []int{0, 1, 0}, rec.turns)

		identity, err := coordinator.Identity(0)
		require.NoError(t, err)
		assert.Equal(t, "circle", identity)

		identity, err = coordinator.CurrentIdentity()
		require.NoError(t, err)
		assert.Equal(t, "circle", identity)
	})

	t.Run("Rejects an identity already taken", func(t *testing.T) {
		coordinator, _ := newTestCoordinator(t, testCatalog)
		require.NoError(t, coordinator.RequestStartGame(3, 2))
		require.NoError(t, coordinator.RequestIdentitySelection("cross"))

		err := coordinator.RequestIdentitySelection("cross")

		require.ErrorIs(t, err, apperror.ErrIdentityTaken)
		assert.Equal(t, 1, coordinator.Turn())
		assert.Equal(t, entity.StatePlayerSelect, coordinator.State())
	})

	t.Run("Rejects identities outside the catalog", func(t *testing.T) {
		coordinator, _ := newTestCoordinator(t, testCatalog)
		require.NoError(t, coordinator.RequestStartGame(3, 2))

		err := coordinator.RequestIdentitySelection("hexagon")
		require.ErrorIs(t, err, apperror.ErrUnknownIdentity)

		err = coordinator.RequestIdentitySelection("")
		require.ErrorIs(t, err, apperror.ErrUnknownIdentity)

		assert.Equal(t, 0, coordinator.Turn())
	})

	t.Run("Rejects selection outside PlayerSelect", func(t *testing.T) {
		coordinator, _ := newTestCoordinator(t, testCatalog)

		err := coordinator.RequestIdentitySelection("cross")

		require.ErrorIs(t, err, apperror.ErrInvalidStateTransition)
		assert.Equal(t, entity.StateMenu, coordinator.State())
	})

	t.Run("Identity before assignment fails", func(t *testing.T) {
		// Given: player selection where nobody has chosen yet
		coordinator, _ := newTestCoordinator(t, testCatalog)

		_, err := coordinator.CurrentIdentity()
		require.ErrorIs(t, err, apperror.ErrIdentityNotAssigned)

		require.NoError(t, coordinator.RequestStartGame(3, 2))
		require.NoError(t, coordinator.RequestIdentitySelection("cross"))

		// Then: player 1 has no identity yet
		_, err = coordinator.CurrentIdentity()
		require.ErrorIs(t, err, apperror.ErrIdentityNotAssigned)

		_, err = coordinator.Identity(7)
		require.ErrorIs(t, err, apperror.ErrIdentityNotAssigned)
	})
}

func TestGameCoordinator_RequestClaim(t *testing.T) {
	t.Run("Claim is rejected while in the menu", func(t *testing.T) {
		coordinator, rec := newTestCoordinator(t, testCatalog)

		_, err := coordinator.RequestClaim(0, 0)

		require.ErrorIs(t, err, apperror.ErrInvalidStateTransition)
		assert.Equal(t, entity.StateMenu, coordinator.State())
		assert.Empty(t, rec.claims)
	})

	t.Run("Turns alternate 0,1,0,1", func(t *testing.T) {
		coordinator, _ := newTestCoordinator(t, testCatalog)
		startPlaying(t, coordinator, 3, "cross", "circle")

		turns := []int{coordinator.Turn()}
		for _, move := range [][2]int{{0, 0}, {1, 1}, {0, 1}} {
			outcome, err := coordinator.RequestClaim(move[0], move[1])
			require.NoError(t, err)
			require.Equal(t, entity.OutcomeContinue, outcome)
			turns = append(turns, coordinator.Turn())
		}

		assert.Equal(t, []int{0, 1, 0, 1}, turns)
	})

	t.Run("Occupied tile keeps the turn", func(t *testing.T) {
		coordinator, rec := newTestCoordinator(t, testCatalog)
		startPlaying(t, coordinator, 3, "cross", "circle")
		_, err := coordinator.RequestClaim(1, 1)
		require.NoError(t, err)

		_, err = coordinator.RequestClaim(1, 1)

		require.ErrorIs(t, err, apperror.ErrTileOccupied)
		assert.Equal(t, 1, coordinator.Turn())
		assert.Len(t, rec.claims, 1)
	})

	t.Run("Out of bounds keeps the turn", func(t *testing.T) {
		coordinator, _ := newTestCoordinator(t, testCatalog)
		startPlaying(t, coordinator, 3, "cross", "circle")

		_, err := coordinator.RequestClaim(3, 3)

		require.ErrorIs(t, err, apperror.ErrOutOfBounds)
		assert.Equal(t, 0, coordinator.Turn())
		assert.Empty(t, coordinator.Snapshot().Moves)
	})

	t.Run("Win ends the round and publishes the match", func(t *testing.T) {
		// Given: a game where player 0 is about to complete the top row
		coordinator, rec := newTestCoordinator(t, testCatalog)
		startPlaying(t, coordinator, 3, "cross", "circle")
		for _, move := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			_, err := coordinator.RequestClaim(move[0], move[1])
			require.NoError(t, err)
		}

		// When: player 0 claims the last tile of the row
		outcome, err := coordinator.RequestClaim(0, 2)

		// Then: player 0 wins
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeWin, outcome)
		assert.Equal(t, entity.StatePlayerWon, coordinator.State())
		assert.Equal(t, 0, coordinator.Winner())

		text, err := coordinator.ResultText()
		require.NoError(t, err)
		assert.Equal(t, "Player 1 wins!", text)

		// Then: the match record carries the full move log
		require.Len(t, rec.matches, 1)
		match := rec.matches[0]
		assert.Equal(t, coordinator.MatchID(), match.ID)
		assert.Equal(t, entity.OutcomeWin, match.Outcome)
		assert.Equal(t, 0, match.Winner)
		assert.Equal(t, "cross", match.WinnerIdentity())
		assert.Len(t, match.Moves, 5)
		assert.Equal(t, entity.Move{Row: 0, Column: 2, PlayerID: 0}, match.Moves[4])

		// Then: the last claim event carries the outcome
		assert.Equal(t, claimEvent{Row: 0, Column: 2, PlayerID: 0, Outcome: entity.OutcomeWin}, rec.claims[len(rec.claims)-1])
		assert.Equal(t, entity.StatePlayerWon, rec.states[len(rec.states)-1])

		// Then: further claims and turn changes are rejected
		_, err = coordinator.RequestClaim(2, 2)
		require.ErrorIs(t, err, apperror.ErrInvalidStateTransition)
		require.ErrorIs(t, coordinator.NextTurn(), apperror.ErrInvalidStateTransition)
		assert.Equal(t, 0, coordinator.Turn())
	})

	t.Run("Draw ends the round once", func(t *testing.T) {
		coordinator, rec := newTestCoordinator(t, testCatalog)
		startPlaying(t, coordinator, 3, "cross", "circle")

		// alternating turns produce
		//   0 1 0
		//   0 1 1
		//   1 0 0
		moves := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 0}, {2, 2}}
		var outcomes []entity.Outcome
		for _, move := range moves {
			outcome, err := coordinator.RequestClaim(move[0], move[1])
			require.NoError(t, err)
			outcomes = append(outcomes, outcome)
		}

		assert.Equal(t, entity.OutcomeDraw, outcomes[8])
		assert.Equal(t, entity.StateDraw, coordinator.State())
		assert.Equal(t, entity.NoPlayer, coordinator.Winner())
		require.Len(t, rec.matches, 1)
		assert.True(t, rec.matches[0].IsDraw())

		text, err := coordinator.ResultText()
		require.NoError(t, err)
		assert.Equal(t, "It's a draw!", text)
	})
}

func TestGameCoordinator_NextTurn(t *testing.T) {
	t.Run("Cycles through three players", func(t *testing.T) {
		coordinator, _ := newTestCoordinator(t, testCatalog)
		startPlaying(t, coordinator, 4, "cross", "circle", "triangle")

		var turns []int
		for i := 0; i < 6; i++ {
			require.NoError(t, coordinator.NextTurn())
			turns = append(turns, coordinator.Turn())
		}

		assert.Equal(t, []int{1, 2, 0, 1, 2, 0}, turns)
	})

	t.Run("Rejected outside Playing", func(t *testing.T) {
		coordinator, rec := newTestCoordinator(t, testCatalog)

		err := coordinator.NextTurn()

		require.ErrorIs(t, err, apperror.ErrInvalidStateTransition)
		assert.Equal(t, 0, coordinator.Turn())
		assert.Empty(t, rec.turns)
	})
}

func TestGameCoordinator_Retry(t *testing.T) {
	// Given: a round won by player 1
	coordinator, rec := newTestCoordinator(t, testCatalog)
	startPlaying(t, coordinator, 3, "cross", "circle")
	for _, move := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 2}, {1, 2}} {
		_, err := coordinator.RequestClaim(move[0], move[1])
		require.NoError(t, err)
	}
	require.Equal(t, entity.StatePlayerWon, coordinator.State())
	require.Equal(t, 1, coordinator.Winner())
	firstMatch := coordinator.MatchID()

	// When: the players retry
	err := coordinator.RequestRetry()

	// Then: a fresh round starts with player 0 and the same identities
	require.NoError(t, err)
	assert.Equal(t, entity.StatePlaying, coordinator.State())
	assert.Equal(t, 0, coordinator.Turn())
	assert.Equal(t, entity.NoPlayer, coordinator.Winner())
	assert.NotEqual(t, firstMatch, coordinator.MatchID())
	assert.Equal(t, 0, rec.turns[len(rec.turns)-1])

	snapshot := coordinator.Snapshot()
	assert.Empty(t, snapshot.Moves)
	assert.Equal(t, []string{"cross", "circle"}, snapshot.Identities)
	for _, row := range snapshot.Grid {
		for _, owner := range row {
			assert.Equal(t, entity.NoPlayer, owner)
		}
	}

	// Then: retry is not allowed while playing
	require.ErrorIs(t, coordinator.RequestRetry(), apperror.ErrInvalidStateTransition)
}

func TestGameCoordinator_MainMenu(t *testing.T) {
	t.Run("Returns to the menu from a finished round", func(t *testing.T) {
		coordinator, rec := newTestCoordinator(t, testCatalog)
		startPlaying(t, coordinator, 1, "cross", "circle")
		_, err := coordinator.RequestClaim(0, 0)
		require.NoError(t, err)
		require.Equal(t, entity.StatePlayerWon, coordinator.State())

		require.NoError(t, coordinator.RequestMainMenu())

		assert.Equal(t, entity.StateMenu, coordinator.State())
		assert.Equal(t, entity.StateMenu, rec.states[len(rec.states)-1])
		_, err = coordinator.CurrentIdentity()
		require.ErrorIs(t, err, apperror.ErrIdentityNotAssigned)

		// Then: a new game can be started with different players
		require.NoError(t, coordinator.RequestStartGame(3, 3))
	})

	t.Run("Abandons player selection", func(t *testing.T) {
		// Given: player 0 already picked an identity
		coordinator, rec := newTestCoordinator(t, testCatalog)
		require.NoError(t, coordinator.RequestStartGame(3, 2))
		require.NoError(t, coordinator.RequestIdentitySelection("cross"))

		// When: the players go back to the menu
		err := coordinator.RequestMainMenu()

		// Then: the menu is shown and the selection is forgotten
		require.NoError(t, err)
		assert.Equal(t, entity.StateMenu, coordinator.State())
		assert.Equal(t, entity.StateMenu, rec.states[len(rec.states)-1])
		assert.Zero(t, coordinator.NumPlayers())
		_, err = coordinator.Identity(0)
		require.ErrorIs(t, err, apperror.ErrIdentityNotAssigned)

		// Then: cross can be picked again in the next game
		require.NoError(t, coordinator.RequestStartGame(3, 2))
		require.NoError(t, coordinator.RequestIdentitySelection("cross"))
	})

	t.Run("Abandons a round in progress", func(t *testing.T) {
		// Given: a round with two moves made and player 0 to move
		coordinator, rec := newTestCoordinator(t, testCatalog)
		startPlaying(t, coordinator, 3, "cross", "circle")
		firstMatch := coordinator.MatchID()
		_, err := coordinator.RequestClaim(0, 0)
		require.NoError(t, err)
		_, err = coordinator.RequestClaim(1, 1)
		require.NoError(t, err)

		// When: the players go back to the menu
		require.NoError(t, coordinator.RequestMainMenu())

		// Then: nothing of the round is left and no match was finished
		assert.Equal(t, entity.StateMenu, coordinator.State())
		assert.Empty(t, coordinator.MatchID())
		assert.Empty(t, coordinator.Snapshot().Identities)
		assert.Empty(t, rec.matches)

		_, err = coordinator.RequestClaim(2, 2)
		require.ErrorIs(t, err, apperror.ErrInvalidStateTransition)

		// When: a new game is started with other identities
		require.NoError(t, coordinator.RequestStartGame(3, 2))

		// Then: selection starts at player 0 with identities cleared
		assert.Equal(t, 0, coordinator.Turn())
		_, err = coordinator.CurrentIdentity()
		require.ErrorIs(t, err, apperror.ErrIdentityNotAssigned)

		require.NoError(t, coordinator.RequestIdentitySelection("triangle"))
		require.NoError(t, coordinator.RequestIdentitySelection("circle"))

		// Then: the new round begins at turn 0 on an empty board
		assert.Equal(t, entity.StatePlaying, coordinator.State())
		assert.Equal(t, 0, coordinator.Turn())
		assert.NotEqual(t, firstMatch, coordinator.MatchID())
		assert.Equal(t, []string{"triangle", "circle"}, coordinator.Snapshot().Identities)
		assert.Empty(t, coordinator.Snapshot().Moves)

		identity, err := coordinator.CurrentIdentity()
		require.NoError(t, err)
		assert.Equal(t, "triangle", identity)
	})

	t.Run("Rejected while already in the menu", func(t *testing.T) {
		coordinator, _ := newTestCoordinator(t, testCatalog)

		err := coordinator.RequestMainMenu()

		require.ErrorIs(t, err, apperror.ErrInvalidStateTransition)
	})
}

func TestGameCoordinator_ResultTextOutsideTerminal(t *testing.T) {
	coordinator, _ := newTestCoordinator(t, testCatalog)

	_, err := coordinator.ResultText()

	require.ErrorIs(t, err, apperror.ErrInvalidStateTransition)
}

func TestObservers_FanOut(t *testing.T) {
	first, second := &recorder{}, &recorder{}
	observers := Observers{first, second}

	observers.StateChanged(entity.StatePlaying)
	observers.TurnChanged(1)
	observers.TileClaimed(0, 1, 1, entity.OutcomeContinue)
	observers.MatchFinished(&entity.MatchRecord{ID: "m"})

	for i, rec := range []*recorder{first, second} {
		t.Run(fmt.Sprintf("observer %d", i), func(t *testing.T) {
			assert.Equal(t, []entity.GameState{entity.StatePlaying}, rec.states)
			assert.Equal(t, []int{1}, rec.turns)
			assert.Len(t, rec.claims, 1)
			assert.Len(t, rec.matches, 1)
		})
	}
}
