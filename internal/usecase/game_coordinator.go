package usecase

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const minPlayers = 2

// Default caps applied when Limits leaves a field at zero.
const (
	DefaultMaxBoardSize = 64
	DefaultMaxPlayers   = 16
)

// Limits bounds what a start request may ask for.
type Limits struct {
	MaxBoardSize int
	MaxPlayers   int
}

func (that Limits) withDefaults() Limits {
	if that.MaxBoardSize <= 0 {
		that.MaxBoardSize = DefaultMaxBoardSize
	}

	if that.MaxPlayers <= 0 {
		that.MaxPlayers = DefaultMaxPlayers
	}

	return that
}

// GameCoordinator drives one game: screen state, turn order, identity selection and
// routing of tile claims to the board. It is not safe for concurrent use; callers
// serialise requests per coordinator.
type GameCoordinator struct {
	logger   *slog.Logger
	observer Observer
	board    *tictactoe.Board
	catalog  []string
	limits   Limits

	state      entity.GameState
	turn       int
	numPlayers int
	boardSize  int
	identities []string
	matchID    string
	winner     int
}

// NewGameCoordinator - creates a coordinator in the Menu state. An empty catalog accepts any
// non-empty identity; zero limits fall back to the defaults.
func NewGameCoordinator(logger *slog.Logger, board *tictactoe.Board, catalog []string, limits Limits, observer Observer) *GameCoordinator {
	if observer == nil {
		observer = Observers{}
	}

	return &GameCoordinator{
		logger:   logger.With("component", "coordinator"),
		observer: observer,
		board:    board,
		catalog:  slices.Clone(catalog),
		limits:   limits.withDefaults(),

		state:  entity.StateMenu,
		winner: entity.NoPlayer,
	}
}

// RequestStartGame - leaves the menu and starts identity selection for numPlayers players.
func (that *GameCoordinator) RequestStartGame(size, numPlayers int) error {
	if err := that.requireState("start a game", entity.StateMenu); err != nil {
		return err
	}

	if size < 1 || size > that.limits.MaxBoardSize {
		return fmt.Errorf("%w: board size %d, allowed 1..%d", apperror.ErrInvalidConfig, size, that.limits.MaxBoardSize)
	}

	if numPlayers < minPlayers || numPlayers > that.limits.MaxPlayers {
		return fmt.Errorf("%w: %d players, allowed %d..%d", apperror.ErrInvalidConfig, numPlayers, minPlayers, that.limits.MaxPlayers)
	}

	if len(that.catalog) > 0 && numPlayers > len(that.catalog) {
		return fmt.Errorf("%w: %d players but only %d identities", apperror.ErrInvalidConfig, numPlayers, len(that.catalog))
	}

	that.boardSize = size
	that.numPlayers = numPlayers
	that.identities = make([]string, numPlayers)
	that.turn = 0

	that.logger.Info("player selection started", "size", size, "players", numPlayers)

	that.setState(entity.StatePlayerSelect)
	that.observer.TurnChanged(that.turn)

	return nil
}

// RequestIdentitySelection - assigns identity to the current player and moves on to the next
// one. The round starts once every player has chosen.
func (that *GameCoordinator) RequestIdentitySelection(identity string) error {
	if err := that.requireState("select an identity", entity.StatePlayerSelect); err != nil {
		return err
	}

	if err := that.validateIdentity(identity); err != nil {
		return err
	}

	that.identities[that.turn] = identity
	that.logger.Info("identity selected", "player", that.turn, "identity", identity)

	if that.turn < that.numPlayers-1 {
		that.advanceTurn()
		return nil
	}

	return that.startRound()
}

func (that *GameCoordinator) validateIdentity(identity string) error {
	if identity == "" {
		return fmt.Errorf("%w: empty identity", apperror.ErrUnknownIdentity)
	}

	if len(that.catalog) > 0 && !slices.Contains(that.catalog, identity) {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownIdentity, identity)
	}

	if owner := slices.Index(that.identities, identity); owner >= 0 {
		return fmt.Errorf("%w: %q belongs to player %d", apperror.ErrIdentityTaken, identity, owner)
	}

	return nil
}

// startRound - sets up the board and hands the first turn to player 0.
func (that *GameCoordinator) startRound() error {
	if err := that.board.Setup(that.boardSize); err != nil {
		return fmt.Errorf("failed to set up board: %w", err)
	}

	that.beginPlaying()

	return nil
}

// RequestClaim - claims the tile for the player whose turn it is.
func (that *GameCoordinator) RequestClaim(row, column int) (entity.Outcome, error) {
	if err := that.requireState("claim a tile", entity.StatePlaying); err != nil {
		return entity.OutcomeContinue, err
	}

	playerID := that.turn

	outcome, err := that.board.Claim(row, column, playerID)
	if err != nil {
		return entity.OutcomeContinue, fmt.Errorf("player %d: %w", playerID, err)
	}

	that.observer.TileClaimed(row, column, playerID, outcome)

	switch outcome {
	case entity.OutcomeWin:
		that.winner = playerID
		that.finishRound(entity.StatePlayerWon, outcome)
	case entity.OutcomeDraw:
		that.winner = entity.NoPlayer
		that.finishRound(entity.StateDraw, outcome)
	default:
		that.advanceTurn()
	}

	return outcome, nil
}

// NextTurn - hands the turn to the next player. Only allowed while playing.
func (that *GameCoordinator) NextTurn() error {
	if err := that.requireState("advance the turn", entity.StatePlaying); err != nil {
		return err
	}

	that.advanceTurn()

	return nil
}

// RequestRetry - replays with the same board size and identities.
func (that *GameCoordinator) RequestRetry() error {
	if !that.state.IsTerminal() {
		return fmt.Errorf("%w: cannot retry in state %s", apperror.ErrInvalidStateTransition, that.state)
	}

	that.board.Reset()
	that.beginPlaying()

	return nil
}

// RequestMainMenu - abandons whatever is in progress and returns to the menu.
func (that *GameCoordinator) RequestMainMenu() error {
	if that.state == entity.StateMenu {
		return fmt.Errorf("%w: already in state %s", apperror.ErrInvalidStateTransition, that.state)
	}

	that.turn = 0
	that.numPlayers = 0
	that.identities = nil
	that.matchID = ""
	that.winner = entity.NoPlayer

	that.setState(entity.StateMenu)

	return nil
}

// CurrentIdentity returns the identity of the player whose turn it is.
func (that *GameCoordinator) CurrentIdentity() (string, error) {
	return that.Identity(that.turn)
}

func (that *GameCoordinator) Identity(playerID int) (string, error) {
	if playerID < 0 || playerID >= len(that.identities) || that.identities[playerID] == "" {
		return "", fmt.Errorf("%w: player %d", apperror.ErrIdentityNotAssigned, playerID)
	}

	return that.identities[playerID], nil
}

// ResultText returns the game over message for a finished round.
func (that *GameCoordinator) ResultText() (string, error) {
	switch that.state {
	case entity.StatePlayerWon:
		return fmt.Sprintf("Player %d wins!", that.winner+1), nil
	case entity.StateDraw:
		return "It's a draw!", nil
	default:
		return "", fmt.Errorf("%w: no result in state %s", apperror.ErrInvalidStateTransition, that.state)
	}
}

func (that *GameCoordinator) State() entity.GameState {
	return that.state
}

func (that *GameCoordinator) Turn() int {
	return that.turn
}

func (that *GameCoordinator) NumPlayers() int {
	return that.numPlayers
}

// Winner returns NoPlayer unless the last round was won.
func (that *GameCoordinator) Winner() int {
	return that.winner
}

func (that *GameCoordinator) MatchID() string {
	return that.matchID
}

// Snapshot returns a copy of the coordinator and board state.
func (that *GameCoordinator) Snapshot() entity.GameSnapshot {
	snapshot := entity.GameSnapshot{
		MatchID:    that.matchID,
		State:      that.state,
		Turn:       that.turn,
		Players:    that.numPlayers,
		BoardSize:  that.boardSize,
		Identities: slices.Clone(that.identities),
		Winner:     that.winner,
	}

	if that.state == entity.StatePlaying || that.state.IsTerminal() {
		snapshot.Grid = that.board.Grid()
		snapshot.Moves = that.board.Moves()
	}

	return snapshot
}

func (that *GameCoordinator) beginPlaying() {
	that.turn = 0
	that.winner = entity.NoPlayer
	that.matchID = uuid.NewString()

	that.logger.Info("round started", "matchID", that.matchID, "size", that.boardSize, "players", that.numPlayers)

	that.setState(entity.StatePlaying)
	that.observer.TurnChanged(that.turn)
}

func (that *GameCoordinator) finishRound(state entity.GameState, outcome entity.Outcome) {
	that.setState(state)

	record := &entity.MatchRecord{
		ID:         that.matchID,
		BoardSize:  that.board.Size(),
		Players:    that.numPlayers,
		Identities: slices.Clone(that.identities),
		Moves:      that.board.Moves(),
		Outcome:    outcome,
		Winner:     that.winner,
		FinishedAt: time.Now().UTC(),
	}

	that.logger.Info("round finished", "matchID", record.ID, "outcome", outcome, "winner", record.Winner)

	that.observer.MatchFinished(record)
}

func (that *GameCoordinator) advanceTurn() {
	that.turn = (that.turn + 1) % that.numPlayers

	that.logger.Debug(fmt.Sprintf("Player %d's turn", that.turn+1))

	that.observer.TurnChanged(that.turn)
}

func (that *GameCoordinator) setState(state entity.GameState) {
	that.logger.Debug("state changed", "from", that.state, "to", state)

	that.state = state
	that.observer.StateChanged(state)
}

func (that *GameCoordinator) requireState(action string, want entity.GameState) error {
	if that.state != want {
		return fmt.Errorf("%w: cannot %s in state %s", apperror.ErrInvalidStateTransition, action, that.state)
	}

	return nil
}
