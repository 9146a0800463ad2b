package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Board is a size×size grid of tiles together with the log of moves made on it.
type Board struct {
	size     int
	tiles    [][]*entity.Tile // indexed [row][column]
	moves    []entity.Move
	filled   int
	finished bool
}

func NewBoard(size int) (*Board, error) {
	board := &Board{}
	if err := board.Setup(size); err != nil {
		return nil, err
	}

	return board, nil
}

// Setup - allocates a fresh grid of empty tiles and clears the move log.
func (that *Board) Setup(size int) error {
	if size < 1 {
		return fmt.Errorf("%w: board size %d", apperror.ErrInvalidConfig, size)
	}

	tiles := make([][]*entity.Tile, size)
	for row := range tiles {
		tiles[row] = make([]*entity.Tile, size)
		for column := range tiles[row] {
			tiles[row][column] = entity.NewTile(row, column)
		}
	}

	that.size = size
	that.tiles = tiles
	that.moves = nil
	that.filled = 0
	that.finished = false

	return nil
}

// Reset - empties every tile and clears the move log, keeping the size.
func (that *Board) Reset() {
	for _, row := range that.tiles {
		for _, tile := range row {
			tile.Reset()
		}
	}

	that.moves = nil
	that.filled = 0
	that.finished = false
}

// Claim - fills the tile for playerID and reports whether the claim wins, draws or continues the game.
func (that *Board) Claim(row, column, playerID int) (entity.Outcome, error) {
	if err := that.validateClaim(row, column); err != nil {
		return entity.OutcomeContinue, fmt.Errorf("invalid claim: %w", err)
	}

	if err := that.tiles[row][column].Claim(playerID); err != nil {
		return entity.OutcomeContinue, fmt.Errorf("invalid claim: %w", err)
	}

	that.moves = append(that.moves, entity.Move{Row: row, Column: column, PlayerID: playerID})
	that.filled++

	outcome := that.evaluate(row, column, playerID)
	if outcome != entity.OutcomeContinue {
		that.finished = true
	}

	return outcome, nil
}

// validateClaim - checks if the claim is valid.
func (that *Board) validateClaim(row, column int) error {
	if that.finished {
		return apperror.ErrGameFinished
	}

	if !that.inBounds(row, column) {
		return fmt.Errorf("%w: row %d column %d", apperror.ErrOutOfBounds, row, column)
	}

	if !that.tiles[row][column].IsEmpty() {
		return fmt.Errorf("%w: row %d column %d", apperror.ErrTileOccupied, row, column)
	}

	return nil
}

// evaluate - checks the lines through the claimed tile, then whether the board is full.
func (that *Board) evaluate(row, column, playerID int) entity.Outcome {
	if that.checkWin(row, column, playerID) {
		return entity.OutcomeWin
	}

	if that.IsFull() {
		return entity.OutcomeDraw
	}

	return entity.OutcomeContinue
}

func (that *Board) checkWin(row, column, playerID int) bool {
	if that.checkLine(func(i int) *entity.Tile { return that.tiles[row][i] }, playerID) {
		return true
	}

	if that.checkLine(func(i int) *entity.Tile { return that.tiles[i][column] }, playerID) {
		return true
	}

	// on odd sizes the centre tile lies on both diagonals
	if row == column && that.checkLine(func(i int) *entity.Tile { return that.tiles[i][i] }, playerID) {
		return true
	}

	if row+column == that.size-1 && that.checkLine(func(i int) *entity.Tile { return that.tiles[i][that.size-1-i] }, playerID) {
		return true
	}

	return false
}

// checkLine stops at the first tile that is empty or owned by someone else.
func (that *Board) checkLine(tileAt func(i int) *entity.Tile, playerID int) bool {
	for i := 0; i < that.size; i++ {
		if !tileAt(i).OwnedBy(playerID) {
			return false
		}
	}

	return true
}

func (that *Board) inBounds(row, column int) bool {
	return row >= 0 && row < that.size && column >= 0 && column < that.size
}

func (that *Board) Size() int {
	return that.size
}

// TileAt returns a copy of the tile so callers cannot mutate the board.
func (that *Board) TileAt(row, column int) (entity.Tile, error) {
	if !that.inBounds(row, column) {
		return entity.Tile{}, fmt.Errorf("%w: row %d column %d", apperror.ErrOutOfBounds, row, column)
	}

	return *that.tiles[row][column], nil
}

// Moves returns the move log in chronological order.
func (that *Board) Moves() []entity.Move {
	moves := make([]entity.Move, len(that.moves))
	copy(moves, that.moves)

	return moves
}

func (that *Board) IsFull() bool {
	return that.filled == that.size*that.size
}

func (that *Board) IsFinished() bool {
	return that.finished
}

// Grid returns tile owners indexed [row][column], with NoPlayer for empty tiles.
func (that *Board) Grid() [][]int {
	grid := make([][]int, that.size)
	for row := range that.tiles {
		grid[row] = make([]int, that.size)
		for column, tile := range that.tiles[row] {
			grid[row][column] = tile.Owner()
		}
	}

	return grid
}
