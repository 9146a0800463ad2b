package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

type TileState int

const (
	TileEmpty TileState = iota
	TileFilled
)

func (that TileState) String() string {
	if that == TileFilled {
		return "filled"
	}
	return "empty"
}

// Tile is a single cell of the board. Its owner is meaningful only while the tile is filled.
type Tile struct {
	row    int
	column int
	state  TileState
	owner  int
}

func NewTile(row, column int) *Tile {
	return &Tile{
		row:    row,
		column: column,
		state:  TileEmpty,
		owner:  NoPlayer,
	}
}

// Claim - marks the tile as filled by the given player.
func (that *Tile) Claim(playerID int) error {
	if !that.IsEmpty() {
		return fmt.Errorf("%w: row %d column %d", apperror.ErrAlreadyClaimed, that.row, that.column)
	}

	that.state = TileFilled
	that.owner = playerID

	return nil
}

func (that *Tile) Reset() {
	that.state = TileEmpty
	that.owner = NoPlayer
}

func (that *Tile) IsEmpty() bool {
	return that.state == TileEmpty
}

// OwnedBy reports whether the tile is filled and belongs to playerID.
func (that *Tile) OwnedBy(playerID int) bool {
	return that.state == TileFilled && that.owner == playerID
}

func (that *Tile) Row() int {
	return that.row
}

func (that *Tile) Column() int {
	return that.column
}

func (that *Tile) State() TileState {
	return that.state
}

// Owner returns NoPlayer for an empty tile.
func (that *Tile) Owner() int {
	return that.owner
}
