package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTile_Claim(t *testing.T) {
	t.Run("Claims an empty tile", func(t *testing.T) {
		// Given: a fresh tile
		tile := NewTile(1, 2)

		// When: player 1 claims it
		err := tile.Claim(1)

		// Then: the tile is filled and owned by player 1
		require.NoError(t, err)
		assert.Equal(t, TileFilled, tile.State())
		assert.Equal(t, 1, tile.Owner())
		assert.False(t, tile.IsEmpty())
		assert.True(t, tile.OwnedBy(1))
		assert.False(t, tile.OwnedBy(0))
	})

	t.Run("Returns ErrAlreadyClaimed on a filled tile", func(t *testing.T) {
		// Given: a tile claimed by player 0
		tile := NewTile(0, 0)
		require.NoError(t, tile.Claim(0))

		// When: player 1 tries to claim it
		err := tile.Claim(1)

		// Then: the claim is rejected and the owner is unchanged
		require.ErrorIs(t, err, apperror.ErrAlreadyClaimed)
		assert.Equal(t, 0, tile.Owner())
	})
}

func TestTile_Reset(t *testing.T) {
	// Given: a claimed tile
	tile := NewTile(2, 1)
	require.NoError(t, tile.Claim(3))

	// When: the tile is reset
	tile.Reset()

	// Then: it is empty, unowned and keeps its coordinates
	assert.True(t, tile.IsEmpty())
	assert.Equal(t, NoPlayer, tile.Owner())
	assert.False(t, tile.OwnedBy(3))
	assert.Equal(t, 2, tile.Row())
	assert.Equal(t, 1, tile.Column())
}

func TestGameState_IsTerminal(t *testing.T) {
	assert.True(t, StatePlayerWon.IsTerminal())
	assert.True(t, StateDraw.IsTerminal())
	assert.False(t, StateMenu.IsTerminal())
	assert.False(t, StatePlayerSelect.IsTerminal())
	assert.False(t, StatePlaying.IsTerminal())
}

func TestGameState_String(t *testing.T) {
	assert.Equal(t, "player_select", StatePlayerSelect.String())
	assert.Equal(t, "GameState(42)", GameState(42).String())
}

func TestGameState_UnmarshalText(t *testing.T) {
	var state GameState

	require.NoError(t, json.Unmarshal([]byte(`"player_won"`), &state))
	assert.Equal(t, StatePlayerWon, state)

	require.Error(t, json.Unmarshal([]byte(`"paused"`), &state))
}

func TestMatchRecord_JSON(t *testing.T) {
	// Given: a drawn match record
	record := MatchRecord{
		ID:         "m1",
		BoardSize:  3,
		Players:    2,
		Identities: []string{"cross", "circle"},
		Moves:      []Move{{Row: 0, Column: 0, PlayerID: 0}},
		Outcome:    OutcomeDraw,
		Winner:     NoPlayer,
	}

	// When: it is encoded
	data, err := json.Marshal(record)
	require.NoError(t, err)

	// Then: the outcome is written by name and moves use snake_case keys
	assert.Contains(t, string(data), `"outcome":"draw"`)
	assert.Contains(t, string(data), `"player_id":0`)

	var decoded MatchRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, OutcomeDraw, decoded.Outcome)
	assert.True(t, decoded.IsDraw())
	assert.Empty(t, decoded.WinnerIdentity())
}

func TestMatchRecord_WinnerIdentity(t *testing.T) {
	record := MatchRecord{Identities: []string{"cross", "circle"}, Outcome: OutcomeWin, Winner: 1}

	assert.Equal(t, "circle", record.WinnerIdentity())
}
