package websocket

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// session is one connection and the game it drives. It observes its own coordinator and
// forwards every notification to the client.
type session struct {
	ctx         context.Context //nolint:containedctx // observer callbacks carry no context
	logger      *slog.Logger
	conn        *websocket.Conn
	coordinator *usecase.GameCoordinator

	// first write failure; the read loop stops once it is set.
	err error
}

func (that *session) send(action string, payload any) {
	if that.err != nil {
		return
	}

	if err := wsjson.Write(that.ctx, that.conn, outMessage{Action: action, Payload: payload}); err != nil {
		that.err = fmt.Errorf("failed to write %s: %w", action, err)
	}
}

func (that *session) sendError(action string, err error) {
	that.logger.Debug("request rejected", "action", action, "error", err)

	that.send(actionError, ErrorPayload{Action: action, Error: err.Error()})
}

func (that *session) StateChanged(state entity.GameState) {
	that.send(actionStateChanged, StateChangedPayload{State: state})
}

func (that *session) TurnChanged(playerID int) {
	payload := TurnChangedPayload{Player: playerID}

	// identities are only known once selection is over for this player
	if identity, err := that.coordinator.Identity(playerID); err == nil {
		payload.Identity = identity
	}

	that.send(actionTurnChanged, payload)
}

func (that *session) TileClaimed(row, column, playerID int, outcome entity.Outcome) {
	that.send(actionTileClaimed, TileClaimedPayload{
		Row:     row,
		Column:  column,
		Player:  playerID,
		Outcome: outcome,
	})
}

func (that *session) MatchFinished(match *entity.MatchRecord) {
	result, err := that.coordinator.ResultText()
	if err != nil {
		that.logger.Error("failed to build result text", "error", err)
	}

	that.send(actionMatchFinished, MatchFinishedPayload{Match: match, Result: result})
}
