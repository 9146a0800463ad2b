package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// inbound actions.
const (
	actionStart    = "game:start"
	actionIdentity = "game:identity"
	actionClaim    = "game:claim"
	actionRetry    = "game:retry"
	actionMenu     = "game:menu"
	actionState    = "game:state"
)

// outbound actions.
const (
	actionStateChanged  = "state:changed"
	actionTurnChanged   = "turn:changed"
	actionTileClaimed   = "tile:claimed"
	actionMatchFinished = "match:finished"
	actionError         = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type StartPayload struct {
	Size    int `json:"size,omitempty"`
	Players int `json:"players,omitempty"`
}

type IdentityPayload struct {
	Identity string `json:"identity"`
}

type ClaimPayload struct {
	Row    *int `json:"row"`
	Column *int `json:"column"`
}

type StateChangedPayload struct {
	State entity.GameState `json:"state"`
}

type TurnChangedPayload struct {
	Player   int    `json:"player"`
	Identity string `json:"identity,omitempty"`
}

type TileClaimedPayload struct {
	Row     int            `json:"row"`
	Column  int            `json:"column"`
	Player  int            `json:"player"`
	Outcome entity.Outcome `json:"outcome"`
}

type MatchFinishedPayload struct {
	Match  *entity.MatchRecord `json:"match"`
	Result string              `json:"result"`
}

type SnapshotPayload struct {
	Snapshot entity.GameSnapshot `json:"snapshot"`
}

type ErrorPayload struct {
	Action string `json:"action"`
	Error  string `json:"error"`
}

// outMessage is what the server writes; the payload is marshalled in place.
type outMessage struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
}
