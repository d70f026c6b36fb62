package server

import "github.com/durakfree/durak-server-go/internal/game"

// Client-to-server action types. Each maps onto exactly one engine
// reducer; the transport adds no rules of its own.
const (
	actionJoin    = "join"
	actionLeave   = "leave"
	actionStart   = "start"
	actionRestart = "restart"
	actionAttack  = "attack"
	actionDefend  = "defend"
	actionAttach  = "attach"
	actionTake    = "take"
	actionBito    = "bito"
	actionPass    = "pass"
)

// actionMessage is a command sent by a client over the websocket.
type actionMessage struct {
	Type string `json:"type"`
	// Name is the display name, used by join.
	Name string `json:"name,omitempty"`
	// HandIndex addresses a card in the sender's hand.
	HandIndex int `json:"handIndex,omitempty"`
	// Slot is the attack slot for defend, the defense slot for attach.
	Slot int `json:"slot,omitempty"`
	// Seed drives the shuffle on start; zero means "pick one".
	Seed int64 `json:"seed,omitempty"`
}

// welcomeMessage tells a freshly connected client its player id.
type welcomeMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

// stateMessage carries a committed snapshot to every client.
type stateMessage struct {
	Type     string          `json:"type"`
	Checksum string          `json:"checksum,omitempty"`
	State    *game.GameState `json:"state"`
}

// errorMessage reports a rejected action back to its sender only.
type errorMessage struct {
	Type    string            `json:"type"`
	Code    game.ErrorCode    `json:"code"`
	Reason  string            `json:"reason"`
	Details map[string]string `json:"details,omitempty"`
}
