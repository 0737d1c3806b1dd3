package ws

import (
	"encoding/json"

	"github.com/lk16/flippy/versus/internal/models"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

// Outgoing is the reply to an Incoming message with the same ID. Exactly one of Data and Error is set.
type Outgoing struct {
	ID    int    `json:"id"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type GameRequest struct {
	GameID string `json:"game_id"`
}

type MoveRequest struct {
	GameID string `json:"game_id"`
	models.MoveRequest
}

type HintRequest struct {
	GameID string `json:"game_id"`
	Depth  int    `json:"depth"`
}
