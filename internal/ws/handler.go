package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/lk16/flippy/versus/internal/config"
	"github.com/lk16/flippy/versus/internal/game"
	"github.com/lk16/flippy/versus/internal/models"
	"github.com/lk16/flippy/versus/internal/repository"
)

const storageTimeout = 2 * time.Second

var (
	errUnknownEvent = errors.New("unknown event")
	errClosed       = errors.New("connection closed")
	errMalformed    = errors.New("malformed message")
)

// Conn is the part of a websocket connection used by the handler.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
}

type Handler struct {
	ws            Conn
	controller    *game.Controller
	repos         *repository.Repositories
	searchTimeout time.Duration
}

// NewHandler creates a new Handler.
func NewHandler(ws Conn, controller *game.Controller, repos *repository.Repositories, searchTimeout time.Duration) *Handler {
	return &Handler{
		ws:            ws,
		controller:    controller,
		repos:         repos,
		searchTimeout: searchTimeout,
	}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return nil, errClosed
	}

	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", string(msg))

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformed, err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(req *Incoming) (any, error) {
	switch req.Event {
	case "":
		return nil, errors.New("event field is either empty or missing")
	case "new_game":
		return h.handleNewGame(req.Data)
	case "get_game":
		return h.handleGetGame(req.Data)
	case "move":
		return h.handleMove(req.Data)
	case "hint":
		return h.handleHint(req.Data)
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownEvent, req.Event)
	}
}

// Handle handles the websocket connection until it is closed. Errors caused by a request
// are sent back to the client, only connection errors end the loop.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if errors.Is(err, errClosed) {
			return nil
		}

		if errors.Is(err, errMalformed) {
			if err = h.writeMessage(&Outgoing{Error: err.Error()}); err != nil {
				return fmt.Errorf("ws write error: %w", err)
			}
			continue
		}

		if err != nil {
			return err
		}

		outgoing := &Outgoing{ID: req.ID}

		data, err := h.handleMessage(req)
		if err != nil {
			slog.Debug("ws request failed", "event", req.Event, "error", err)
			outgoing.Error = err.Error()
		} else {
			outgoing.Data = data
		}

		if err = h.writeMessage(outgoing); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid data: %w", err)
	}

	return nil
}

func (h *Handler) loadGame(id string) (*game.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrGameNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	return h.repos.Games.Load(ctx, id)
}

func (h *Handler) saveGame(s *game.Session) error {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if err := h.repos.Games.Save(ctx, s); err != nil {
		return err
	}

	if s.IsFinished() {
		h.repos.RecordResult(ctx, h.controller.Result(s))
	}

	return nil
}

func (h *Handler) gameResponse(s *game.Session) models.GameResponse {
	return models.NewGameResponse(s, h.controller.Engine())
}

func (h *Handler) handleNewGame(data json.RawMessage) (any, error) {
	var reqData models.NewGameRequest
	if err := decode(data, &reqData); err != nil {
		return nil, err
	}

	difficulty, human, err := reqData.Parse()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.searchTimeout)
	defer cancel()

	s, err := h.controller.NewSession(ctx, uuid.NewString(), difficulty, human)
	if err != nil {
		return nil, err
	}

	if err = h.saveGame(s); err != nil {
		return nil, err
	}

	return h.gameResponse(s), nil
}

func (h *Handler) handleGetGame(data json.RawMessage) (any, error) {
	var reqData GameRequest
	if err := decode(data, &reqData); err != nil {
		return nil, err
	}

	s, err := h.loadGame(reqData.GameID)
	if err != nil {
		return nil, err
	}

	return h.gameResponse(s), nil
}

func (h *Handler) handleMove(data json.RawMessage) (any, error) {
	var reqData MoveRequest
	if err := decode(data, &reqData); err != nil {
		return nil, err
	}

	move, err := reqData.Move()
	if err != nil {
		return nil, err
	}

	s, err := h.loadGame(reqData.GameID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.searchTimeout)
	defer cancel()

	if err = h.controller.Play(ctx, s, move); err != nil {
		return nil, err
	}

	if err = h.saveGame(s); err != nil {
		return nil, err
	}

	return h.gameResponse(s), nil
}

func (h *Handler) handleHint(data json.RawMessage) (any, error) {
	var reqData HintRequest
	if err := decode(data, &reqData); err != nil {
		return nil, err
	}

	depth := reqData.Depth
	if depth == 0 {
		depth = config.DefaultHintDepth
	}

	if depth < 1 || depth > config.MaxHintDepth {
		return nil, fmt.Errorf("depth must be between 1 and %d", config.MaxHintDepth)
	}

	s, err := h.loadGame(reqData.GameID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.searchTimeout)
	defer cancel()

	move, found, err := h.controller.Hint(ctx, s, depth)
	if err != nil {
		return nil, err
	}

	return models.NewHintResponse(move, found), nil
}
