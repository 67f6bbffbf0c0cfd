package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/dropfour/internal/connectn"
	"github.com/lk16/dropfour/internal/engine"
	"github.com/lk16/dropfour/internal/models"
	"github.com/lk16/dropfour/internal/repository"
)

// requestSlack is added to the search budget for the storage round trips of a request.
const requestSlack = 2 * time.Second

// Conn is the part of a websocket connection used by Handler.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
}

type Handler struct {
	engine *engine.Engine
	ws     Conn
}

// NewHandler creates a new Handler.
func NewHandler(ws Conn, engine *engine.Engine) *Handler {
	return &Handler{engine: engine, ws: ws}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", string(msg))

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
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

// errBadRequest marks errors that are reported to the client without closing the connection.
var errBadRequest = errors.New("bad request")

func (h *Handler) handleMessage(req *Incoming) (*Outgoing, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	var (
		data any
		err  error
	)

	switch req.Event {
	case EventAnalysisRequest:
		data, err = h.handleAnalysisRequest(req)
	case EventAgentMoveRequest:
		data, err = h.handleAgentMoveRequest(req)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}

	if errors.Is(err, errBadRequest) {
		return &Outgoing{ID: req.ID, Error: err.Error()}, nil
	}

	if err != nil {
		return nil, err
	}

	return &Outgoing{ID: req.ID, Data: data}, nil
}

// Handle handles the websocket connection.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		respData, err := h.handleMessage(req)
		if err != nil {
			return fmt.Errorf("ws handle error: %w", err)
		}

		if err = h.writeMessage(respData); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func (h *Handler) handleAnalysisRequest(req *Incoming) (*models.Analysis, error) {
	var reqData AnalysisRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	reqData.ApplyDefaults()
	if err := reqData.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	budget, err := models.ResolveBudget(reqData.BudgetMs, h.engine.DefaultBudget())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	board, err := connectn.NewBoardFromMoves(reqData.Width, reqData.Height, reqData.WinLength, reqData.Moves)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), budget+requestSlack)
	defer cancel()

	analysis, err := h.engine.Analyze(ctx, board, budget)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze: %w", err)
	}

	return &analysis, nil
}

func (h *Handler) handleAgentMoveRequest(req *Incoming) (*models.AgentMoveResponse, error) {
	var reqData AgentMoveRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	budget, err := models.ResolveBudget(reqData.BudgetMs, h.engine.DefaultBudget())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), budget+requestSlack)
	defer cancel()

	game, board, analysis, err := h.engine.AgentMove(ctx, reqData.GameID, budget)
	if errors.Is(err, repository.ErrGameNotFound) ||
		errors.Is(err, repository.ErrGameConflict) ||
		errors.Is(err, engine.ErrGameFinished) {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to play agent move: %w", err)
	}

	return &models.AgentMoveResponse{
		Game:     models.NewGameResponse(game, board),
		Analysis: analysis,
	}, nil
}
