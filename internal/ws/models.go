package ws

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lk16/dropfour/internal/models"
)

const (
	EventAnalysisRequest  = "analysis_request"
	EventAgentMoveRequest = "agent_move_request"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

type Outgoing struct {
	ID    int    `json:"id"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type AnalysisRequest = models.AnalyzeRequest

type AgentMoveRequest struct {
	GameID   uuid.UUID `json:"game_id"`
	BudgetMs int       `json:"budget_ms"`
}
