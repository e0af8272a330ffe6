package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Raymond9734/customer360-backend/internal/models"
	"github.com/Raymond9734/customer360-backend/internal/service"
)

// Frame types on the search socket
const (
	frameQuery       = "query"
	frameSelect      = "select"
	frameClear       = "clear"
	frameSuggestions = "suggestions"
	frameSelected    = "selected"
	frameCleared     = "cleared"
	frameError       = "error"
)

const maxFrameBytes = 4096

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type searchFrame struct {
	Type       string `json:"type"`
	Query      string `json:"query,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
}

type searchReply struct {
	Type      string                    `json:"type"`
	SessionID string                    `json:"session_id"`
	State     service.SessionState      `json:"state"`
	Query     string                    `json:"query"`
	Results   []service.CustomerSummary `json:"results,omitempty"`
	Label     string                    `json:"label,omitempty"`
	Customer  *models.Customer          `json:"customer,omitempty"`
	Error     *ErrorDetail              `json:"error,omitempty"`
}

// SearchSocketHandler drives one SearchSession per websocket connection.
// Frames are handled in arrival order, so each reply to a query frame
// supersedes the previous suggestions.
type SearchSocketHandler struct {
	selectionService service.SelectionService
	logger           *slog.Logger
}

// NewSearchSocketHandler creates a new search socket handler
func NewSearchSocketHandler(selectionService service.SelectionService, logger *slog.Logger) *SearchSocketHandler {
	return &SearchSocketHandler{
		selectionService: selectionService,
		logger:           logger,
	}
}

// Serve handles GET /ws/search?agent_id=
func (h *SearchSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	agentID := r.URL.Query().Get("agent_id")
	if agentID == "" {
		respondError(w, http.StatusBadRequest, models.CodeInvalidInput, "agent_id is required")
		return
	}

	session, err := h.selectionService.NewSession(r.Context(), agentID)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameBytes)

	sessionID := uuid.NewString()
	logger := h.logger.With(slog.String("session_id", sessionID), slog.String("agent_id", agentID))
	logger.Info("search session opened")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("search session read failed", slog.String("error", err.Error()))
			}
			logger.Info("search session closed")
			return
		}

		reply := h.handleFrame(r.Context(), session, data)
		reply.SessionID = sessionID

		if err := conn.WriteJSON(reply); err != nil {
			logger.Warn("search session write failed", slog.String("error", err.Error()))
			return
		}
	}
}

func (h *SearchSocketHandler) handleFrame(ctx context.Context, session *service.SearchSession, data []byte) searchReply {
	var frame searchFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return errorReply(session, "INVALID_JSON", "Invalid JSON format")
	}

	switch frame.Type {
	case frameQuery:
		matches := session.Type(frame.Query)
		results := make([]service.CustomerSummary, 0, len(matches))
		for i := range matches {
			results = append(results, service.NewCustomerSummary(&matches[i]))
		}
		return searchReply{
			Type:    frameSuggestions,
			State:   session.State(),
			Query:   session.Query(),
			Results: results,
		}

	case frameSelect:
		customer, err := session.Select(ctx, frame.CustomerID)
		if customer == nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) {
				return errorReply(session, appErr.Code, appErr.Message)
			}
			h.logger.Error("search selection failed", slog.String("error", err.Error()))
			return errorReply(session, "INTERNAL_ERROR", "An unexpected error occurred")
		}
		if err != nil {
			h.logger.Warn("selection event not published",
				slog.String("customer_id", customer.ID),
				slog.String("error", err.Error()),
			)
		}
		return searchReply{
			Type:     frameSelected,
			State:    session.State(),
			Query:    session.Query(),
			Label:    session.Query(),
			Customer: customer,
		}

	case frameClear:
		session.Clear()
		return searchReply{
			Type:  frameCleared,
			State: session.State(),
		}

	default:
		return errorReply(session, models.CodeInvalidInput, "unknown frame type: "+frame.Type)
	}
}

func errorReply(session *service.SearchSession, code, message string) searchReply {
	return searchReply{
		Type:  frameError,
		State: session.State(),
		Query: session.Query(),
		Error: &ErrorDetail{Code: code, Message: message},
	}
}
