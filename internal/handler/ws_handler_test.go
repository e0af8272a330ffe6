package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customer360-backend/internal/models"
	"github.com/Raymond9734/customer360-backend/internal/service"
)

func dialSearch(t *testing.T, srv *httptest.Server, agentID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/search?agent_id=" + agentID

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, frame any) searchReply {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.WriteJSON(frame))

	var reply searchReply
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func TestSearchSocket(t *testing.T) {
	q := &fakeQueue{}
	srv := httptest.NewServer(newTestRouter(t, q, nil))
	defer srv.Close()

	conn := dialSearch(t, srv, "agent-9")

	reply := exchange(t, conn, searchFrame{Type: frameQuery, Query: "o"})
	assert.Equal(t, frameSuggestions, reply.Type)
	assert.Equal(t, service.SessionIdle, reply.State)
	assert.Empty(t, reply.Results)
	require.NotEmpty(t, reply.SessionID)
	sessionID := reply.SessionID

	reply = exchange(t, conn, searchFrame{Type: frameQuery, Query: "orti"})
	assert.Equal(t, service.SessionTyping, reply.State)
	require.Len(t, reply.Results, 2)
	assert.Equal(t, "c-001", reply.Results[0].ID)
	assert.Equal(t, "c-008", reply.Results[1].ID)
	assert.Equal(t, sessionID, reply.SessionID)

	reply = exchange(t, conn, searchFrame{Type: frameSelect, CustomerID: "c-008"})
	assert.Equal(t, frameSelected, reply.Type)
	assert.Equal(t, service.SessionSelected, reply.State)
	assert.Equal(t, "Marcus Ortiz-Lane (BP100888)", reply.Label)
	require.NotNil(t, reply.Customer)
	assert.Equal(t, "BP100888", reply.Customer.BusinessPartnerID)

	events := q.published()
	require.Len(t, events, 1)
	assert.Equal(t, "agent-9", events[0].AgentID)
	assert.Equal(t, "c-008", events[0].CustomerID)
	assert.Equal(t, "Marcus Ortiz-Lane (BP100888)", events[0].Label)

	// Suggestions are hidden after a selection, so a second pick fails
	reply = exchange(t, conn, searchFrame{Type: frameSelect, CustomerID: "c-001"})
	assert.Equal(t, frameError, reply.Type)
	require.NotNil(t, reply.Error)
	assert.Equal(t, models.CodeNotFound, reply.Error.Code)
	assert.Equal(t, service.SessionSelected, reply.State)

	reply = exchange(t, conn, searchFrame{Type: frameClear})
	assert.Equal(t, frameCleared, reply.Type)
	assert.Equal(t, service.SessionIdle, reply.State)

	reply = exchange(t, conn, searchFrame{Type: "shout"})
	assert.Equal(t, frameError, reply.Type)
	assert.Equal(t, models.CodeInvalidInput, reply.Error.Code)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	var bad searchReply
	require.NoError(t, conn.ReadJSON(&bad))
	assert.Equal(t, "INVALID_JSON", bad.Error.Code)
}

func TestSearchSocket_RequiresAgent(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, &fakeQueue{}, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ws/search")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
