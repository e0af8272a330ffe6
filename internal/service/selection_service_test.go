package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customer360-backend/internal/fixture"
	"github.com/Raymond9734/customer360-backend/internal/models"
	"github.com/Raymond9734/customer360-backend/internal/queue"
	"github.com/Raymond9734/customer360-backend/internal/repository"
)

type mockQueue struct {
	mock.Mock
}

func (m *mockQueue) Publish(ctx context.Context, event *models.SelectionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockQueue) Consume(ctx context.Context, handler queue.EventHandler, concurrency int) error {
	args := m.Called(ctx, handler, concurrency)
	return args.Error(0)
}

func (m *mockQueue) Close() error {
	return nil
}

func (m *mockQueue) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSelectionService(t *testing.T, q queue.Client) *selectionService {
	t.Helper()
	ds, err := fixture.LoadEmbedded()
	require.NoError(t, err)

	labels, err := NewLabelService(NewTemplateService(), "")
	require.NoError(t, err)

	svc := NewSelectionService(repository.NewCustomerRepository(ds), labels, q, discardLogger()).(*selectionService)
	svc.now = func() time.Time {
		return time.Date(2026, 10, 1, 9, 30, 0, 0, time.FixedZone("CDT", -5*3600))
	}
	return svc
}

func TestSelectionService_Select(t *testing.T) {
	q := new(mockQueue)
	q.On("Publish", mock.Anything, mock.MatchedBy(func(e *models.SelectionEvent) bool {
		return e.CustomerID == "c-008" &&
			e.BusinessPartnerID == "BP100888" &&
			e.AgentID == "agent-7" &&
			e.Label == "Marcus Ortiz-Lane (BP100888)" &&
			e.ID != "" &&
			e.SelectedAt.Equal(time.Date(2026, 10, 1, 14, 30, 0, 0, time.UTC)) &&
			e.SelectedAt.Location() == time.UTC
	})).Return(nil).Once()

	svc := newTestSelectionService(t, q)

	result, err := svc.Select(context.Background(), &SelectRequest{
		Query:      "orti",
		CustomerID: "c-008",
		AgentID:    "agent-7",
	})
	require.NoError(t, err)

	assert.Equal(t, "Marcus Ortiz-Lane (BP100888)", result.Label)
	assert.Equal(t, SessionSelected, result.State)
	assert.Equal(t, "c-008", result.Customer.ID)
	q.AssertExpectations(t)
}

func TestSelectionService_SelectPublishFailure(t *testing.T) {
	q := new(mockQueue)
	q.On("Publish", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	svc := newTestSelectionService(t, q)

	result, err := svc.Select(context.Background(), &SelectRequest{
		Query:      "javier",
		CustomerID: "c-001",
		AgentID:    "agent-7",
	})
	require.NoError(t, err)
	assert.Equal(t, SessionSelected, result.State)
	assert.Equal(t, "Javier Ortiz (BP100231)", result.Label)
	q.AssertExpectations(t)
}

func TestSelectionService_SelectRejected(t *testing.T) {
	tests := []struct {
		name     string
		req      SelectRequest
		wantCode string
	}{
		{
			name:     "missing customer",
			req:      SelectRequest{Query: "orti", AgentID: "agent-7"},
			wantCode: models.CodeInvalidInput,
		},
		{
			name:     "missing agent",
			req:      SelectRequest{Query: "orti", CustomerID: "c-001"},
			wantCode: models.CodeInvalidInput,
		},
		{
			name:     "query too short",
			req:      SelectRequest{Query: " o ", CustomerID: "c-001", AgentID: "agent-7"},
			wantCode: models.CodeInvalidInput,
		},
		{
			name:     "customer not suggested for query",
			req:      SelectRequest{Query: "chen", CustomerID: "c-001", AgentID: "agent-7"},
			wantCode: models.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(mockQueue)
			svc := newTestSelectionService(t, q)

			_, err := svc.Select(context.Background(), &tt.req)

			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			q.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestSelectionService_NewSession(t *testing.T) {
	q := new(mockQueue)
	var published *models.SelectionEvent
	q.On("Publish", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(1).(*models.SelectionEvent) }).
		Return(nil)

	svc := newTestSelectionService(t, q)

	session, err := svc.NewSession(context.Background(), "agent-3")
	require.NoError(t, err)
	assert.Equal(t, SessionIdle, session.State())

	session.Type("BP2004")
	_, err = session.Select(context.Background(), "c-003")
	require.NoError(t, err)

	require.NotNil(t, published)
	assert.Equal(t, "agent-3", published.AgentID)
	assert.Equal(t, "c-003", published.CustomerID)
	assert.Equal(t, "Priya Raman (BP200410)", published.Label)
}
