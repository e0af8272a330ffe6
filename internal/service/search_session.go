package service

import (
	"context"
	"fmt"

	"github.com/Raymond9734/customer360-backend/internal/models"
)

// SessionState is the state of an agent's search box
type SessionState string

// Session state constants
const (
	SessionIdle     SessionState = "idle"
	SessionTyping   SessionState = "typing"
	SessionSelected SessionState = "selected"
)

// SelectionFunc receives the customer chosen in a session together with the
// label that replaced the query text
type SelectionFunc func(ctx context.Context, customer *models.Customer, label string) error

// SearchSession tracks one agent's search box. It is owned by a single
// goroutine; each Type call replaces the previous suggestions.
type SearchSession struct {
	customers []models.Customer
	labels    LabelService
	onSelect  SelectionFunc

	state       SessionState
	query       string
	suggestions []models.Customer
	selected    *models.Customer
}

// NewSearchSession creates an idle session over customers. onSelect may be nil.
func NewSearchSession(customers []models.Customer, labels LabelService, onSelect SelectionFunc) *SearchSession {
	return &SearchSession{
		customers:   customers,
		labels:      labels,
		onSelect:    onSelect,
		state:       SessionIdle,
		suggestions: []models.Customer{},
	}
}

// Type records an edit of the query text and recomputes the suggestions.
// Any earlier selection is dropped.
func (s *SearchSession) Type(query string) []models.Customer {
	s.query = query
	s.selected = nil

	matches, active := MatchCustomers(query, s.customers)
	s.suggestions = matches
	if active {
		s.state = SessionTyping
	} else {
		s.state = SessionIdle
	}

	return s.suggestions
}

// Select picks a customer from the current suggestions, replaces the query
// with the rendered label, hides the suggestions and invokes the selection
// callback. The session stays Selected even if the callback fails.
func (s *SearchSession) Select(ctx context.Context, customerID string) (*models.Customer, error) {
	var chosen *models.Customer
	for i := range s.suggestions {
		if s.suggestions[i].ID == customerID {
			chosen = &s.suggestions[i]
			break
		}
	}
	if chosen == nil {
		return nil, models.ErrNotFoundWithMsg(
			fmt.Sprintf("customer %s is not among the current suggestions", customerID),
		)
	}

	label, err := s.labels.Render(chosen)
	if err != nil {
		return nil, fmt.Errorf("failed to render label: %w", err)
	}

	s.selected = chosen
	s.query = label
	s.suggestions = []models.Customer{}
	s.state = SessionSelected

	if s.onSelect != nil {
		if err := s.onSelect(ctx, chosen, label); err != nil {
			return chosen, fmt.Errorf("selection callback failed: %w", err)
		}
	}

	return chosen, nil
}

// Clear resets the session to Idle
func (s *SearchSession) Clear() {
	s.query = ""
	s.selected = nil
	s.suggestions = []models.Customer{}
	s.state = SessionIdle
}

// State returns the current state
func (s *SearchSession) State() SessionState {
	return s.state
}

// Query returns the text currently in the search box
func (s *SearchSession) Query() string {
	return s.query
}

// Suggestions returns the visible suggestions; empty unless Typing
func (s *SearchSession) Suggestions() []models.Customer {
	return s.suggestions
}

// Selected returns the chosen customer, or nil unless Selected
func (s *SearchSession) Selected() *models.Customer {
	return s.selected
}
