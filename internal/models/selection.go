package models

import "time"

// SelectionEvent is emitted when an agent picks a customer from search.
// It is the hand-off to whatever loads that customer's 360 view.
type SelectionEvent struct {
	ID                string    `json:"id"`
	CustomerID        string    `json:"customer_id"`
	BusinessPartnerID string    `json:"business_partner_id"`
	AgentID           string    `json:"agent_id"`
	Label             string    `json:"label"`
	SelectedAt        time.Time `json:"selected_at"`
}
