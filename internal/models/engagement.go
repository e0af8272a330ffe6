package models

import "time"

// CaseStatus is the workflow status of a service case
type CaseStatus string

// Case status constants
const (
	CaseStatusOpen       CaseStatus = "open"
	CaseStatusInProgress CaseStatus = "in_progress"
	CaseStatusResolved   CaseStatus = "resolved"
	CaseStatusClosed     CaseStatus = "closed"
)

// ProgramStatus is the availability of an opportunity program
type ProgramStatus string

// Program status constants
const (
	ProgramStatusActive ProgramStatus = "active"
	ProgramStatusPilot  ProgramStatus = "pilot"
	ProgramStatusClosed ProgramStatus = "closed"
)

// EligibilityStatus is where a customer stands with respect to a program
type EligibilityStatus string

// Eligibility status constants
const (
	EligibilityEligible EligibilityStatus = "eligible"
	EligibilityEnrolled EligibilityStatus = "enrolled"
	EligibilityDeclined EligibilityStatus = "declined"
)

// Interaction is a logged contact between an agent and a customer
type Interaction struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Channel    string    `json:"channel"`
	Reason     string    `json:"reason"`
	Notes      string    `json:"notes"`
	AgentID    string    `json:"agent_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Case is a service request or complaint tracked for a customer
type Case struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Title      string     `json:"title"`
	Priority   string     `json:"priority"`
	Status     CaseStatus `json:"status"`
	OpenedAt   time.Time  `json:"opened_at"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
}

// Program is an opportunity (rebate, efficiency, assistance) offered to customers
type Program struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Segments    []Segment     `json:"segments"`
	Status      ProgramStatus `json:"status"`
}

// Eligibility links a customer to a program
type Eligibility struct {
	ProgramID  string            `json:"program_id"`
	CustomerID string            `json:"customer_id"`
	Status     EligibilityStatus `json:"status"`
	Reason     string            `json:"reason"`
}

// IsOpen reports whether the case still needs work
func (c *Case) IsOpen() bool {
	return c.Status == CaseStatusOpen || c.Status == CaseStatusInProgress
}
