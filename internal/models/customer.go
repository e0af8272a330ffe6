package models

import "fmt"

// Segment classifies a customer for rate and program purposes
type Segment string

// Customer segment constants
const (
	SegmentResidential Segment = "residential"
	SegmentCommercial  Segment = "commercial"
	SegmentIndustrial  Segment = "industrial"
)

// CustomerStatus is the lifecycle status of a customer
type CustomerStatus string

// Customer status constants
const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer represents a utility customer as seen by a contact-center agent
type Customer struct {
	ID                string            `json:"id"`
	BusinessPartnerID string            `json:"business_partner_id"`
	FirstName         string            `json:"first_name"`
	LastName          string            `json:"last_name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	Segment           Segment           `json:"segment"`
	Status            CustomerStatus    `json:"status"`
	ContractAccounts  []ContractAccount `json:"contract_accounts"`
	Premises          []Premise         `json:"premises"`
}

// ContractAccount is a billing account held by a customer
type ContractAccount struct {
	AccountNumber string `json:"account_number"`
	ServiceType   string `json:"service_type"`
	BillingCycle  string `json:"billing_cycle"`
}

// Premise is a physical service address
type Premise struct {
	ID            string         `json:"id"`
	Address       string         `json:"address"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	PostalCode    string         `json:"postal_code"`
	ServicePoints []ServicePoint `json:"service_points"`
}

// ServicePoint is a meter or connection point at a premise
type ServicePoint struct {
	ID          string `json:"id"`
	MeterNumber string `json:"meter_number"`
	ServiceType string `json:"service_type"`
	Status      string `json:"status"`
}

// CustomerFilter holds filtering options for the customer directory
type CustomerFilter struct {
	Segment  string
	Status   string
	Page     int
	PageSize int
}

// FullName returns "First Last"
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// AccountNumbers returns the customer's account numbers in order
func (c *Customer) AccountNumbers() []string {
	numbers := make([]string, 0, len(c.ContractAccounts))
	for _, ca := range c.ContractAccounts {
		numbers = append(numbers, ca.AccountNumber)
	}
	return numbers
}

// Validate checks the fields every loaded customer must carry
func (c *Customer) Validate() error {
	if c.ID == "" {
		return ErrInvalidInput("customer id is required")
	}
	if c.BusinessPartnerID == "" {
		return ErrInvalidInput(fmt.Sprintf("customer %s: business_partner_id is required", c.ID))
	}
	if c.FirstName == "" || c.LastName == "" {
		return ErrInvalidInput(fmt.Sprintf("customer %s: first_name and last_name are required", c.ID))
	}
	if !IsValidSegment(c.Segment) {
		return ErrInvalidInput(fmt.Sprintf("customer %s: invalid segment: %s", c.ID, c.Segment))
	}
	if !IsValidCustomerStatus(c.Status) {
		return ErrInvalidInput(fmt.Sprintf("customer %s: invalid status: %s", c.ID, c.Status))
	}
	for _, ca := range c.ContractAccounts {
		if ca.AccountNumber == "" {
			return ErrInvalidInput(fmt.Sprintf("customer %s: contract account without account_number", c.ID))
		}
	}
	for _, p := range c.Premises {
		if p.Address == "" {
			return ErrInvalidInput(fmt.Sprintf("customer %s: premise without address", c.ID))
		}
	}
	return nil
}

// IsValidSegment checks if the segment is one of the known values
func IsValidSegment(s Segment) bool {
	switch s {
	case SegmentResidential, SegmentCommercial, SegmentIndustrial:
		return true
	default:
		return false
	}
}

// IsValidCustomerStatus checks if the status is one of the known values
func IsValidCustomerStatus(s CustomerStatus) bool {
	return s == CustomerStatusActive || s == CustomerStatusInactive
}
