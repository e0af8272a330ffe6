package models

import "fmt"

// Dataset is the read-only fixture the backend serves.
//
// Lookup tables are keyed as follows:
//   - Bills, Payments, Rates: contract account number
//   - MeterReadings: service point ID
//   - Interactions, Cases, Eligibility: customer ID
//
// Nothing in the process mutates a Dataset after it has been loaded.
type Dataset struct {
	Customers     []Customer                `json:"customers"`
	Programs      []Program                 `json:"programs"`
	Bills         map[string][]Bill         `json:"bills"`
	Payments      map[string][]Payment      `json:"payments"`
	Rates         map[string][]Rate         `json:"rates"`
	MeterReadings map[string][]MeterReading `json:"meter_readings"`
	Interactions  map[string][]Interaction  `json:"interactions"`
	Cases         map[string][]Case         `json:"cases"`
	Eligibility   map[string][]Eligibility  `json:"eligibility"`
}

// Validate enforces the integrity rules the rest of the system relies on:
// every customer is well formed, identifiers are unique across the
// dataset, and every lookup key points at something that exists.
func (d *Dataset) Validate() error {
	customerIDs := make(map[string]bool, len(d.Customers))
	bpIDs := make(map[string]bool, len(d.Customers))
	accounts := make(map[string]bool)
	servicePoints := make(map[string]bool)

	for i := range d.Customers {
		c := &d.Customers[i]
		if err := c.Validate(); err != nil {
			return err
		}
		if customerIDs[c.ID] {
			return ErrInvalidInput(fmt.Sprintf("duplicate customer id: %s", c.ID))
		}
		if bpIDs[c.BusinessPartnerID] {
			return ErrInvalidInput(fmt.Sprintf("duplicate business_partner_id: %s", c.BusinessPartnerID))
		}
		customerIDs[c.ID] = true
		bpIDs[c.BusinessPartnerID] = true

		for _, ca := range c.ContractAccounts {
			if accounts[ca.AccountNumber] {
				return ErrInvalidInput(fmt.Sprintf("duplicate account_number: %s", ca.AccountNumber))
			}
			accounts[ca.AccountNumber] = true
		}
		for _, p := range c.Premises {
			for _, sp := range p.ServicePoints {
				if servicePoints[sp.ID] {
					return ErrInvalidInput(fmt.Sprintf("duplicate service point id: %s", sp.ID))
				}
				servicePoints[sp.ID] = true
			}
		}
	}

	programIDs := make(map[string]bool, len(d.Programs))
	for _, p := range d.Programs {
		if p.ID == "" || p.Name == "" {
			return ErrInvalidInput("program id and name are required")
		}
		if programIDs[p.ID] {
			return ErrInvalidInput(fmt.Sprintf("duplicate program id: %s", p.ID))
		}
		programIDs[p.ID] = true
	}

	if err := checkKeys("bills", d.Bills, accounts); err != nil {
		return err
	}
	if err := checkKeys("payments", d.Payments, accounts); err != nil {
		return err
	}
	if err := checkKeys("rates", d.Rates, accounts); err != nil {
		return err
	}
	if err := checkKeys("meter_readings", d.MeterReadings, servicePoints); err != nil {
		return err
	}
	if err := checkKeys("interactions", d.Interactions, customerIDs); err != nil {
		return err
	}
	if err := checkKeys("cases", d.Cases, customerIDs); err != nil {
		return err
	}
	if err := checkKeys("eligibility", d.Eligibility, customerIDs); err != nil {
		return err
	}

	for customerID, entries := range d.Eligibility {
		for _, e := range entries {
			if !programIDs[e.ProgramID] {
				return ErrInvalidInput(fmt.Sprintf("eligibility for customer %s references unknown program %s", customerID, e.ProgramID))
			}
		}
	}

	return nil
}

func checkKeys[V any](table string, m map[string][]V, known map[string]bool) error {
	for key := range m {
		if !known[key] {
			return ErrInvalidInput(fmt.Sprintf("%s: unknown key %s", table, key))
		}
	}
	return nil
}
