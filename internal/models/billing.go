package models

import "time"

// BillStatus is the settlement status of a bill
type BillStatus string

// Bill status constants
const (
	BillStatusPaid    BillStatus = "paid"
	BillStatusDue     BillStatus = "due"
	BillStatusOverdue BillStatus = "overdue"
)

// PaymentStatus is the posting status of a payment
type PaymentStatus string

// Payment status constants
const (
	PaymentStatusPosted   PaymentStatus = "posted"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusReturned PaymentStatus = "returned"
)

// Bill is a statement issued against a contract account
type Bill struct {
	ID            string     `json:"id"`
	AccountNumber string     `json:"account_number"`
	PeriodStart   time.Time  `json:"period_start"`
	PeriodEnd     time.Time  `json:"period_end"`
	DueDate       time.Time  `json:"due_date"`
	AmountCents   int64      `json:"amount_cents"`
	Usage         float64    `json:"usage"`
	UsageUnit     string     `json:"usage_unit"`
	Status        BillStatus `json:"status"`
}

// Payment is money received against a contract account
type Payment struct {
	ID            string        `json:"id"`
	AccountNumber string        `json:"account_number"`
	AmountCents   int64         `json:"amount_cents"`
	PaidAt        time.Time     `json:"paid_at"`
	Method        string        `json:"method"`
	Status        PaymentStatus `json:"status"`
}

// Rate is the tariff applied to a contract account
type Rate struct {
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	AccountNumber string    `json:"account_number"`
	ServiceType   string    `json:"service_type"`
	PricePerUnit  float64   `json:"price_per_unit"`
	Unit          string    `json:"unit"`
	EffectiveFrom time.Time `json:"effective_from"`
}

// MeterReading is a single register read from a service point
type MeterReading struct {
	ServicePointID string    `json:"service_point_id"`
	MeterNumber    string    `json:"meter_number"`
	ReadAt         time.Time `json:"read_at"`
	Value          float64   `json:"value"`
	Unit           string    `json:"unit"`
	Estimated      bool      `json:"estimated"`
}

// IsOutstanding reports whether the bill still needs to be paid
func (b *Bill) IsOutstanding() bool {
	return b.Status == BillStatusDue || b.Status == BillStatusOverdue
}
