package repository

import (
	"context"

	"github.com/Raymond9734/customer360-backend/internal/models"
)

// AccountRepository exposes the per-account and per-customer lookup tables.
// Unknown keys yield an empty slice, never an error.
type AccountRepository interface {
	BillsByAccount(ctx context.Context, accountNumber string) ([]models.Bill, error)
	PaymentsByAccount(ctx context.Context, accountNumber string) ([]models.Payment, error)
	RatesByAccount(ctx context.Context, accountNumber string) ([]models.Rate, error)
	ReadingsByServicePoint(ctx context.Context, servicePointID string) ([]models.MeterReading, error)
	InteractionsByCustomer(ctx context.Context, customerID string) ([]models.Interaction, error)
	CasesByCustomer(ctx context.Context, customerID string) ([]models.Case, error)
}

type accountRepository struct {
	ds *models.Dataset
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(ds *models.Dataset) AccountRepository {
	return &accountRepository{ds: ds}
}

func (r *accountRepository) BillsByAccount(ctx context.Context, accountNumber string) ([]models.Bill, error) {
	return lookup(r.ds.Bills, accountNumber), nil
}

func (r *accountRepository) PaymentsByAccount(ctx context.Context, accountNumber string) ([]models.Payment, error) {
	return lookup(r.ds.Payments, accountNumber), nil
}

func (r *accountRepository) RatesByAccount(ctx context.Context, accountNumber string) ([]models.Rate, error) {
	return lookup(r.ds.Rates, accountNumber), nil
}

func (r *accountRepository) ReadingsByServicePoint(ctx context.Context, servicePointID string) ([]models.MeterReading, error) {
	return lookup(r.ds.MeterReadings, servicePointID), nil
}

func (r *accountRepository) InteractionsByCustomer(ctx context.Context, customerID string) ([]models.Interaction, error) {
	return lookup(r.ds.Interactions, customerID), nil
}

func (r *accountRepository) CasesByCustomer(ctx context.Context, customerID string) ([]models.Case, error) {
	return lookup(r.ds.Cases, customerID), nil
}

func lookup[V any](m map[string][]V, key string) []V {
	if items, ok := m[key]; ok {
		return items
	}
	return []V{}
}
