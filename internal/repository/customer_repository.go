package repository

import (
	"context"
	"fmt"

	"github.com/Raymond9734/customer360-backend/internal/models"
)

// CustomerRepository defines read access to the customer directory.
// Returned slices share memory with the dataset and must not be modified.
type CustomerRepository interface {
	All(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	GetByBusinessPartnerID(ctx context.Context, bpID string) (*models.Customer, error)
	List(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, int64, error)
}

// customerRepository implements CustomerRepository over a loaded Dataset
type customerRepository struct {
	customers []models.Customer
	byID      map[string]int
	byBP      map[string]int
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(ds *models.Dataset) CustomerRepository {
	r := &customerRepository{
		customers: ds.Customers,
		byID:      make(map[string]int, len(ds.Customers)),
		byBP:      make(map[string]int, len(ds.Customers)),
	}
	for i, c := range ds.Customers {
		r.byID[c.ID] = i
		r.byBP[c.BusinessPartnerID] = i
	}
	return r
}

// All returns every customer in fixture order
func (r *customerRepository) All(ctx context.Context) ([]models.Customer, error) {
	return r.customers, nil
}

// GetByID retrieves a customer by ID
func (r *customerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %s not found", id))
	}
	return &r.customers[i], nil
}

// GetByBusinessPartnerID retrieves a customer by business partner ID
func (r *customerRepository) GetByBusinessPartnerID(ctx context.Context, bpID string) (*models.Customer, error) {
	i, ok := r.byBP[bpID]
	if !ok {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with business partner ID %s not found", bpID))
	}
	return &r.customers[i], nil
}

// List retrieves customers with pagination and filtering
func (r *customerRepository) List(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, int64, error) {
	models.ValidateAndSetDefaults(&filter.Page, &filter.PageSize)

	filtered := make([]models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if filter.Segment != "" && string(c.Segment) != filter.Segment {
			continue
		}
		if filter.Status != "" && string(c.Status) != filter.Status {
			continue
		}
		filtered = append(filtered, c)
	}

	return models.Paginate(filtered, filter.Page, filter.PageSize), int64(len(filtered)), nil
}
