package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Raymond9734/customer360-backend/internal/models"
	"github.com/Raymond9734/customer360-backend/internal/repository"
)

// MinQueryLength is the shortest trimmed query, in characters, that starts a search
const MinQueryLength = 2

// SearchService handles customer search
type SearchService interface {
	Match(query string, customers []models.Customer) ([]models.Customer, bool)
	Search(ctx context.Context, query string) (*SearchResult, error)
}

type searchService struct {
	customerRepo repository.CustomerRepository
}

// NewSearchService creates a new search service
func NewSearchService(customerRepo repository.CustomerRepository) SearchService {
	return &searchService{customerRepo: customerRepo}
}

// Match delegates to MatchCustomers
func (s *searchService) Match(query string, customers []models.Customer) ([]models.Customer, bool) {
	return MatchCustomers(query, customers)
}

// Search matches the query against the whole customer directory
func (s *searchService) Search(ctx context.Context, query string) (*SearchResult, error) {
	customers, err := s.customerRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	matches, active := MatchCustomers(query, customers)

	results := make([]CustomerSummary, 0, len(matches))
	for i := range matches {
		results = append(results, NewCustomerSummary(&matches[i]))
	}

	return &SearchResult{
		Query:   strings.TrimSpace(query),
		Active:  active,
		Count:   len(results),
		Results: results,
	}, nil
}

// MatchCustomers returns the customers matching query, in input order.
//
// The second result is false when the trimmed query is shorter than
// MinQueryLength; the match list is then empty and callers should hide
// their suggestions. Names, email and premise addresses compare
// case-insensitively; business partner ID, phone and account numbers
// compare as typed.
func MatchCustomers(query string, customers []models.Customer) ([]models.Customer, bool) {
	needle := strings.TrimSpace(query)
	if utf8.RuneCountInString(needle) < MinQueryLength {
		return []models.Customer{}, false
	}

	lowered := strings.ToLower(needle)
	matches := []models.Customer{}
	for i := range customers {
		if customerMatches(&customers[i], needle, lowered) {
			matches = append(matches, customers[i])
		}
	}

	return matches, true
}

func customerMatches(c *models.Customer, needle, lowered string) bool {
	if containsFold(c.FirstName, lowered) || containsFold(c.LastName, lowered) {
		return true
	}
	if strings.Contains(c.BusinessPartnerID, needle) {
		return true
	}
	if containsFold(c.Email, lowered) {
		return true
	}
	if strings.Contains(c.Phone, needle) {
		return true
	}
	for _, ca := range c.ContractAccounts {
		if strings.Contains(ca.AccountNumber, needle) {
			return true
		}
	}
	for _, p := range c.Premises {
		if containsFold(p.Address, lowered) {
			return true
		}
	}
	return false
}

// containsFold lower-cases s and looks for an already lower-cased needle
func containsFold(s, loweredNeedle string) bool {
	return strings.Contains(strings.ToLower(s), loweredNeedle)
}
