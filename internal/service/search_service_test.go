package service

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customer360-backend/internal/fixture"
	"github.com/Raymond9734/customer360-backend/internal/models"
	"github.com/Raymond9734/customer360-backend/internal/repository"
)

func javier() models.Customer {
	return models.Customer{
		ID:                "c-001",
		BusinessPartnerID: "BP100231",
		FirstName:         "Javier",
		LastName:          "Ortiz",
		Email:             "javier.ortiz@example.com",
		Phone:             "555-0101",
		Segment:           models.SegmentResidential,
		Status:            models.CustomerStatusActive,
		ContractAccounts:  []models.ContractAccount{{AccountNumber: "9988771"}},
		Premises:          []models.Premise{{Address: "12 Main St", City: "Springfield", State: "IL"}},
	}
}

func bare() models.Customer {
	return models.Customer{
		ID:                "c-100",
		BusinessPartnerID: "BP555000",
		FirstName:         "Ana",
		LastName:          "Lee",
		Email:             "ana@example.com",
		Phone:             "555-7777",
		ContractAccounts:  []models.ContractAccount{},
		Premises:          []models.Premise{},
	}
}

func ids(customers []models.Customer) []string {
	out := make([]string, 0, len(customers))
	for _, c := range customers {
		out = append(out, c.ID)
	}
	return out
}

func TestMatchCustomers_ConcreteScenario(t *testing.T) {
	customers := []models.Customer{javier()}

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{name: "last name substring ignores case", query: "orti", wantIDs: []string{"c-001"}},
		{name: "account number substring", query: "99887", wantIDs: []string{"c-001"}},
		{name: "no match", query: "zz", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, active := MatchCustomers(tt.query, customers)
			assert.True(t, active)
			assert.Equal(t, tt.wantIDs, ids(got))
		})
	}
}

func TestMatchCustomers_ShortQuery(t *testing.T) {
	customers := []models.Customer{javier(), bare()}

	for _, q := range []string{"", " ", "j", "  j  ", "\tJ\n", "é"} {
		t.Run(q, func(t *testing.T) {
			got, active := MatchCustomers(q, customers)
			assert.False(t, active)
			require.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestMatchCustomers_TwoRunesIsActive(t *testing.T) {
	// Two characters, four bytes
	c := javier()
	c.FirstName = "Íñigo"

	got, active := MatchCustomers("íñ", []models.Customer{c})
	assert.True(t, active)
	assert.Equal(t, []string{"c-001"}, ids(got))
}

func TestMatchCustomers_Fields(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "first name lower", query: "jav", want: true},
		{name: "first name upper", query: "JAVI", want: true},
		{name: "last name mixed", query: "oRtIz", want: true},
		{name: "business partner id", query: "BP1002", want: true},
		{name: "business partner id is case sensitive", query: "bp1002", want: false},
		{name: "email ignores case", query: "EXAMPLE.COM", want: true},
		{name: "phone", query: "0101", want: true},
		{name: "phone with dash", query: "5-01", want: true},
		{name: "account number", query: "88771", want: true},
		{name: "address ignores case", query: "main st", want: true},
		{name: "city is not searched", query: "Springfield", want: false},
		{name: "state is not searched", query: "IL", want: false},
		{name: "query is trimmed", query: "  ortiz  ", want: true},
		{name: "inner space kept", query: "12 main", want: true},
		{name: "no diacritic folding", query: "javíer", want: false},
	}

	customers := []models.Customer{javier()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, active := MatchCustomers(tt.query, customers)
			assert.True(t, active)
			assert.Equal(t, tt.want, len(got) == 1)
		})
	}
}

func TestMatchCustomers_EveryFirstNameSubstring(t *testing.T) {
	customers := []models.Customer{bare(), javier()}

	for _, c := range customers {
		runes := []rune(c.FirstName)
		for i := 0; i < len(runes); i++ {
			for j := i + 2; j <= len(runes); j++ {
				q := string(runes[i:j])
				got, _ := MatchCustomers(q, customers)
				assert.Contains(t, ids(got), c.ID, "query %q", q)
			}
		}
	}
}

func TestMatchCustomers_BusinessPartnerIDMatchesItself(t *testing.T) {
	ds, err := fixture.LoadEmbedded()
	require.NoError(t, err)

	for _, c := range ds.Customers {
		got, active := MatchCustomers(c.BusinessPartnerID, []models.Customer{c})
		assert.True(t, active)
		assert.Equal(t, []string{c.ID}, ids(got))
	}
}

func TestMatchCustomers_StableOrder(t *testing.T) {
	a := javier()
	b := javier()
	b.ID = "c-002"
	b.BusinessPartnerID = "BP100232"

	got, _ := MatchCustomers("ortiz", []models.Customer{a, b})
	assert.Equal(t, []string{"c-001", "c-002"}, ids(got))

	got, _ = MatchCustomers("ortiz", []models.Customer{b, a})
	assert.Equal(t, []string{"c-002", "c-001"}, ids(got))
}

func TestMatchCustomers_EmptyNestedSequences(t *testing.T) {
	empty := bare()
	nilNested := bare()
	nilNested.ID = "c-101"
	nilNested.ContractAccounts = nil
	nilNested.Premises = nil

	customers := []models.Customer{empty, nilNested}

	got, active := MatchCustomers("9988", customers)
	assert.True(t, active)
	assert.Empty(t, got)

	got, _ = MatchCustomers("ana", customers)
	assert.Equal(t, []string{"c-100", "c-101"}, ids(got))

	got, _ = MatchCustomers("7777", customers)
	assert.Len(t, got, 2)
}

func TestMatchCustomers_EmptyDirectory(t *testing.T) {
	got, active := MatchCustomers("ortiz", nil)
	assert.True(t, active)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMatchCustomers_NotCapped(t *testing.T) {
	customers := make([]models.Customer, 0, 50)
	for i := 0; i < 50; i++ {
		customers = append(customers, javier())
	}

	got, _ := MatchCustomers("javier", customers)
	assert.Len(t, got, 50)
}

func TestSearchService_Search(t *testing.T) {
	ds, err := fixture.LoadEmbedded()
	require.NoError(t, err)
	svc := NewSearchService(repository.NewCustomerRepository(ds))

	t.Run("two customers share an account prefix", func(t *testing.T) {
		result, err := svc.Search(context.Background(), " 99887 ")
		require.NoError(t, err)

		assert.Equal(t, "99887", result.Query)
		assert.True(t, result.Active)
		assert.Equal(t, 2, result.Count)

		got := make([]string, 0, len(result.Results))
		for _, r := range result.Results {
			got = append(got, r.ID)
		}
		if diff := cmp.Diff([]string{"c-001", "c-008"}, got); diff != "" {
			t.Errorf("result IDs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("summary card", func(t *testing.T) {
		result, err := svc.Search(context.Background(), "BP100231")
		require.NoError(t, err)
		require.Len(t, result.Results, 1)

		want := CustomerSummary{
			ID:                "c-001",
			BusinessPartnerID: "BP100231",
			Name:              "Javier Ortiz",
			Email:             "javier.ortiz@example.com",
			Phone:             "555-0101",
			Segment:           models.SegmentResidential,
			Status:            models.CustomerStatusActive,
			StatusBadge:       models.BadgeSuccess,
			AccountNumbers:    []string{"9988771"},
			PrimaryAddress:    "12 Main St, Springfield, IL",
		}
		if diff := cmp.Diff(want, result.Results[0]); diff != "" {
			t.Errorf("summary mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("inactive search", func(t *testing.T) {
		result, err := svc.Search(context.Background(), "o")
		require.NoError(t, err)
		assert.False(t, result.Active)
		assert.Zero(t, result.Count)
		assert.NotNil(t, result.Results)
	})
}
