package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customer360-backend/internal/fixture"
	"github.com/Raymond9734/customer360-backend/internal/models"
	"github.com/Raymond9734/customer360-backend/internal/repository"
)

func newEmbeddedServices(t *testing.T) (CustomerService, OpportunityService) {
	t.Helper()
	ds, err := fixture.LoadEmbedded()
	require.NoError(t, err)

	customerRepo := repository.NewCustomerRepository(ds)
	programRepo := repository.NewProgramRepository(ds)

	return NewCustomerService(customerRepo, repository.NewAccountRepository(ds), programRepo, discardLogger()),
		NewOpportunityService(programRepo, customerRepo, discardLogger())
}

func TestCustomerService_GetOverview(t *testing.T) {
	svc, _ := newEmbeddedServices(t)
	lastContact := time.Date(2026, 9, 25, 10, 5, 0, 0, time.UTC)

	tests := []struct {
		name             string
		id               string
		wantOutstanding  int64
		wantOverdue      int
		wantOpenCases    int
		wantInteractions int
		wantLast         *time.Time
		wantEligible     int
		wantBadge        models.BadgeVariant
	}{
		{
			name:             "overdue gas account and open case",
			id:               "c-002",
			wantOutstanding:  3120,
			wantOverdue:      1,
			wantOpenCases:    1,
			wantInteractions: 2,
			wantLast:         &lastContact,
			wantEligible:     1,
			wantBadge:        models.BadgeSuccess,
		},
		{
			name:      "inactive customer without accounts",
			id:        "c-004",
			wantBadge: models.BadgeNeutral,
		},
		{
			name:             "in-progress case counts as open",
			id:               "c-006",
			wantOpenCases:    1,
			wantInteractions: 1,
			wantLast:         timePtr(time.Date(2026, 9, 2, 16, 45, 0, 0, time.UTC)),
			wantBadge:        models.BadgeSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetOverview(context.Background(), tt.id)
			require.NoError(t, err)

			assert.Equal(t, tt.id, got.Customer.ID)
			assert.Equal(t, tt.wantOutstanding, got.OutstandingCents)
			assert.Equal(t, tt.wantOverdue, got.OverdueBills)
			assert.Equal(t, tt.wantOpenCases, got.OpenCases)
			assert.Equal(t, tt.wantInteractions, got.Interactions)
			assert.Equal(t, tt.wantEligible, got.EligiblePrograms)
			assert.Equal(t, tt.wantBadge, got.StatusBadge)
			if tt.wantLast == nil {
				assert.Nil(t, got.LastInteractionAt)
			} else {
				require.NotNil(t, got.LastInteractionAt)
				assert.True(t, tt.wantLast.Equal(*got.LastInteractionAt))
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestCustomerService_UnknownCustomer(t *testing.T) {
	svc, _ := newEmbeddedServices(t)
	ctx := context.Background()

	calls := map[string]func() error{
		"GetByID":      func() error { _, err := svc.GetByID(ctx, "c-999"); return err },
		"GetOverview":  func() error { _, err := svc.GetOverview(ctx, "c-999"); return err },
		"GetByBP":      func() error { _, err := svc.GetByBusinessPartnerID(ctx, "BP000000"); return err },
		"Bills":        func() error { _, err := svc.Bills(ctx, "c-999"); return err },
		"Payments":     func() error { _, err := svc.Payments(ctx, "c-999"); return err },
		"Rates":        func() error { _, err := svc.Rates(ctx, "c-999"); return err },
		"Meters":       func() error { _, err := svc.Meters(ctx, "c-999"); return err },
		"Interactions": func() error { _, err := svc.Interactions(ctx, "c-999"); return err },
		"Cases":        func() error { _, err := svc.Cases(ctx, "c-999"); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, call(), models.ErrNotFound)
		})
	}
}

func TestCustomerService_GetByBusinessPartnerID(t *testing.T) {
	svc, _ := newEmbeddedServices(t)

	c, err := svc.GetByBusinessPartnerID(context.Background(), "BP100888")
	require.NoError(t, err)
	assert.Equal(t, "c-008", c.ID)

	_, err = svc.GetByBusinessPartnerID(context.Background(), "bp100888")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCustomerService_Tabs(t *testing.T) {
	svc, _ := newEmbeddedServices(t)
	ctx := context.Background()

	t.Run("bills keep fixture order with badges", func(t *testing.T) {
		bills, err := svc.Bills(ctx, "c-001")
		require.NoError(t, err)

		got := make([][2]string, 0, len(bills))
		for _, b := range bills {
			got = append(got, [2]string{b.ID, string(b.Badge)})
		}
		want := [][2]string{{"b-1001", "warning"}, {"b-1000", "success"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("bills mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("bills across accounts", func(t *testing.T) {
		bills, err := svc.Bills(ctx, "c-002")
		require.NoError(t, err)
		require.Len(t, bills, 2)
		assert.Equal(t, "4455661", bills[0].AccountNumber)
		assert.Equal(t, models.BadgeDanger, bills[1].Badge)
	})

	t.Run("payments", func(t *testing.T) {
		payments, err := svc.Payments(ctx, "c-006")
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, models.BadgeInfo, payments[0].Badge)
	})

	t.Run("rates", func(t *testing.T) {
		rates, err := svc.Rates(ctx, "c-002")
		require.NoError(t, err)

		codes := make([]string, 0, len(rates))
		for _, r := range rates {
			codes = append(codes, r.Code)
		}
		assert.Equal(t, []string{"R-RES-TOU", "G-RES-1"}, codes)
	})

	t.Run("meters list every service point", func(t *testing.T) {
		meters, err := svc.Meters(ctx, "c-003")
		require.NoError(t, err)
		require.Len(t, meters, 2)

		assert.Equal(t, "p-003", meters[0].PremiseID)
		assert.Equal(t, "sp-004", meters[0].ServicePoint.ID)
		assert.Equal(t, "9 Harbor Rd", meters[1].Address)
		assert.NotNil(t, meters[1].Readings)
		assert.Empty(t, meters[1].Readings)
	})

	t.Run("empty tabs are empty, not nil", func(t *testing.T) {
		bills, err := svc.Bills(ctx, "c-004")
		require.NoError(t, err)
		assert.NotNil(t, bills)
		assert.Empty(t, bills)

		interactions, err := svc.Interactions(ctx, "c-004")
		require.NoError(t, err)
		assert.NotNil(t, interactions)
		assert.Empty(t, interactions)

		meters, err := svc.Meters(ctx, "c-004")
		require.NoError(t, err)
		assert.NotNil(t, meters)
	})

	t.Run("cases", func(t *testing.T) {
		cases, err := svc.Cases(ctx, "c-007")
		require.NoError(t, err)
		require.Len(t, cases, 1)
		assert.Equal(t, models.BadgeSuccess, cases[0].Badge)
	})
}

func TestCustomerService_List(t *testing.T) {
	svc, _ := newEmbeddedServices(t)
	ctx := context.Background()

	t.Run("segment filter", func(t *testing.T) {
		result, err := svc.List(ctx, models.CustomerFilter{Segment: "commercial"})
		require.NoError(t, err)

		got := make([]string, 0, len(result.Data))
		for _, c := range result.Data {
			got = append(got, c.ID)
		}
		assert.Equal(t, []string{"c-003", "c-008"}, got)
		assert.Equal(t, int64(2), result.Pagination.TotalCount)
		assert.Equal(t, models.DefaultPageSize, result.Pagination.PageSize)
	})

	t.Run("second page", func(t *testing.T) {
		result, err := svc.List(ctx, models.CustomerFilter{Page: 2, PageSize: 3})
		require.NoError(t, err)

		require.Len(t, result.Data, 3)
		assert.Equal(t, "c-004", result.Data[0].ID)
		assert.Equal(t, models.PaginationResult{Page: 2, PageSize: 3, TotalCount: 8, TotalPages: 3}, result.Pagination)
	})

	t.Run("page past the end", func(t *testing.T) {
		result, err := svc.List(ctx, models.CustomerFilter{Page: 9, PageSize: 5})
		require.NoError(t, err)
		assert.NotNil(t, result.Data)
		assert.Empty(t, result.Data)
	})

	t.Run("invalid filters", func(t *testing.T) {
		_, err := svc.List(ctx, models.CustomerFilter{Segment: "agricultural"})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeInvalidInput, appErr.Code)

		_, err = svc.List(ctx, models.CustomerFilter{Status: "suspended"})
		require.ErrorAs(t, err, &appErr)
	})
}

func TestOpportunityService_Dashboard(t *testing.T) {
	_, svc := newEmbeddedServices(t)

	programs, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	type tally struct {
		ID       string
		Badge    models.BadgeVariant
		Eligible int
		Enrolled int
		Declined int
	}
	got := make([]tally, 0, len(programs))
	for _, p := range programs {
		got = append(got, tally{p.ID, p.Badge, p.Eligible, p.Enrolled, p.Declined})
	}

	want := []tally{
		{"prg-solar", models.BadgeSuccess, 1, 0, 0},
		{"prg-eff", models.BadgeSuccess, 1, 1, 0},
		{"prg-dr", models.BadgeInfo, 0, 1, 1},
		{"prg-assist", models.BadgeSuccess, 1, 0, 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dashboard mismatch (-want +got):\n%s", diff)
	}
}

func TestOpportunityService_GetProgram(t *testing.T) {
	_, svc := newEmbeddedServices(t)

	detail, err := svc.GetProgram(context.Background(), "prg-dr")
	require.NoError(t, err)

	require.Len(t, detail.Customers, 2)
	assert.Equal(t, "c-003", detail.Customers[0].Customer.ID)
	assert.Equal(t, models.EligibilityDeclined, detail.Customers[0].Status)
	assert.Equal(t, models.BadgeNeutral, detail.Customers[0].Badge)
	assert.Equal(t, "c-006", detail.Customers[1].Customer.ID)
	assert.Equal(t, models.BadgeSuccess, detail.Customers[1].Badge)

	_, err = svc.GetProgram(context.Background(), "prg-none")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestOpportunityService_ForCustomer(t *testing.T) {
	_, svc := newEmbeddedServices(t)
	ctx := context.Background()

	got, err := svc.ForCustomer(ctx, "c-001")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "prg-solar", got[0].Program.ID)
	assert.Equal(t, models.BadgeInfo, got[0].Badge)
	assert.Equal(t, "prg-eff", got[1].Program.ID)
	assert.Equal(t, models.EligibilityEnrolled, got[1].Status)

	none, err := svc.ForCustomer(ctx, "c-004")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = svc.ForCustomer(ctx, "c-999")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
